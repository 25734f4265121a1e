package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"autotranslate/src/document"
	"autotranslate/src/fsutil"
	"autotranslate/src/translationflow"
)

var planCmd = &cobra.Command{
	Use:   "plan <file>",
	Short: "Show the batches a translation would send, without calling the model",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().Int("max-tokens", 0, "Token budget per request (defaults to MAX_TOKENS_MODEL)")
	bindFlag("plan.max_tokens", planCmd.Flags().Lookup("max-tokens"))
	viper.BindEnv("plan.max_tokens", "MAX_TOKENS_MODEL")
}

func runPlan(cmd *cobra.Command, args []string) error {
	path := args[0]
	store := fsutil.NewLocalFileStore()

	// nothing is written, the output path only satisfies the loader
	doc, err := document.Open(store, path, document.TranslatedPath(path, "plan"))
	if err != nil {
		return err
	}

	est, err := translationflow.Segment(doc.Len(), viper.GetInt("plan.max_tokens"), doc.Variant(), nil, "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d %s, %d per batch, ~%d tokens\n", path, est.TotalUnits, doc.Variant().Name, est.UnitsPerBatch, est.TotalTokens)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BATCH\tFIRST\tLAST\tUNITS")
	for _, b := range translationflow.Plan(est.TotalUnits, est.UnitsPerBatch, doc.Variant()) {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", b.Index, b.First, b.Last, b.Len())
	}
	return w.Flush()
}
