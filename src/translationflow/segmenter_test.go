package translationflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"autotranslate/src/translationflow"
)

func TestUnitsPerBatch(t *testing.T) {
	tests := []struct {
		name        string
		tokenBudget int
		variant     translationflow.Variant
		want        int
	}{
		{name: "lines", tokenBudget: 2000, variant: translationflow.LineVariant, want: 100},
		{name: "lines rounds down", tokenBudget: 4095, variant: translationflow.LineVariant, want: 204},
		{name: "runs are coarser", tokenBudget: 1000, variant: translationflow.RunVariant, want: 13},
		{name: "tiny budget clamps to one", tokenBudget: 1, variant: translationflow.LineVariant, want: 1},
		{name: "tiny budget clamps to one for runs", tokenBudget: 74, variant: translationflow.RunVariant, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translationflow.UnitsPerBatch(tt.tokenBudget, tt.variant)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("UnitsPerBatch(%d, %s) = %d, want %d", tt.tokenBudget, tt.variant.Name, got, tt.want)
			}
		})
	}
}

func TestUnitsPerBatchAtLeastOne(t *testing.T) {
	for _, variant := range []translationflow.Variant{translationflow.LineVariant, translationflow.RunVariant} {
		for budget := 1; budget <= 5000; budget += 7 {
			got, err := translationflow.UnitsPerBatch(budget, variant)
			require.NoError(t, err)
			require.GreaterOrEqual(t, got, 1, "budget %d variant %s", budget, variant.Name)
		}
	}
}

func TestUnitsPerBatchRejectsBudget(t *testing.T) {
	for _, budget := range []int{0, -1, -4096} {
		_, err := translationflow.UnitsPerBatch(budget, translationflow.LineVariant)

		var cfgErr *translationflow.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		require.Equal(t, "token budget", cfgErr.Op)
	}
}

func TestSegment(t *testing.T) {
	t.Run("heuristic volume", func(t *testing.T) {
		est, err := translationflow.Segment(250, 2000, translationflow.LineVariant, nil, "")
		require.NoError(t, err)
		require.Equal(t, translationflow.Estimate{
			TotalUnits:      250,
			UnitsPerBatch:   100,
			TotalTokens:     5000,
			ExpectedBatches: 3,
		}, est)
	})

	t.Run("counted volume", func(t *testing.T) {
		counter := func(text string) int { return len(text) }
		est, err := translationflow.Segment(1, 2000, translationflow.LineVariant, counter, "hello\n")
		require.NoError(t, err)
		require.Equal(t, 6, est.TotalTokens)
		require.Equal(t, 1, est.ExpectedBatches)
	})

	t.Run("no units", func(t *testing.T) {
		est, err := translationflow.Segment(0, 2000, translationflow.RunVariant, nil, "")
		require.NoError(t, err)
		require.Zero(t, est.ExpectedBatches)
		require.Zero(t, est.TotalTokens)
	})
}
