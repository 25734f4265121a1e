package translationflow

import (
	"errors"
	"math"

	"autotranslate/src/log"
)

// CharsPerToken is the rough ratio used to turn character estimates into
// model tokens.
const CharsPerToken = 4.0

// Variant describes how a document's units are sized and how the driver
// advances between batches.
type Variant struct {
	Name string
	// CharsPerUnit is the estimated length of one unit.
	CharsPerUnit float64
	// SkipBoundary advances to last+1 instead of last after each batch.
	SkipBoundary bool
}

var (
	LineVariant = Variant{Name: "lines", CharsPerUnit: 80, SkipBoundary: true}
	// Paragraph runs are longer and denser than text lines.
	RunVariant = Variant{Name: "runs", CharsPerUnit: 300}
)

// TokenCounter returns the number of model tokens in text.
type TokenCounter func(text string) int

// Estimate is the diagnostic produced alongside the batch size.
type Estimate struct {
	TotalUnits      int
	UnitsPerBatch   int
	TotalTokens     int
	ExpectedBatches int
}

// UnitsPerBatch returns how many units of the variant fit in tokenBudget,
// never less than one.
func UnitsPerBatch(tokenBudget int, variant Variant) (int, error) {
	if tokenBudget <= 0 {
		return 0, &ConfigurationError{Op: "token budget", Err: errors.New("must be a positive number of tokens")}
	}
	if variant.CharsPerUnit <= 0 {
		return 0, &ConfigurationError{Op: "variant " + variant.Name, Err: errors.New("chars per unit must be positive")}
	}

	tokensPerUnit := variant.CharsPerUnit / CharsPerToken
	n := int(math.Floor(float64(tokenBudget) / tokensPerUnit))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// Segment sizes a document of totalUnits units and logs the estimated volume.
// When counter is nil the token volume is derived from the variant's
// per-unit estimate; otherwise it is counted over text.
func Segment(totalUnits, tokenBudget int, variant Variant, counter TokenCounter, text string) (Estimate, error) {
	perBatch, err := UnitsPerBatch(tokenBudget, variant)
	if err != nil {
		return Estimate{}, err
	}

	est := Estimate{
		TotalUnits:    totalUnits,
		UnitsPerBatch: perBatch,
	}
	if counter != nil {
		est.TotalTokens = counter(text)
	} else {
		est.TotalTokens = int(float64(totalUnits) * variant.CharsPerUnit / CharsPerToken)
	}
	est.ExpectedBatches = len(Plan(totalUnits, perBatch, variant))

	log.Info("estimated translation volume",
		"variant", variant.Name,
		"units", totalUnits,
		"units_per_batch", perBatch,
		"estimated_tokens", est.TotalTokens,
		"expected_batches", est.ExpectedBatches)
	return est, nil
}
