package translationflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autotranslate/src/log"
)

// Translator is the external translation service. It receives the system
// instruction, the parameters block and one batch payload.
type Translator interface {
	Translate(ctx context.Context, system, parameters, payload string) (string, error)
}

// Document is a loaded source together with its output artifact.
type Document interface {
	Variant() Variant
	// Len is the number of units.
	Len() int
	// Payload returns the request text for units [first, last).
	Payload(first, last int) string
	// Merge folds one translation result into the output artifact.
	Merge(result string) error
	// Save finalizes the output artifact.
	Save() error
}

// Batch is the half-open unit range [First, Last).
type Batch struct {
	Index int
	First int
	Last  int
}

func (b Batch) Len() int {
	return b.Last - b.First
}

// Report summarizes a finished or aborted run.
type Report struct {
	TotalUnits    int
	UnitsPerBatch int
	Batches       int
	// Skipped lists unit indices never sent because of the line boundary skip.
	Skipped []int
}

type state struct {
	first int
	index int
}

func (s state) done(total int) bool {
	return s.first >= total
}

func (s state) next(total, unitsPerBatch int) Batch {
	last := s.first + unitsPerBatch
	if last > total {
		last = total
	}
	return Batch{Index: s.index, First: s.first, Last: last}
}

func (s *state) advance(b Batch, variant Variant) {
	s.first = b.Last
	if variant.SkipBoundary {
		s.first++
	}
	s.index++
}

// Plan returns the batches a run over total units would produce.
func Plan(total, unitsPerBatch int, variant Variant) []Batch {
	if unitsPerBatch < 1 {
		unitsPerBatch = 1
	}
	var batches []Batch
	var st state
	for !st.done(total) {
		b := st.next(total, unitsPerBatch)
		batches = append(batches, b)
		st.advance(b, variant)
	}
	return batches
}

type TranslationFlow struct {
	translator   Translator
	systemPrompt string
	parameters   Parameters
	tokenBudget  int
	tokenCounter TokenCounter
	batchHook    func(Batch)
}

func NewTranslationFlow(translator Translator, systemPrompt string, parameters Parameters, opts ...Option) *TranslationFlow {
	tf := &TranslationFlow{
		translator:   translator,
		systemPrompt: systemPrompt,
		parameters:   parameters,
	}

	for _, opt := range opts {
		opt(tf)
	}

	return tf
}

type Option func(tf *TranslationFlow)

// WithTokenBudget sets the per-request token budget. Without it Translate
// fails with a ConfigurationError.
func WithTokenBudget(tokenBudget int) Option {
	return func(tf *TranslationFlow) {
		tf.tokenBudget = tokenBudget
	}
}

// WithTokenCounter replaces the per-unit heuristic in the volume estimate.
func WithTokenCounter(counter TokenCounter) Option {
	return func(tf *TranslationFlow) {
		tf.tokenCounter = counter
	}
}

// WithBatchHook registers fn to be called after each batch is merged.
func WithBatchHook(fn func(Batch)) Option {
	return func(tf *TranslationFlow) {
		tf.batchHook = fn
	}
}

// Translate runs every batch of doc through the translator and merges the
// results. The output artifact is saved even when a batch fails, so batches
// merged before the failure are kept.
func (tf *TranslationFlow) Translate(ctx context.Context, doc Document) (Report, error) {
	variant := doc.Variant()
	total := doc.Len()

	var sample string
	if tf.tokenCounter != nil {
		sample = doc.Payload(0, total)
	}
	est, err := Segment(total, tf.tokenBudget, variant, tf.tokenCounter, sample)
	if err != nil {
		return Report{}, err
	}

	params, err := tf.parameters.Render()
	if err != nil {
		return Report{}, &ConfigurationError{Op: "parameters", Err: err}
	}

	report := Report{TotalUnits: total, UnitsPerBatch: est.UnitsPerBatch}
	var st state
	for !st.done(total) {
		b := st.next(total, est.UnitsPerBatch)
		if err := tf.translateBatch(ctx, doc, b, params); err != nil {
			if saveErr := doc.Save(); saveErr != nil {
				log.Error(saveErr, "failed to save partial output", "batch", b.Index)
			}
			return report, err
		}
		report.Batches++
		if tf.batchHook != nil {
			tf.batchHook(b)
		}

		st.advance(b, variant)
		if variant.SkipBoundary && b.Last < total {
			report.Skipped = append(report.Skipped, b.Last)
		}
	}

	if err := doc.Save(); err != nil {
		return report, fmt.Errorf("failed to save output: %w", err)
	}
	log.Info("translation finished", "batches", report.Batches, "units", total, "skipped", len(report.Skipped))
	return report, nil
}

func (tf *TranslationFlow) translateBatch(ctx context.Context, doc Document, b Batch, params string) error {
	log.Info("processing batch", "batch", b.Index, "first", b.First, "last", b.Last)

	payload := doc.Payload(b.First, b.Last)
	log.Debug("batch payload", "batch", b.Index, "payload", payload)

	result, err := tf.translator.Translate(ctx, tf.systemPrompt, params, payload)
	if err != nil {
		log.Error(err, "failed to translate batch", "batch", b.Index)
		return &TranslationServiceError{Batch: b, Err: err}
	}
	if strings.TrimSpace(result) == "" {
		return &TranslationServiceError{Batch: b, Err: errors.New("empty translation")}
	}
	log.Debug("batch result", "batch", b.Index, "result", result)

	if err := doc.Merge(result); err != nil {
		return fmt.Errorf("failed to merge batch %d: %w", b.Index, err)
	}
	return nil
}
