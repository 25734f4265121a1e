package translationflow

import "fmt"

// ConfigurationError is returned for problems detected before any batch is
// sent: a bad token budget, an unreadable prompt or an unreadable input file.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TranslationServiceError is returned when the translator fails or answers
// with nothing usable. Batches merged before it stay in the output.
type TranslationServiceError struct {
	Batch Batch
	Err   error
}

func (e *TranslationServiceError) Error() string {
	return fmt.Sprintf("translation of batch %d [%d,%d) failed: %v", e.Batch.Index, e.Batch.First, e.Batch.Last, e.Err)
}

func (e *TranslationServiceError) Unwrap() error {
	return e.Err
}
