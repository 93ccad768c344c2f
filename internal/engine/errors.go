package engine

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
	ErrInvalidMaxID     = errors.New("max id must be at least the batch size")
	ErrEmptyCategory    = errors.New("category name cannot be empty")
	ErrNilFetcher       = errors.New("fetcher cannot be nil")
)

// filterFailureMessage is the user-facing text of every FilterError.
const filterFailureMessage = "failed to search Pokémon by type"

// CreatureLoadError aborts a random batch. It names the id that failed and,
// for HTTP failures, the status text.
type CreatureLoadError struct {
	ID         int
	StatusText string
	Err        error
}

func (e *CreatureLoadError) Error() string {
	if e.StatusText != "" {
		return fmt.Sprintf("failed to load Pokémon with ID %d: %s", e.ID, e.StatusText)
	}
	return fmt.Sprintf("failed to load Pokémon with ID %d: %v", e.ID, e.Err)
}

func (e *CreatureLoadError) Unwrap() error { return e.Err }

// FilterError aborts a filtered batch. Its message is deliberately generic and
// does not name the failing member; the cause is available through Unwrap.
type FilterError struct {
	Category string
	Err      error
}

func (e *FilterError) Error() string { return filterFailureMessage }

func (e *FilterError) Unwrap() error { return e.Err }
