package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"job-match-api/internal/matching"
	"job-match-api/internal/storage"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizePolicy strips every HTML element from user-supplied free text
// (bios, job descriptions) before it is stored.
var sanitizePolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(sanitizePolicy.Sanitize(s))
}

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		// The repo layer provides more context for conflict errors
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	if errors.Is(err, storage.ErrVersionConflict) {
		return fmt.Errorf("%w: %s", ErrStaleVersion, operation)
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// mapWorkflowError maps status workflow errors to service errors.
func mapWorkflowError(err error) error {
	switch {
	case errors.Is(err, matching.ErrTerminalStatus):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, matching.ErrNotMatched), errors.Is(err, matching.ErrNotInterviewing):
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	default:
		return err
	}
}
