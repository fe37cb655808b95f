package condense

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for stage-level failures. Callers classify with
// errors.Is; a failure in one file must never abort a batch.
var (
	// ErrInvalidTiming marks a malformed input event (end before start).
	ErrInvalidTiming = errors.New("invalid event timing")

	// ErrNoDialogue marks a run where filtering left no intervals at all.
	// Recoverable: the caller decides whether to skip the file.
	ErrNoDialogue = errors.New("no dialogue intervals")

	// ErrEmptyPlan marks an attempt to build a plan with no segments.
	ErrEmptyPlan = errors.New("empty encode plan")

	// ErrNoMatch is the matcher's negative result, not a failure as such;
	// the caller decides severity.
	ErrNoMatch = errors.New("no matching subtitle file")
)

// Wrap tags err (or a fresh error) with the given sentinel marker and
// stage context so batch drivers can report file/stage/reason.
func Wrap(marker error, stage, message string, err error) error {
	detail := buildDetail(stage, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, message string) string {
	parts := make([]string, 0, 2)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "condense failure"
	}
	return strings.Join(parts, ": ")
}
