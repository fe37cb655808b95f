package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FileResult pairs one input with its outcome.
type FileResult struct {
	Result Result
	Err    error
}

// BatchSummary aggregates a run over multiple inputs.
type BatchSummary struct {
	Results   []FileResult
	Succeeded int
	Failed    int
}

// ExitCode maps the batch outcome to a process exit code: 0 when every
// file succeeded, 2 when every file failed, 1 for a mixed run.
func (s BatchSummary) ExitCode() int {
	switch {
	case s.Failed == 0:
		return 0
	case s.Succeeded == 0:
		return 2
	default:
		return 1
	}
}

// Batch condenses every input, running up to workers files concurrently.
// A failing file is reported in the summary without stopping the rest;
// only context cancellation cuts the run short.
func (p *Pipeline) Batch(ctx context.Context, inputs []string, workers int) BatchSummary {
	if workers < 1 {
		workers = 1
	}
	results := make([]FileResult, len(inputs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, input := range inputs {
		i, input := i, input
		group.Go(func() error {
			result, err := p.Process(ctx, input)
			if err != nil {
				p.log.Error("processing failed", "input", input, "error", err)
			}
			results[i] = FileResult{Result: result, Err: err}
			return nil
		})
	}
	group.Wait()

	summary := BatchSummary{Results: results}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}
