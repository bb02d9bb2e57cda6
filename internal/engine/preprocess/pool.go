// Package preprocess runs per-file build steps over a worker pool and
// implements the C and Fortran preprocessing steps.
package preprocess

import (
	"context"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RunAll applies fn to every item over a pool of jobs workers. A failing
// item never cancels its siblings: every item is attempted, and the results
// of the ones that succeeded are returned in submission order alongside an
// aggregate error naming each failure.
func RunAll[In, Out any](ctx context.Context, items []In, jobs int, fn func(ctx context.Context, item In) (Out, error)) ([]Out, error) {
	if jobs < 1 {
		jobs = 1
	}

	type slot struct {
		out Out
		err error
	}
	slots := make([]slot, len(items))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, item := range items {
		g.Go(func() error {
			slots[i].out, slots[i].err = fn(ctx, item)
			return nil
		})
	}
	// Worker funcs always return nil, failures live in the slots.
	_ = g.Wait()

	outs := make([]Out, 0, len(items))
	var msgs []string
	for _, s := range slots {
		if s.err != nil {
			msgs = append(msgs, s.err.Error())
			continue
		}
		outs = append(outs, s.out)
	}
	if len(msgs) > 0 {
		err := zerr.New(strings.Join(msgs, "; "))
		return outs, zerr.With(err, "failed", len(msgs))
	}
	return outs, nil
}
