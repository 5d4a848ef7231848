package importers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one import to run.
type Job struct {
	Format Format
	Data   string
}

// Run executes independent jobs on at most workers goroutines and returns
// their results in job order. A single job always runs on one goroutine.
// Unknown formats abort the whole run before any job starts.
func Run(ctx context.Context, jobs []Job, workers int) ([]Result, error) {
	imps := make([]Importer, len(jobs))
	for i, j := range jobs {
		imp, err := New(j.Format)
		if err != nil {
			return nil, err
		}
		imps[i] = imp
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = imps[i].Parse(jobs[i].Data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
