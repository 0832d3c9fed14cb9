package esdeep

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CountMany runs one Count per query concurrently, in the same fan-out
// shape as the teacher's MassQuery.Run: one goroutine per request, first
// error cancels the rest. Unlike MassQuery's unordered channel drain,
// results here are returned in input order (counts[i] corresponds to
// queries[i]) since callers correlate them positionally.
func (c *Client) CountMany(ctx context.Context, index string, queries []string) ([]int64, error) {
	counts := make([]int64, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			n, err := c.Count(gctx, index, q)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// SearchParallelProbe behaves exactly like Search, except that Phase B's two
// extremum lookups (smallest and largest sorted hit) run concurrently
// instead of sequentially, trading one round trip for one goroutine. This
// is an optional, non-required extension: Phase C's cursor loop is
// inherently sequential and is never parallelized.
func (c *Client) SearchParallelProbe(ctx context.Context, req SearchRequest) ([]string, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.Size == 0 {
		return nil, nil
	}

	query := req.Query
	if query == "" {
		query = `{"match_all":{}}`
	}

	asc, from, size, reverse, empty, err := c.phaseAReverse(ctx, req.Index, query, req.Asc, req.From, req.Size)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}

	newQuery, newFrom, empty, err := c.phaseBCollapse(ctx, req.Index, query, req.Sort, asc, from, c.fetchExtremaParallel)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}

	list, err := c.cursorBatches(ctx, req.Index, query, newQuery, req.Source, req.Sort, asc, newFrom, size)
	if err != nil {
		return nil, err
	}
	if reverse {
		reverseStrings(list)
	}
	return list, nil
}

// fetchExtremaParallel runs the two extremum lookups concurrently via
// errgroup, the same pattern the teacher's MassQuery uses to fan a batch of
// independent requests out over the transport.
func (c *Client) fetchExtremaParallel(ctx context.Context, index, query, sort string) (sortMin, sortMax int64, missing bool, err error) {
	var minMissing, maxMissing bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.extremum(gctx, index, query, sort, true)
		if err != nil {
			return err
		}
		if v == nil {
			minMissing = true
			return nil
		}
		sortMin = *v
		return nil
	})
	g.Go(func() error {
		v, err := c.extremum(gctx, index, query, sort, false)
		if err != nil {
			return err
		}
		if v == nil {
			maxMissing = true
			return nil
		}
		sortMax = *v
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, 0, false, err
	}
	return sortMin, sortMax, minMissing || maxMissing, nil
}
