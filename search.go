package esdeep

import (
	"context"

	"github.com/sirupsen/logrus"
)

// SearchRequest groups the parameters of a deep-paging search, mirroring
// how the pack's mcp-elasticsearch client groups ES request parameters
// into a single struct rather than a long positional parameter list.
type SearchRequest struct {
	// Index is the index name or pattern, may contain wildcards and a
	// legacy "/type" suffix. Required.
	Index string
	// Query is the inner value of the "query" DSL field, e.g.
	// `{"match_all":{}}`. Empty means match-all.
	Query string
	// Source is an optional list of field selectors for the "_source"
	// clause. Nil means no filtering.
	Source []string
	// Sort is the unique, dense-or-sparse int64 sort key field name.
	// Required.
	Sort string
	// Asc selects ascending (true) or descending (false) sort order.
	Asc bool
	// From is the zero-based starting offset into the logical result set.
	From int64
	// Size is the number of hits to return.
	Size int64
}

func (r SearchRequest) validate() error {
	if r.Index == "" {
		return validationErrorf("index can not be empty")
	}
	if r.Sort == "" {
		return validationErrorf("sort can not be empty")
	}
	if r.From < 0 || r.Size < 0 {
		return validationErrorf("from and size can not be negative")
	}
	return nil
}

// Search answers a deep-paging query: it returns req.Size (or fewer, if the
// window runs past the end of the matched set) hit documents as JSON
// strings, in req.Sort order ascending or descending per req.Asc, even when
// req.From is far beyond the cluster's max_result_window.
//
// It never issues a sub-request with from>Client.maxFrom or
// size>Client.maxSize; see Phase A/B/C in the package doc for how arbitrary
// offsets are collapsed into that bound.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]string, error) {
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

	asc := req.Asc
	from := req.From
	size := req.Size

	log := c.log.WithFields(logrus.Fields{"index": req.Index, "sort": req.Sort})

	// Phase A: tail reversal. When the requested window lies past the
	// midpoint of the matched set, flip direction and restate the window
	// relative to the tail, halving the effective offset.
	asc, from, size, reverse, empty, err := c.phaseAReverse(ctx, req.Index, query, asc, from, size)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}
	if reverse {
		log.Debug("esdeep: phase A reversing")
	}

	// Phase B: binary-search offset collapse. Converts a still-too-large
	// from into a rewrapped query with a bounded effective from.
	newQuery, newFrom, empty, err := c.phaseBCollapse(ctx, req.Index, query, req.Sort, asc, from, c.fetchExtremaSequential)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}
	if newQuery != query {
		log.WithFields(logrus.Fields{"new_from": newFrom}).Debug("esdeep: phase B collapsed offset")
	}

	// Phase C: cursored batching. Each page after the first uses from=0 and
	// a strict inequality filter built from the previous batch's last hit,
	// always rewrapping the *original* query to avoid unbounded nesting.
	list, err := c.cursorBatches(ctx, req.Index, query, newQuery, req.Source, req.Sort, asc, newFrom, size)
	if err != nil {
		return nil, err
	}

	// Phase D: undo the tail reversal so the returned order matches the
	// caller's requested Asc.
	if reverse {
		reverseStrings(list)
	}
	return list, nil
}

// phaseAReverse implements Phase A (tail reversal). When from is within
// c.maxFrom it is a no-op. Returns the (possibly flipped) asc/from/size,
// whether reversal happened, and whether the request is already known to be
// empty (total==0 or from>=total).
func (c *Client) phaseAReverse(ctx context.Context, index, query string, asc bool, from, size int64) (newAsc bool, newFrom, newSize int64, reverse, empty bool, err error) {
	if from <= c.maxFrom {
		return asc, from, size, false, false, nil
	}
	total, err := c.Count(ctx, index, query)
	if err != nil {
		return false, 0, 0, false, false, err
	}
	if total == 0 || from >= total {
		return false, 0, 0, false, true, nil
	}
	if from <= (total - from) {
		return asc, from, size, false, false, nil
	}
	from2 := total - from - size
	size2 := size
	if from2 < 0 {
		size2 = size + from2
	}
	from = max64(from2, 0)
	size = max64(size2, 0)
	if size == 0 {
		return false, 0, 0, false, true, nil
	}
	return !asc, from, size, true, false, nil
}

// extremaFetcher retrieves the smallest- and largest-sorted hit's sort
// value for query, or reports one missing (no matching documents).
type extremaFetcher func(ctx context.Context, index, query, sort string) (sortMin, sortMax int64, missing bool, err error)

// fetchExtremaSequential issues the two extremum lookups one after another,
// matching the reference algorithm's request order.
func (c *Client) fetchExtremaSequential(ctx context.Context, index, query, sort string) (int64, int64, bool, error) {
	minItem, err := c.extremum(ctx, index, query, sort, true)
	if err != nil {
		return 0, 0, false, err
	}
	if minItem == nil {
		return 0, 0, true, nil
	}
	maxItem, err := c.extremum(ctx, index, query, sort, false)
	if err != nil {
		return 0, 0, false, err
	}
	if maxItem == nil {
		return 0, 0, true, nil
	}
	return *minItem, *maxItem, false, nil
}

// phaseBCollapse implements Phase B (binary-search offset collapse). When
// from is within c.maxFrom it is a no-op: newQuery==query, newFrom==from.
func (c *Client) phaseBCollapse(ctx context.Context, index, query, sort string, asc bool, from int64, fetch extremaFetcher) (newQuery string, newFrom int64, empty bool, err error) {
	if from <= c.maxFrom {
		return query, from, false, nil
	}
	sortMin, sortMax, missing, err := fetch(ctx, index, query, sort)
	if err != nil {
		return "", 0, false, err
	}
	if missing {
		return "", 0, true, nil
	}
	var newStart int64
	if asc {
		newStart, newFrom, err = c.findNewFrom(ctx, index, query, sort, sortMin, sortMax, from)
		if err != nil {
			return "", 0, false, err
		}
		return buildCmpQuery(query, sort, "gt", newStart), newFrom, false, nil
	}
	newStart, newFrom, err = c.findNewFrom(ctx, index, query, sort, sortMax, sortMin, from)
	if err != nil {
		return "", 0, false, err
	}
	return buildCmpQuery(query, sort, "lt", newStart), newFrom, false, nil
}

func (c *Client) cursorBatches(ctx context.Context, index, origQuery, newQuery string, source []string, sort string, asc bool, from, size int64) ([]string, error) {
	var list []string
	remain := size
	cursorFrom := from
	for remain > 0 {
		retrieve := min64(remain, c.maxSize)
		batch, err := c.query(ctx, index, newQuery, source, sort, asc, cursorFrom, retrieve)
		if err != nil {
			return nil, err
		}
		hits, err := batch.Hits()
		if err != nil {
			return nil, parseErrorf("hits.hits", "%v", err)
		}
		if len(hits) == 0 {
			break
		}
		for _, h := range hits {
			list = append(list, h.ToJSON())
		}
		remain -= int64(len(hits))
		cursorFrom = 0
		if remain <= 0 {
			break
		}
		lastSort, err := sortValueFromCursor(hits[len(hits)-1])
		if err != nil {
			return nil, err
		}
		cmp := "gt"
		if !asc {
			cmp = "lt"
		}
		newQuery = buildCmpQuery(origQuery, sort, cmp, lastSort)
	}
	return list, nil
}

// extremum fetches the single smallest (asc=true) or largest (asc=false)
// sorted hit matching query and returns its sort-key value, or nil if no
// hit matched.
func (c *Client) extremum(ctx context.Context, index, query, sort string, asc bool) (*int64, error) {
	res, err := c.query(ctx, index, query, []string{sort}, sort, asc, 0, 1)
	if err != nil {
		return nil, err
	}
	hits, err := res.Hits()
	if err != nil {
		return nil, parseErrorf("hits.hits", "%v", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}
	v, err := sortValueFromSource(hits[0], sort)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// findNewFrom binary-searches the [sortStart, sortEnd] sort-key range for a
// boundary whose count of documents on the sortStart side is in
// (from-maxFrom, from]. Returns the boundary value and the residual from to
// use for the first Phase C batch.
func (c *Client) findNewFrom(ctx context.Context, index, query, sort string, sortStart, sortEnd, from int64) (int64, int64, error) {
	newStart, newEnd := sortStart, sortEnd
	for {
		lo := min64(newStart, newEnd)
		span := abs64(newEnd - newStart)
		if span <= 1 {
			return lo, span, nil
		}
		mid := lo + span/2

		var midQuery string
		if sortStart < sortEnd {
			midQuery = buildRangeQuery(query, sort, sortStart, mid)
		} else {
			midQuery = buildRangeQuery(query, sort, mid, sortStart)
		}
		midCount, err := c.Count(ctx, index, midQuery)
		if err != nil {
			return 0, 0, err
		}
		newFrom := from - midCount
		if newFrom < 0 {
			newEnd = mid
			continue
		}
		newStart = mid
		if newFrom <= c.maxFrom {
			return newStart, newFrom, nil
		}
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func abs64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
