package esdeep

import (
	"context"
	"strconv"
	"strings"

	"github.com/miku/esdeep/esjson"
	"github.com/miku/esdeep/internal/stringutil"
	"github.com/sirupsen/logrus"
)

// Count posts a _count request for query against index and returns the
// matched document count. Errors from the transport, the JSON walker, or
// the final int64 conversion all propagate.
func (c *Client) Count(ctx context.Context, index, query string) (int64, error) {
	body := buildCountBody(query)
	resp, err := c.transport.Post(ctx, index+"/_count", body)
	if err != nil {
		return 0, err
	}
	v, err := esjson.Parse(resp)
	if err != nil {
		return 0, parseErrorf("", "count response: %v", err)
	}
	countVal, err := v.Find(`"count"`)
	if err != nil {
		return 0, parseErrorf("count", "%v", err)
	}
	lit, err := countVal.String()
	if err != nil {
		return 0, parseErrorf("count", "%v", err)
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, parseErrorf("count", "not an integer: %s", lit)
	}
	c.log.WithFields(logrus.Fields{
		"index": index, "count": n, "query": stringutil.Shorten(query, 80),
	}).Debug("esdeep: count")
	return n, nil
}

// query posts a bounded _search request and returns the parsed top-level
// response. Callers are responsible for ensuring from<=c.maxFrom and
// size<=c.maxSize; query itself does not re-check (primitives are trusted
// internal building blocks, not part of the public surface).
func (c *Client) query(ctx context.Context, index, query string, source []string, sort string, asc bool, from, size int64) (esjson.Value, error) {
	body := buildSearchBody(query, source, sort, asc, from, size)
	resp, err := c.transport.Post(ctx, index+"/_search", body)
	if err != nil {
		return esjson.Value{}, err
	}
	v, err := esjson.Parse(resp)
	if err != nil {
		return esjson.Value{}, parseErrorf("", "search response: %v", err)
	}
	c.log.WithFields(logrus.Fields{
		"index": index, "from": from, "size": size, "asc": asc,
		"query": stringutil.Shorten(query, 80),
	}).Debug("esdeep: query")
	return v, nil
}

// sortValueFromSource reads _source.<sort> off a hit and parses it as int64.
func sortValueFromSource(hit esjson.Value, sort string) (int64, error) {
	src, err := hit.Find(`"_source"`)
	if err != nil {
		return 0, parseErrorf("_source", "%v", err)
	}
	field, err := src.Find(`"` + sort + `"`)
	if err != nil {
		return 0, parseErrorf("_source."+sort, "%v", err)
	}
	lit, err := field.String()
	if err != nil {
		return 0, parseErrorf("_source."+sort, "%v", err)
	}
	n, err := strconv.ParseInt(strings.Trim(lit, `"`), 10, 64)
	if err != nil {
		return 0, parseErrorf("_source."+sort, "not an integer: %s", lit)
	}
	return n, nil
}

// sortValueFromCursor reads sort[0] off a hit and parses it as int64.
func sortValueFromCursor(hit esjson.Value) (int64, error) {
	sortArr, err := hit.Find(`"sort"`)
	if err != nil {
		return 0, parseErrorf("sort", "%v", err)
	}
	elems, err := sortArr.Array()
	if err != nil || len(elems) == 0 {
		return 0, parseErrorf("sort", "missing sort cursor")
	}
	lit, err := elems[0].String()
	if err != nil {
		return 0, parseErrorf("sort", "%v", err)
	}
	n, err := strconv.ParseInt(strings.Trim(lit, `"`), 10, 64)
	if err != nil {
		return 0, parseErrorf("sort", "not an integer: %s", lit)
	}
	return n, nil
}
