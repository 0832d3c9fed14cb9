package esdeep

import (
	"fmt"
	"strings"
)

// buildRangeQuery wraps the original user query in a bool.must, adding a
// closed range filter [lo, hi] on sort. Always composes on the original
// query text, never on a query already wrapped by a previous iteration, so
// the bool nesting never grows across the binary search.
func buildRangeQuery(query, sort string, lo, hi int64) string {
	return fmt.Sprintf(`{"bool":{"must":%s,"filter":{"range":{"%s":{"gte":%d,"lte":%d}}}}}`,
		query, sort, lo, hi)
}

// buildCmpQuery wraps the original user query with an open range filter:
// cmp is "gt" or "lt". Used both to collapse the offset (Phase B) and as
// the search_after-style cursor filter in Phase C.
func buildCmpQuery(query, sort, cmp string, v int64) string {
	return fmt.Sprintf(`{"bool":{"must":%s,"filter":{"range":{"%s":{"%s":%d}}}}}`,
		query, sort, cmp, v)
}

// sortDir renders the sort direction keyword for the search body.
func sortDir(asc bool) string {
	if asc {
		return "asc"
	}
	return "desc"
}

// buildSearchBody assembles the _search request body: query, sort, optional
// source filter, from and size.
func buildSearchBody(query string, source []string, sort string, asc bool, from, size int64) string {
	var b strings.Builder
	b.WriteByte('{')
	fmt.Fprintf(&b, `"query":%s,`, query)
	fmt.Fprintf(&b, `"sort":{"%s":"%s"},`, sort, sortDir(asc))
	if len(source) > 0 {
		b.WriteString(`"_source":[`)
		for i, s := range source {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%q", s)
		}
		b.WriteString("],")
	}
	fmt.Fprintf(&b, `"from":%d,"size":%d}`, from, size)
	return b.String()
}

// buildCountBody assembles the _count request body.
func buildCountBody(query string) string {
	return fmt.Sprintf(`{"query": %s}`, query)
}
