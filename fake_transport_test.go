package esdeep

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// fakeRequest records one Post call, for asserting on what the orchestrator
// actually sent (property 6: no request exceeds the configured limits).
type fakeRequest struct {
	path string
	body string
	from int64
	size int64
}

// fakeIndex simulates an Elasticsearch index of N documents with sort key
// "id" = 1..N, driving _search and _count the way a real cluster would for
// the specific query shapes esdeep's builders emit (match_all, and bool
// wrapping with a range filter on a single field).
type fakeIndex struct {
	mu   sync.Mutex
	n    int64
	reqs []fakeRequest
}

func newFakeIndex(n int64) *fakeIndex {
	return &fakeIndex{n: n}
}

func (f *fakeIndex) requests() []fakeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fakeRequest, len(f.reqs))
	copy(out, f.reqs)
	return out
}

func (f *fakeIndex) Post(ctx context.Context, path, body string) (string, error) {
	switch {
	case strings.HasSuffix(path, "/_count"):
		return f.handleCount(path, body)
	case strings.HasSuffix(path, "/_search"):
		return f.handleSearch(path, body)
	default:
		return "", fmt.Errorf("fakeIndex: unknown path %s", path)
	}
}

type countBody struct {
	Query json.RawMessage `json:"query"`
}

func (f *fakeIndex) handleCount(path, body string) (string, error) {
	var cb countBody
	if err := json.Unmarshal([]byte(body), &cb); err != nil {
		return "", fmt.Errorf("fakeIndex: bad count body: %w", err)
	}
	pred, err := compileQuery(cb.Query)
	if err != nil {
		return "", err
	}
	var n int64
	for id := int64(1); id <= f.n; id++ {
		if pred(id) {
			n++
		}
	}
	f.mu.Lock()
	f.reqs = append(f.reqs, fakeRequest{path: path, body: body})
	f.mu.Unlock()
	return fmt.Sprintf(`{"count":%d}`, n), nil
}

type searchBody struct {
	Query  json.RawMessage   `json:"query"`
	Sort   map[string]string `json:"sort"`
	Source []string          `json:"_source"`
	From   int64             `json:"from"`
	Size   int64             `json:"size"`
}

func (f *fakeIndex) handleSearch(path, body string) (string, error) {
	var sb searchBody
	if err := json.Unmarshal([]byte(body), &sb); err != nil {
		return "", fmt.Errorf("fakeIndex: bad search body: %w", err)
	}
	var sortField string
	var asc bool
	for k, v := range sb.Sort {
		sortField = k
		asc = v == "asc"
	}
	pred, err := compileQuery(sb.Query)
	if err != nil {
		return "", err
	}

	var matched []int64
	for id := int64(1); id <= f.n; id++ {
		if pred(id) {
			matched = append(matched, id)
		}
	}
	if asc {
		sort.Slice(matched, func(i, j int) bool { return matched[i] < matched[j] })
	} else {
		sort.Slice(matched, func(i, j int) bool { return matched[i] > matched[j] })
	}

	f.mu.Lock()
	f.reqs = append(f.reqs, fakeRequest{path: path, body: body, from: sb.From, size: sb.Size})
	f.mu.Unlock()

	lo := sb.From
	if lo > int64(len(matched)) {
		lo = int64(len(matched))
	}
	hi := lo + sb.Size
	if hi > int64(len(matched)) {
		hi = int64(len(matched))
	}
	page := matched[lo:hi]

	var b strings.Builder
	b.WriteString(`{"hits":{"hits":[`)
	for i, id := range page {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"_source":{"%s":%d}`, sortField, id)
		if len(sb.Source) == 0 {
			fmt.Fprintf(&b, `,"extra":"doc-%d"`, id)
		}
		fmt.Fprintf(&b, `,"sort":[%d]}`, id)
	}
	b.WriteString(`]}}`)
	return b.String(), nil
}

// compileQuery turns a raw query body (match_all, or a bool.must+range
// filter built by buildRangeQuery/buildCmpQuery) into a predicate over a
// document id.
func compileQuery(raw json.RawMessage) (func(id int64) bool, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("fakeIndex: bad query: %w", err)
	}
	if _, ok := generic["match_all"]; ok {
		return func(int64) bool { return true }, nil
	}
	boolRaw, ok := generic["bool"]
	if !ok {
		return nil, fmt.Errorf("fakeIndex: unsupported query shape: %s", raw)
	}
	var b struct {
		Must   json.RawMessage `json:"must"`
		Filter struct {
			Range map[string]map[string]float64 `json:"range"`
		} `json:"filter"`
	}
	if err := json.Unmarshal(boolRaw, &b); err != nil {
		return nil, fmt.Errorf("fakeIndex: bad bool query: %w", err)
	}
	mustPred, err := compileQuery(b.Must)
	if err != nil {
		return nil, err
	}
	for _, cond := range b.Filter.Range {
		cond := cond
		return func(id int64) bool {
			if !mustPred(id) {
				return false
			}
			f := float64(id)
			if v, ok := cond["gte"]; ok && !(f >= v) {
				return false
			}
			if v, ok := cond["lte"]; ok && !(f <= v) {
				return false
			}
			if v, ok := cond["gt"]; ok && !(f > v) {
				return false
			}
			if v, ok := cond["lt"]; ok && !(f < v) {
				return false
			}
			return true
		}, nil
	}
	return mustPred, nil
}
