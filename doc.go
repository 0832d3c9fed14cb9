// Package esdeep answers paginated Elasticsearch search queries for
// arbitrary from/size offsets, including offsets far beyond the cluster's
// max_result_window, without scroll or point-in-time APIs and without
// requiring the operator to raise that limit.
//
// Client.Search transforms a large (from, size) request into a sequence of
// bounded sub-queries: tail reversal when the window lies past the
// midpoint of the matched set (Phase A), a binary search over the sort-key
// domain using _count to collapse a still-too-large offset (Phase B), and
// search_after-style cursoring via range filters for the remaining pages
// (Phase C). See the package source for the per-phase design; the matched
// set must have a single, unique int64 sort key field for the algorithm to
// be correct.
package esdeep
