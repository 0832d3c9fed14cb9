package esdeep

import "context"

// Transport is the narrow contract the deep pager needs from an HTTP
// client: post a JSON body to a relative path and get the response body
// back as a string. Anything satisfying this (a real cluster connection, a
// fake in a test) can drive Client. See transport/ for the pester-backed
// implementation used against a live cluster.
type Transport interface {
	Post(ctx context.Context, path, body string) (string, error)
}
