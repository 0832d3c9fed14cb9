package esdeep

import (
	"github.com/sirupsen/logrus"
)

// MaxFrom and MaxSize are the largest from/size the orchestrator will ever
// ask the server for. They must satisfy MaxFrom+MaxSize <= the cluster's
// max_result_window (10000 by default); the defaults leave headroom.
const (
	MaxFrom = 2000
	MaxSize = 3000
)

// Client answers deep-paging search requests against an Elasticsearch
// cluster over a caller-supplied Transport. It holds no mutable state
// beyond its configuration, so a single Client is safe for concurrent use
// provided its Transport is.
type Client struct {
	transport Transport
	log       *logrus.Logger
	maxFrom   int64
	maxSize   int64
}

// ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithLogger overrides the logger used for phase-transition and round-trip
// tracing. Defaults to logrus.StandardLogger().
func WithLogger(l *logrus.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// WithMaxFrom overrides the MaxFrom ceiling used to bound every sub-request.
// Callers should only raise this in step with their cluster's
// max_result_window setting.
func WithMaxFrom(maxFrom int64) ClientOption {
	return func(c *Client) { c.maxFrom = maxFrom }
}

// WithMaxSize overrides the MaxSize ceiling used to bound every sub-request.
func WithMaxSize(maxSize int64) ClientOption {
	return func(c *Client) { c.maxSize = maxSize }
}

// NewClient builds a Client over the given Transport.
func NewClient(transport Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport: transport,
		log:       logrus.StandardLogger(),
		maxFrom:   MaxFrom,
		maxSize:   MaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
