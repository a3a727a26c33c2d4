// Package model defines shared types for the proxy.
package model

import (
	"context"
	"io"
	"net/http"
)

// ProxyRequest represents a client request to be forwarded upstream.
// RawQuery is the query string exactly as received, without the leading
// "?"; it is appended to the upstream URL verbatim, never re-encoded.
type ProxyRequest struct {
	Ctx      context.Context
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     io.ReadCloser
}

// ProxyResponse represents the upstream response to be streamed back.
type ProxyResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// ResolvedTarget is the forwarding destination computed for one request:
// the matched route's upstream host and the rewritten path. It lives for
// a single request and is never shared or cached.
type ResolvedTarget struct {
	Prefix string // matched route prefix, kept for logging and metrics
	Domain string
	Path   string
}
