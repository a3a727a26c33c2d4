// Package service implements the core routing and forwarding logic.
package service

import (
	"log/slog"

	"domain-proxy-go/internal/client"
	"domain-proxy-go/internal/config"
	"domain-proxy-go/internal/model"
	"domain-proxy-go/internal/route"
)

// ProxyService resolves inbound paths against the route table and
// forwards matched requests to their upstream host.
type ProxyService struct {
	table  route.Table
	client *client.UpstreamClient
	cfg    *config.Config
	logger *slog.Logger
	scheme string
}

// NewProxyService creates a ProxyService. Upstream traffic always uses
// HTTPS; route domains are bare hosts without a scheme.
func NewProxyService(table route.Table, c *client.UpstreamClient, cfg *config.Config, logger *slog.Logger) *ProxyService {
	return &ProxyService{
		table:  table,
		client: c,
		cfg:    cfg,
		logger: logger.With("component", "proxy_service"),
		scheme: "https",
	}
}

// NewProxyServiceForTest creates a ProxyService that forwards over plain
// HTTP. This is intended only for tests that use httptest servers on
// localhost.
func NewProxyServiceForTest(table route.Table, c *client.UpstreamClient, cfg *config.Config, logger *slog.Logger) *ProxyService {
	s := NewProxyService(table, c, cfg, logger)
	s.scheme = "http"
	return s
}

// Table returns the resolved route table.
func (s *ProxyService) Table() route.Table {
	return s.table
}

// Resolve matches path against the route table and computes the
// forwarding target: the matched route's domain plus the rewritten
// remainder of the path. It reports false when no route prefix matches,
// in which case the caller serves the homepage instead.
func (s *ProxyService) Resolve(path string) (model.ResolvedTarget, bool) {
	r, ok := s.table.Match(path)
	if !ok {
		return model.ResolvedTarget{}, false
	}

	remaining := path[len(r.Prefix):]
	return model.ResolvedTarget{
		Prefix: r.Prefix,
		Domain: r.Domain,
		Path:   r.Rewrite(remaining),
	}, true
}

// Forward sends the request to the resolved target and returns the
// upstream response untouched: status, headers and body all pass
// through. The caller is responsible for closing the response body.
//
// Transport failures are wrapped and returned, never handled here; the
// handler layer turns them into gateway error responses.
func (s *ProxyService) Forward(pr *model.ProxyRequest, target model.ResolvedTarget) (*model.ProxyResponse, error) {
	upstreamURL := s.buildUpstreamURL(target, pr.RawQuery)

	s.logger.Debug("forwarding request",
		"method", pr.Method,
		"path", pr.Path,
		"prefix", target.Prefix,
		"domain", target.Domain,
		"target_path", target.Path,
	)

	// Clone so the outbound request never aliases the inbound header map.
	return s.client.DoStream(pr.Ctx, pr.Method, upstreamURL, pr.Header.Clone(), pr.Body)
}

// buildUpstreamURL assembles scheme://domain/path with the original raw
// query appended verbatim. The query is never parsed or re-encoded, so
// it reaches the upstream byte-for-byte — including its absence.
func (s *ProxyService) buildUpstreamURL(target model.ResolvedTarget, rawQuery string) string {
	u := s.scheme + "://" + target.Domain + target.Path
	if rawQuery != "" {
		u += "?" + rawQuery
	}
	return u
}
