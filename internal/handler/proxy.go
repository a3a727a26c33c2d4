package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"domain-proxy-go/internal/homepage"
	"domain-proxy-go/internal/metrics"
	"domain-proxy-go/internal/model"
	"domain-proxy-go/internal/service"
)

// ProxyHandler dispatches inbound requests: root and index paths get the
// homepage, routed paths are forwarded upstream, everything else falls
// back to the homepage.
type ProxyHandler struct {
	service  *service.ProxyService
	homepage *homepage.Service
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewProxyHandler creates a ProxyHandler. The metrics parameter is
// optional; pass nil to disable routing metrics.
func NewProxyHandler(svc *service.ProxyService, hp *homepage.Service, m *metrics.Metrics, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service:  svc,
		homepage: hp,
		metrics:  m,
		logger:   logger.With("component", "proxy_handler"),
	}
}

// Handle runs the per-request dispatch sequence. It is stateless across
// requests; every decision derives from the request path and the table
// resolved at startup.
func (h *ProxyHandler) Handle(c echo.Context) error {
	req := c.Request()
	path := req.URL.Path

	if path == "/" || path == "/index.html" {
		return h.serveHomepage(c, "index")
	}

	target, ok := h.service.Resolve(path)
	if !ok {
		return h.serveHomepage(c, "no_route")
	}

	if h.metrics != nil {
		h.metrics.RoutedTotal.WithLabelValues(target.Prefix, target.Domain).Inc()
	}

	pr := &model.ProxyRequest{
		Ctx:      req.Context(),
		Method:   req.Method,
		Path:     path,
		RawQuery: req.URL.RawQuery,
		Header:   req.Header,
		Body:     req.Body,
	}

	resp, err := h.service.Forward(pr, target)
	if err != nil {
		return h.mapError(c, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Copy upstream response headers through unmodified.
	for key, vals := range resp.Header {
		for _, v := range vals {
			c.Response().Header().Add(key, v)
		}
	}

	c.Response().WriteHeader(resp.StatusCode)

	// Stream the upstream body directly to the client. If io.Copy fails
	// mid-stream (e.g. client disconnect, network error), the HTTP status
	// code has already been sent, so the client receives a truncated
	// response with the original status. This is an inherent trade-off of
	// streaming proxies — we log the error for observability.
	if _, err := io.Copy(c.Response(), resp.Body); err != nil {
		h.logger.Error("streaming response body",
			"err", err,
			"path", path,
		)
	}

	return nil
}

// serveHomepage renders the fallback landing document. This path never
// fails the request.
func (h *ProxyHandler) serveHomepage(c echo.Context, reason string) error {
	if h.metrics != nil {
		h.metrics.HomepageFallbacks.WithLabelValues(reason).Inc()
	}
	body := h.homepage.Render(c.Request().Context())
	return c.Blob(http.StatusOK, homepage.ContentType, body)
}

// mapError converts forwarding failures into gateway error responses.
// The bodies are deliberately opaque; transport details stay in the logs.
func (h *ProxyHandler) mapError(c echo.Context, err error) error {
	h.logger.Error("proxy error",
		"err", err,
		"path", c.Request().URL.Path,
	)

	if errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusGatewayTimeout, map[string]string{
			"error": "upstream request timed out",
		})
	}

	if errors.Is(err, context.Canceled) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "client disconnected",
		})
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream host unreachable",
		})
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream connection failed",
		})
	}

	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": "upstream request failed",
	})
}
