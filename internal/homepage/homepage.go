// Package homepage serves the fallback landing document for requests
// that match no route.
package homepage

import (
	"context"
	_ "embed"
	"log/slog"

	"domain-proxy-go/internal/config"
)

// ContentType is the media type of the homepage document.
const ContentType = "text/html; charset=utf-8"

// indexName is the asset looked up in every configured source.
const indexName = "index.html"

//go:embed index.html
var defaultDocument []byte

// Service renders the homepage from the first asset source that yields
// content, with an embedded document as the final fallback. Rendering
// never fails: source errors are logged and swallowed.
type Service struct {
	sources []Source
	logger  *slog.Logger
}

// New creates a Service with the asset sources the configuration
// enables, in fixed order: local directory, then static origin.
func New(cfg *config.Config, logger *slog.Logger) *Service {
	var sources []Source
	if cfg.Homepage.AssetDir != "" {
		sources = append(sources, NewDirSource(cfg.Homepage.AssetDir))
	}
	if cfg.Homepage.AssetURL != "" {
		sources = append(sources, NewHTTPSource(cfg.Homepage.AssetURL))
	}

	return &Service{
		sources: sources,
		logger:  logger.With("component", "homepage"),
	}
}

// Render returns the homepage document bytes. Sources are tried in
// order; the embedded document is returned when none yields content.
func (s *Service) Render(ctx context.Context) []byte {
	for _, src := range s.sources {
		data, err := src.Fetch(ctx, indexName)
		if err == nil && len(data) > 0 {
			return data
		}
		s.logger.Debug("homepage asset source miss",
			"source", src.Name(),
			"err", err,
		)
	}

	if len(s.sources) > 0 {
		s.logger.Warn("all homepage asset sources failed, serving embedded document")
	}
	return defaultDocument
}
