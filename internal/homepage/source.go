package homepage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound reports that a source has no asset under the given name.
var ErrNotFound = errors.New("asset not found")

// Source fetches the bytes of a named asset, or reports its absence.
// Sources are tried in order by the homepage service; any error moves on
// to the next source.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads assets from a local directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Name implements Source.
func (s *DirSource) Name() string { return "dir:" + s.dir }

// Fetch implements Source. The asset name is cleaned before joining so a
// crafted name cannot escape the directory.
func (s *DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	path := filepath.Join(s.dir, filepath.Clean("/"+name))
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// maxAssetBytes caps how much a remote source may return for one asset.
const maxAssetBytes = 4 * 1024 * 1024

// HTTPSource fetches assets from a static origin over HTTP(S).
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates an HTTPSource for the given origin base URL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return "http:" + s.baseURL }

// Fetch implements Source. A 404 from the origin maps to ErrNotFound;
// any other non-2xx status is an error.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("build asset request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch asset: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("read asset body: %w", err)
	}
	return data, nil
}
