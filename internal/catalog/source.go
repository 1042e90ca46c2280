package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source fetches a named catalog document.
type Source interface {
	// Fetch returns the raw bytes of the document called name
	// ("questions" or "prompts") and the format they are encoded in.
	Fetch(ctx context.Context, name string) ([]byte, Format, error)

	// String describes the source for logs and error messages.
	String() string
}

// ErrNotFound is returned when a source has no document with the requested name.
var ErrNotFound = errors.New("document not found")

//go:embed defaults/*.json
var defaultFS embed.FS

// Default returns the catalog compiled into the binary.
func Default() Source {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return &FSSource{FS: sub, Label: "embedded"}
}

// Dir returns a source reading documents from a directory on disk.
func Dir(path string) Source {
	return &FSSource{FS: os.DirFS(path), Label: path}
}

// FSSource reads documents from a file system, trying
// <name>.json, <name>.yaml and <name>.yml in that order.
type FSSource struct {
	FS    fs.FS
	Label string
}

var fsExtensions = []string{".json", ".yaml", ".yml"}

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, Format, error) {
	for _, ext := range fsExtensions {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		file := name + ext
		data, err := fs.ReadFile(s.FS, file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("read %s: %w", file, err)
		}
		return data, FormatFromName(file), nil
	}
	return nil, "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

func (s *FSSource) String() string {
	if s.Label != "" {
		return s.Label
	}
	return "fs"
}

// DefaultMaxDocumentSize caps the bytes read for one fetched document.
const DefaultMaxDocumentSize = 4 << 20

// ErrTooLarge is returned when a fetched document exceeds the size cap.
var ErrTooLarge = errors.New("document too large")

// HTTPSource fetches <BaseURL>/<name>.json over HTTP.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	maxSize int64
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the per-request timeout. A client passed to
// WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		c := *s.client
		c.Timeout = d
		s.client = &c
	}
}

// WithMaxSize sets the size cap for one document.
func WithMaxSize(n int64) HTTPOption {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// NewHTTPSource creates a source rooted at baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		maxSize: DefaultMaxDocumentSize,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, Format, error) {
	url := s.baseURL + "/" + name + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, "", fmt.Errorf("%s: %w (limit %d bytes)", url, ErrTooLarge, s.maxSize)
	}
	return data, FormatJSON, nil
}

func (s *HTTPSource) String() string {
	return s.baseURL
}
