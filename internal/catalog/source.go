package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/party-share/internal/domain/party"
)

// Document is the catalog file format: one list of items per category
type Document struct {
	Characters []party.Item `json:"characters" yaml:"characters"`
	Remnants   []party.Item `json:"remnants" yaml:"remnants"`
}

// Items returns the list for one category
func (d *Document) Items(category party.Category) []party.Item {
	switch category {
	case party.CategoryCharacter:
		return d.Characters
	case party.CategoryRemnant:
		return d.Remnants
	}
	return nil
}

// Source fetches a catalog document
type Source interface {
	Fetch(ctx context.Context) (*Document, error)
}

// FileSource reads a YAML (.yaml, .yml) or JSON catalog from disk
type FileSource struct {
	Path string
}

// Fetch reads and parses the file
func (s *FileSource) Fetch(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return parse(data, filepath.Ext(s.Path))
}

// HTTPSourceConfig holds configuration for an HTTP catalog
type HTTPSourceConfig struct {
	URL        string
	HttpClient *http.Client
	Timeout    time.Duration
}

// HTTPSource fetches a JSON or YAML catalog over HTTP
type HTTPSource struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPSource creates an HTTP catalog source
func NewHTTPSource(cfg *HTTPSourceConfig) *HTTPSource {
	if cfg.URL == "" {
		panic("catalog url is required")
	}

	client := cfg.HttpClient
	if client == nil {
		client = http.DefaultClient
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &HTTPSource{
		url:     cfg.URL,
		client:  client,
		timeout: timeout,
	}
}

// Fetch downloads and parses the catalog
func (s *HTTPSource) Fetch(ctx context.Context) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch catalog: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog body: %w", err)
	}

	ext := filepath.Ext(req.URL.Path)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		ext = ".yaml"
	}
	return parse(data, ext)
}

func parse(data []byte, ext string) (*Document, error) {
	var doc Document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog json: %w", err)
		}
	}
	return &doc, nil
}
