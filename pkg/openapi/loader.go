// Package openapi imports OpenAPI documents as form descriptors: an
// operation's request-body schema becomes a FormDescriptor the control tree
// builder can realise directly.
package openapi

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// Document is a loaded, unparsed OpenAPI payload.
type Document struct {
	raw    []byte
	source string
}

// NewDocument wraps an in-memory payload.
func NewDocument(raw []byte, source string) Document {
	return Document{raw: raw, source: source}
}

// Raw returns the document payload.
func (d Document) Raw() []byte { return d.raw }

// Source returns where the document came from, for diagnostics.
func (d Document) Source() string { return d.source }

// LoadFile reads a document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return NewDocument(data, path), nil
}

// LoadFS reads a document from a filesystem.
func LoadFS(fsys fs.FS, path string) (Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return NewDocument(data, path), nil
}

// LoadURL fetches a document over HTTP. A nil client falls back to
// http.DefaultClient.
func LoadURL(ctx context.Context, client *http.Client, url string) (Document, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: build request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("openapi: fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read response from %s: %w", url, err)
	}
	return NewDocument(data, url), nil
}

// Load resolves a source string: URLs are fetched, everything else is read
// from disk.
func Load(ctx context.Context, source string) (Document, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return LoadURL(ctx, nil, source)
	}
	return LoadFile(source)
}
