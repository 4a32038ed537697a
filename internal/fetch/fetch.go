// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch loads PlayCanvas model documents from a local path or an
// HTTP(S) URL and decodes them.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"regexp"

	"github.com/pdiddy/playcanvas2obj/internal/httputil"
	"github.com/pdiddy/playcanvas2obj/pkg/types"
)

var urlPattern = regexp.MustCompile(`^https?://`)

// IsURL reports whether src is fetched over HTTP rather than read from disk.
func IsURL(src string) bool {
	return urlPattern.MatchString(src)
}

// Cache stores raw document bodies by URL. *cache.Store implements it.
type Cache interface {
	Get(url string) ([]byte, bool, error)
	Put(url string, body []byte) error
}

// Loader reads and decodes input documents.
type Loader struct {
	Client *http.Client
	Config types.FetchConfig

	// Cache, when set, is consulted before fetching a URL and filled after.
	Cache Cache

	// Refresh skips cache lookups; fetched bodies are still stored.
	Refresh bool

	// Log receives status lines such as cache hits. Nil discards them.
	Log io.Writer
}

// Load reads src and decodes it as a document. Errors are single
// descriptive messages naming src.
func (l *Loader) Load(ctx context.Context, src string) (*types.Document, error) {
	var data []byte
	var err error
	if IsURL(src) {
		data, err = l.fetchURL(ctx, src)
	} else {
		data, err = readFile(src)
	}
	if err != nil {
		return nil, err
	}
	return Decode(src, data)
}

// Decode parses data as a document read from src.
func Decode(src string, data []byte) (*types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", src, err)
	}
	return &doc, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if l.Cache != nil && !l.Refresh {
		body, ok, err := l.Cache.Get(url)
		if err != nil {
			l.logf("warning: %v\n", err)
		} else if ok {
			l.logf("cache hit: %s\n", url)
			return body, nil
		}
	}

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: l.Config.Timeout}
	}
	body, err := httputil.Get(ctx, client, url, httputil.GetOptions{
		UserAgent:  l.Config.UserAgent,
		Accept:     "application/json",
		Token:      l.Config.Token,
		MaxRetries: l.Config.RateLimitRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load URL %s: %w", url, err)
	}

	if l.Cache != nil {
		if err := l.Cache.Put(url, body); err != nil {
			l.logf("warning: %v\n", err)
		}
	}
	return body, nil
}

func (l *Loader) logf(format string, args ...any) {
	if l.Log != nil {
		fmt.Fprintf(l.Log, format, args...)
	}
}
