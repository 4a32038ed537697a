// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/playcanvas2obj/internal/httputil"
	"github.com/pdiddy/playcanvas2obj/pkg/types"
)

const modelJSON = `{"model":{"vertices":[{"position":{"components":3,"data":[1,2,3]}}],"meshes":[]}}`

// memCache implements Cache in memory.
type memCache struct {
	entries map[string][]byte
	getErr  error
}

func (m *memCache) Get(url string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	b, ok := m.entries[url]
	return b, ok, nil
}

func (m *memCache) Put(url string, body []byte) error {
	if m.entries == nil {
		m.entries = map[string][]byte{}
	}
	m.entries[url] = body
	return nil
}

func jsonServer(t *testing.T, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/model.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"https://playcanv.as/model.json", true},
		{"http://localhost:8080/model.json", true},
		{"model.json", false},
		{"/tmp/https://x", false},
		{"ftp://example.com/model.json", false},
		{"HTTPS://example.com/model.json", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsURL(tt.src), tt.src)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(modelJSON), 0o644))

	doc, err := (&Loader{}).Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, doc.Model)
	require.Len(t, doc.Model.Vertices, 1)
	assert.Equal(t, []float64{1, 2, 3}, doc.Model.Vertices[0][types.AttrPosition].Data)
	assert.Empty(t, doc.Model.Meshes)
}

func TestLoad_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := (&Loader{}).Load(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, "file not found: "+path, err.Error())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model":`), 0o644))

	_, err := (&Loader{}).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON in "+path)
}

func TestLoad_URL(t *testing.T) {
	ts, calls := jsonServer(t, modelJSON)
	l := &Loader{Client: ts.Client()}

	doc, err := l.Load(context.Background(), ts.URL+"/model.json")
	require.NoError(t, err)
	require.NotNil(t, doc.Model)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestLoad_URLNotFound(t *testing.T) {
	ts, _ := jsonServer(t, modelJSON)
	l := &Loader{Client: ts.Client()}

	_, err := l.Load(context.Background(), ts.URL+"/other.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load URL "+ts.URL+"/other.json")

	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestLoad_URLInvalidJSON(t *testing.T) {
	ts, _ := jsonServer(t, "<html>")
	l := &Loader{Client: ts.Client()}

	_, err := l.Load(context.Background(), ts.URL+"/model.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON in "+ts.URL)
}

func TestLoad_CacheHitSkipsNetwork(t *testing.T) {
	ts, calls := jsonServer(t, modelJSON)
	url := ts.URL + "/model.json"
	c := &memCache{}
	var log bytes.Buffer
	l := &Loader{Client: ts.Client(), Cache: c, Log: &log}

	_, err := l.Load(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, modelJSON, string(c.entries[url]))

	_, err = l.Load(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Contains(t, log.String(), "cache hit: "+url)
}

func TestLoad_RefreshBypassesCache(t *testing.T) {
	ts, calls := jsonServer(t, modelJSON)
	url := ts.URL + "/model.json"
	c := &memCache{entries: map[string][]byte{url: []byte(`{"model":null}`)}}
	l := &Loader{Client: ts.Client(), Cache: c, Refresh: true}

	doc, err := l.Load(context.Background(), url)
	require.NoError(t, err)
	assert.NotNil(t, doc.Model)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, modelJSON, string(c.entries[url]))
}

func TestLoad_CacheErrorFallsBackToNetwork(t *testing.T) {
	ts, calls := jsonServer(t, modelJSON)
	var log bytes.Buffer
	l := &Loader{
		Client: ts.Client(),
		Cache:  &memCache{getErr: errors.New("database is locked")},
		Log:    &log,
	}

	_, err := l.Load(context.Background(), ts.URL+"/model.json")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Contains(t, log.String(), "warning: database is locked")
}

func TestLoad_LocalFilesBypassCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(modelJSON), 0o644))
	c := &memCache{}

	_, err := (&Loader{Cache: c}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, c.entries)
}
