// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPStore(t *testing.T, serverURL, prefix string) ObjectStore {
	t.Helper()
	store, err := NewHTTPObjectStore(config.ClientRemote{
		Kind:           config.RemoteKindHTTP,
		Endpoint:       serverURL,
		Token:          "t0k",
		Prefix:         prefix,
		RequestTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return store
}

func TestNewHTTPObjectStore_InvalidEndpoint(t *testing.T) {
	_, err := NewHTTPObjectStore(config.ClientRemote{Endpoint: "  "}, logger.Nop())
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "adds scheme", raw: "localhost:9000", want: "http://localhost:9000"},
		{name: "trims slash", raw: "https://gw.example.com/", want: "https://gw.example.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestHTTPGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/objects/users/42/notes/n1.json", r.URL.Path)
		assert.Equal(t, "Bearer t0k", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"n1"}`))
	}))
	defer srv.Close()

	obj, err := newTestHTTPStore(t, srv.URL, "users/42").Get(context.Background(), NoteJSONKey("n1"))

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"n1"}`, string(obj.Body))
	assert.Equal(t, "application/json", obj.ContentType)
}

func TestHTTPGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestHTTPStore(t, srv.URL, "").Get(context.Background(), VaultKey)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, CategoryNotFound, CategoryOf(err))
}

func TestHTTPGet_StatusCategories(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Category
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: CategoryAuth},
		{name: "forbidden", status: http.StatusForbidden, body: "access denied", want: CategoryAuth},
		{name: "cors", status: http.StatusForbidden, body: "blocked by CORS policy", want: CategoryCORS},
		{name: "request timeout", status: http.StatusRequestTimeout, want: CategoryTimeout},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, want: CategoryTimeout},
		{name: "bad gateway", status: http.StatusBadGateway, want: CategoryNetwork},
		{name: "internal", status: http.StatusInternalServerError, body: "boom", want: CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestHTTPStore(t, srv.URL, "").Get(context.Background(), VaultKey)

			require.Error(t, err)
			var remoteErr *RemoteError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, tt.want, remoteErr.Category)
			assert.Equal(t, "get", remoteErr.Op)
			assert.Equal(t, VaultKey, remoteErr.Key)
		})
	}
}

func TestHTTPGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestHTTPStore(t, srv.URL, "").Get(ctx, VaultKey)

	require.Error(t, err)
	assert.Equal(t, CategoryTimeout, CategoryOf(err))
}

func TestHTTPGet_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestHTTPStore(t, url, "").Get(context.Background(), VaultKey)

	require.Error(t, err)
	assert.Equal(t, CategoryNetwork, CategoryOf(err))
	assert.Contains(t, Describe(err), "network: ")
}

// ── Put / Delete ────────────────────────────────────────────────────────────

func TestHTTPPut_SendsBodyAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/objects/assets/a1", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newTestHTTPStore(t, srv.URL, "").Put(context.Background(), AssetKey("a1"), []byte{0x89, 'P', 'N', 'G'}, "image/png")
	require.NoError(t, err)
}

func TestHTTPPut_DefaultContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
	}))
	defer srv.Close()

	err := newTestHTTPStore(t, srv.URL, "").Put(context.Background(), AssetKey("a1"), []byte("x"), "")
	require.NoError(t, err)
}

func TestHTTPDelete_NotFoundIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestHTTPStore(t, srv.URL, "").Delete(context.Background(), NoteMarkdownKey("gone"))
	require.NoError(t, err)
}

func TestHTTPDelete_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newTestHTTPStore(t, srv.URL, "").Delete(context.Background(), NoteJSONKey("n1"))
	assert.Equal(t, CategoryAuth, CategoryOf(err))
}

// ── List / Ping ─────────────────────────────────────────────────────────────

func TestHTTPList_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/objects", r.URL.Path)
		assert.Equal(t, "u/1/assets/", r.URL.Query().Get("prefix"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("continuation-token") {
		case "":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"objects":               []map[string]any{{"key": "u/1/assets/a1", "size": 3}},
				"nextContinuationToken": "page2",
			})
		case "page2":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"objects": []map[string]any{{"key": "u/1/assets/a2", "size": 5}},
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL, "/u/1/")

	first, err := store.List(context.Background(), AssetsPrefix, "")
	require.NoError(t, err)
	require.Len(t, first.Objects, 1)
	assert.Equal(t, "assets/a1", first.Objects[0].Key)
	assert.Equal(t, int64(3), first.Objects[0].Size)
	assert.Equal(t, "page2", first.NextToken)

	second, err := store.List(context.Background(), AssetsPrefix, first.NextToken)
	require.NoError(t, err)
	require.Len(t, second.Objects, 1)
	assert.Equal(t, "assets/a2", second.Objects[0].Key)
	assert.Empty(t, second.NextToken)
}

func TestHTTPPing(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL, "")
	require.NoError(t, store.Ping(context.Background()))

	healthy.Store(false)
	err := store.Ping(context.Background())
	assert.Equal(t, CategoryNetwork, CategoryOf(err))
}
