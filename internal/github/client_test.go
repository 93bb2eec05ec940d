package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	gh "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/domain"
)

func newTestSource(t *testing.T, mux *http.ServeMux) (*Source, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return &Source{
		client:          client,
		owner:           "acme",
		repo:            "math",
		branch:          "main",
		uploadFolder:    "problems",
		solutionsFolder: "solutions",
	}, srv
}

func TestDownloadCarriesCommitTimestamp(t *testing.T) {
	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/math/contents/problems", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"type":"file","name":"a.txt","path":"problems/a.txt","sha":"abc","size":18,"download_url":"%s/raw/a.txt"}]`, baseURL)
	})
	mux.HandleFunc("/raw/a.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Solve x^2 - 9 = 0")
	})
	mux.HandleFunc("/repos/acme/math/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "problems/a.txt", r.URL.Query().Get("path"))
		assert.Equal(t, "main", r.URL.Query().Get("sha"))
		fmt.Fprint(w, `[{"sha":"c1","commit":{"committer":{"date":"2024-03-01T12:00:00Z"}}}]`)
	})

	src, srv := newTestSource(t, mux)
	baseURL = srv.URL

	sub, err := src.Download(context.Background(), domain.RemoteFile{
		Path: "problems/a.txt", Name: "a.txt", SHA: "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Solve x^2 - 9 = 0", string(sub.Content))
	assert.Equal(t, domain.FormatTXT, sub.Format)
	wantTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, sub.UploadedAt.Equal(wantTime), "uploaded at %s, want %s", sub.UploadedAt, wantTime)
}

func TestDownloadCommitLookupFailureIsNotFatal(t *testing.T) {
	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/math/contents/problems", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"type":"file","name":"a.txt","path":"problems/a.txt","sha":"abc","size":18,"download_url":"%s/raw/a.txt"}]`, baseURL)
	})
	mux.HandleFunc("/raw/a.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Solve x^2 - 9 = 0")
	})
	mux.HandleFunc("/repos/acme/math/commits", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	src, srv := newTestSource(t, mux)
	baseURL = srv.URL

	sub, err := src.Download(context.Background(), domain.RemoteFile{
		Path: "problems/a.txt", Name: "a.txt", SHA: "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Solve x^2 - 9 = 0", string(sub.Content))
	assert.True(t, sub.UploadedAt.IsZero())
}

func TestLastCommitTimeNoCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/math/commits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	src, _ := newTestSource(t, mux)

	ts, err := src.lastCommitTime(context.Background(), "problems/ghost.txt")
	require.NoError(t, err)
	assert.True(t, ts.IsZero())
}
