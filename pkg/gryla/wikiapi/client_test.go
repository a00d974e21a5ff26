package wikiapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRevision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "revisions", q.Get("prop"))
		assert.Equal(t, "290319", q.Get("revids"))
		assert.Equal(t, "*", q.Get("rvslots"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":{"pages":{"5811":{"title":"Protocol",
			"revisions":[{"slots":{"main":{"*":"== Play ==\npage text"}}}]}}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	text, err := client.FetchRevision(context.Background(), 290319)
	require.NoError(t, err)
	assert.Equal(t, "== Play ==\npage text", text)
}

func TestFetchRevision_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.FetchRevision(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestFetchRevision_MissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"pages":{}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.FetchRevision(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no main-slot content")
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", nil)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	require.NotNil(t, client.http)
	assert.NotZero(t, client.http.Timeout)
}
