package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		assert.Equal(t, "fitness", r.URL.Query().Get("q"))
		assert.Equal(t, "health", r.URL.Query().Get("category"))
		assert.Equal(t, "key-123", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "One", "url": "http://a/1", "urlToImage": "http://a/1.jpg", "description": "d1", "author": "au1"},
				{"title": "Two", "url": "http://a/2", "urlToImage": "", "description": "", "author": ""}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-123", 5*time.Second)
	headlines, err := client.TopHeadlines(context.Background(), "fitness", "health")
	require.NoError(t, err)
	require.Len(t, headlines, 2)
	assert.Equal(t, "One", headlines[0].Title)
	assert.Equal(t, "http://a/1", headlines[0].URL)
	assert.Equal(t, "http://a/1.jpg", headlines[0].URLToImage)
	assert.Equal(t, "d1", headlines[0].Description)
	assert.Equal(t, "au1", headlines[0].Author)
	assert.Equal(t, "Two", headlines[1].Title)
}

func TestTopHeadlinesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", 5*time.Second)
	_, err := client.TopHeadlines(context.Background(), "q", "c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestTopHeadlinesUnreachable(t *testing.T) {
	// Port from a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "key", time.Second)
	_, err := client.TopHeadlines(context.Background(), "q", "c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestTopHeadlinesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", 5*time.Second)
	_, err := client.TopHeadlines(context.Background(), "q", "c")
	assert.Error(t, err)
}
