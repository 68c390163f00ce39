package omdb

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const placeholder = "YOUR_OMDB_API_KEY_FALLBACK"

func newClient(t *testing.T, baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(baseURL, apiKey, placeholder, timeout, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestLookupByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "real-key" {
			t.Errorf("apikey = %q, want real-key", q.Get("apikey"))
		}
		if q.Get("i") != "tt1375666" {
			t.Errorf("i = %q, want tt1375666", q.Get("i"))
		}
		if q.Get("t") != "" {
			t.Errorf("unexpected title selector %q", q.Get("t"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Title": "Inception",
			"Year": "2010",
			"Director": "Christopher Nolan",
			"Plot": "A thief who steals corporate secrets.",
			"Poster": "https://example.com/inception.jpg",
			"imdbID": "tt1375666",
			"Response": "True"
		}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "real-key", 3*time.Second)
	record, err := client.Lookup(context.Background(), Query{IMDBID: "tt1375666"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if record.Title != "Inception" || record.IMDBID != "tt1375666" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if poster := record.PosterURL(); poster == nil || *poster != "https://example.com/inception.jpg" {
		t.Fatalf("poster = %v", poster)
	}
}

func TestLookupByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("t"); got != "Inception" {
			t.Errorf("t = %q, want Inception", got)
		}
		_, _ = w.Write([]byte(`{"Title":"Inception","Year":"2010","imdbID":"tt1375666","Poster":"N/A","Response":"True"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "real-key", 3*time.Second)
	record, err := client.Lookup(context.Background(), Query{Title: "Inception"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if record.PosterURL() != nil {
		t.Fatalf("poster N/A should normalize to nil, got %v", record.PosterURL())
	}
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "real-key", 3*time.Second)
	_, err := client.Lookup(context.Background(), Query{Title: "No Such Movie"})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if notFound.Reason != "Movie not found!" {
		t.Fatalf("reason = %q, want upstream text", notFound.Reason)
	}
}

func TestLookupNotFoundFallbackReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "real-key", 3*time.Second)
	_, err := client.Lookup(context.Background(), Query{Title: "Whatever"})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if notFound.Reason != "Movie not found." {
		t.Fatalf("reason = %q, want generic fallback", notFound.Reason)
	}
}

func TestLookupPlaceholderKeySkipsNetwork(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		_, _ = w.Write([]byte(`{"Response":"True","Title":"Inception"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, placeholder, 3*time.Second)
	_, err := client.Lookup(context.Background(), Query{Title: "Inception"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Fatalf("placeholder key made %d network calls, want 0", n)
	}
}

func TestLookupNoSelector(t *testing.T) {
	client := newClient(t, "http://localhost:1", "real-key", time.Second)
	if _, err := client.Lookup(context.Background(), Query{}); !errors.Is(err, ErrNoSelector) {
		t.Fatalf("error = %v, want ErrNoSelector", err)
	}
}

func TestLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "real-key", 50*time.Millisecond)
	_, err := client.Lookup(context.Background(), Query{Title: "Slow"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestLookupConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections from now on

	client := newClient(t, srv.URL, "real-key", time.Second)
	_, err := client.Lookup(context.Background(), Query{Title: "Inception"})
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("error = %v, want ErrUnreachable", err)
	}
}

func TestLookupUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "real-key", time.Second)
	_, err := client.Lookup(context.Background(), Query{Title: "Inception"})
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("error = %v, want ErrUnreachable", err)
	}
}
