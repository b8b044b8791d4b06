package radarr_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"starsweep/internal/services"
	"starsweep/internal/services/radarr"
)

func TestFindMovieResolvesFirstMatch(t *testing.T) {
	t.Parallel()

	var gotKey, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":42,"title":"Heat"}]`))
	}))
	defer server.Close()

	client := radarr.New(server.URL, "key", 5*time.Second, 5*time.Second)
	id, err := client.FindMovie(context.Background(), "949")
	if err != nil {
		t.Fatalf("FindMovie: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if gotKey != "key" {
		t.Fatalf("expected X-Api-Key header, got %q", gotKey)
	}
	if gotQuery != "tmdbId=949" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestFindMovieEmptyLibraryIsNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := radarr.New(server.URL, "key", time.Second, time.Second)
	if _, err := client.FindMovie(context.Background(), "949"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for empty lookup, got %v", err)
	}
}

func TestDeleteMovieSendsFileFlags(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := radarr.New(server.URL, "key", time.Second, time.Second)
	if err := client.DeleteMovie(context.Background(), 42); err != nil {
		t.Fatalf("DeleteMovie: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v3/movie/42" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotQuery != "deleteFiles=true&addImportExclusion=false" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestDeleteMovieMissingIsNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := radarr.New(server.URL, "key", time.Second, time.Second)
	if err := client.DeleteMovie(context.Background(), 7); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestFindMovieServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := radarr.New(server.URL, "key", time.Second, time.Second)
	if _, err := client.FindMovie(context.Background(), "949"); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
