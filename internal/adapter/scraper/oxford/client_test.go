package oxford

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wordhabit/wordhabit-backend/internal/config"
	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.ScraperConfig{
		BaseURL:      baseURL,
		MaxPages:     5,
		PageDelay:    time.Millisecond,
		FetchTimeout: 5 * time.Second,
		UserAgent:    "test-agent",
	}, newTestLogger())
}

func pageFor(headword string) string {
	return fmt.Sprintf(`<html><body><div class="webtop"><h1 class="headword">%s</h1><span class="pos">noun</span></div></body></html>`, headword)
}

func TestClient_FetchWord_WalksNumberedPages(t *testing.T) {
	t.Parallel()

	var gotAgent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent.Store(r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/run_1":
			io.WriteString(w, pageFor("run"))
		case "/run_2":
			io.WriteString(w, pageFor("run"))
		case "/run_3":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL).FetchWord(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Headword != "run" {
		t.Errorf("Headword = %q, want %q", entries[0].Headword, "run")
	}
	if ua, _ := gotAgent.Load().(string); ua != "test-agent" {
		t.Errorf("User-Agent = %q, want %q", ua, "test-agent")
	}
}

func TestClient_FetchWord_UnknownWord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL).FetchWord(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}
}

func TestClient_FetchWord_SpacesBecomeHyphens(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ice-cream_1" {
			io.WriteString(w, pageFor("ice cream"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL).FetchWord(context.Background(), "ice cream")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
}

func TestClient_FetchWord_StopsOnHeadwordlessPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/run_1" {
			io.WriteString(w, pageFor("run"))
			return
		}
		// A 200 page with no headword also ends the walk.
		io.WriteString(w, `<html><body><p>nothing here</p></body></html>`)
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL).FetchWord(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
}

func TestClient_FetchWord_RetriesOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/run_1" && calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path == "/run_1" {
			io.WriteString(w, pageFor("run"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL).FetchWord(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestClient_FetchWord_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchWord(context.Background(), "run")
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
}
