package jsonbin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL,
		WithTimeout(2*time.Second),
		WithRetry(3),
		WithRetryDelay(10*time.Millisecond),
		WithHeaderProvider(func() map[string]string {
			return map[string]string{"X-Master-Key": "test-key"}
		}),
	)
}

func TestGetDocument(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/bin1/latest" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Master-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		_ = json.NewEncoder(w).Encode(bingodto.GameDataDocument{Tasks: []string{"A"}, Users: []string{"alice"}})
	}))

	var doc bingodto.GameDataDocument
	if err := c.GetDocument(context.Background(), "bin1", &doc); err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if len(doc.Tasks) != 1 || doc.Users[0] != "alice" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestRetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"winners":[]}`))
	}))

	var doc bingodto.WinnersDocument
	if err := c.GetDocument(context.Background(), "bin2", &doc); err != nil {
		t.Fatalf("expected retries to succeed, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	var doc bingodto.WinnersDocument
	if err := c.GetDocument(context.Background(), "bin3", &doc); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	var doc bingodto.WinnersDocument
	if err := c.GetDocument(context.Background(), "bin4", &doc); err == nil {
		t.Fatalf("expected error on 401")
	}
	if calls.Load() != 1 {
		t.Fatalf("401 must not be retried, got %d attempts", calls.Load())
	}
}

func TestPutDocumentBody(t *testing.T) {
	var got bingodto.WinnersDocument
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/bin5" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))

	in := &bingodto.WinnersDocument{Winners: []bingodto.WinnerEntry{{Name: "alice", Score: 2}}}
	if err := c.PutDocument(context.Background(), "bin5", in); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	if len(got.Winners) != 1 || got.Winners[0].Score != 2 {
		t.Fatalf("server saw wrong body: %+v", got)
	}
}

func TestMalformedDocument(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"winners": "not a list"`))
	}))

	var doc bingodto.WinnersDocument
	err := c.GetDocument(context.Background(), "bin6", &doc)
	if !errors.Is(err, bingodto.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}
