package gtts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSynthesizeConcatenatesUtterances(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("tl"); got != "ru" {
			t.Errorf("expected tl=ru, got %q", got)
		}
		queries = append(queries, q.Get("q"))
		_, _ = w.Write([]byte("mp3:"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	long := strings.Repeat("слово ", 100) // well past one utterance

	audio, err := client.Synthesize(context.Background(), long)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if len(queries) < 2 {
		t.Fatalf("expected multiple utterances, got %d", len(queries))
	}
	if len(audio) != len(queries)*len("mp3:") {
		t.Fatalf("expected concatenated payloads, got %d bytes for %d requests", len(audio), len(queries))
	}
	if joined := strings.Join(queries, ""); strings.ReplaceAll(joined, " ", "") != strings.ReplaceAll(long, " ", "") {
		t.Fatal("utterances must reconstruct the input text")
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	client := NewClient("", time.Second)
	if _, err := client.Synthesize(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestSynthesizeSurfacesEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.Synthesize(context.Background(), "текст"); err == nil {
		t.Fatal("expected error for endpoint failure")
	}
}

func TestSplitUtterancesPrefersWhitespaceCut(t *testing.T) {
	parts := splitUtterances("aaa bbb ccc", 7)
	if len(parts) != 2 || parts[0] != "aaa " || parts[1] != "bbb ccc" {
		t.Fatalf("unexpected split: %#v", parts)
	}
}
