// Package gtts implements speech.Synthesizer against the Google Translate
// text-to-speech endpoint.
package gtts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docvoice-backend/internal/speech"
)

const defaultBaseURL = "https://translate.google.com/translate_tts"

// The endpoint rejects long inputs, so text is synthesized in utterances
// of at most this many runes and the MP3 payloads are concatenated.
const maxUtteranceRunes = 200

// Client implements speech.Synthesizer. Language is fixed to Russian.
type Client struct {
	baseURL    string
	lang       string
	httpClient *http.Client
}

// NewClient constructs a synthesizer. baseURL may be empty to use the
// public endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		lang:    "ru",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Synthesize converts text to MP3 audio.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}
	var audio []byte
	for _, utterance := range splitUtterances(text, maxUtteranceRunes) {
		part, err := c.fetch(ctx, utterance)
		if err != nil {
			return nil, err
		}
		audio = append(audio, part...)
	}
	return audio, nil
}

func (c *Client) fetch(ctx context.Context, utterance string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", c.lang)
	params.Set("q", utterance)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts endpoint status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// splitUtterances breaks text into rune-bounded pieces, preferring to cut
// at the last whitespace inside the window.
func splitUtterances(text string, limit int) []string {
	runes := []rune(text)
	var out []string
	for len(runes) > 0 {
		if len(runes) <= limit {
			out = append(out, string(runes))
			break
		}
		cut := limit
		for i := limit; i > 0; i-- {
			if runes[i-1] == ' ' || runes[i-1] == '\n' || runes[i-1] == '\t' {
				cut = i
				break
			}
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
	}
	return out
}

var _ speech.Synthesizer = (*Client)(nil)
