// Package speech abstracts text-to-speech synthesis.
package speech

import (
	"context"
	"errors"
)

// ErrSynthesis is the only synthesis failure callers see; the cause is
// logged at the component boundary.
var ErrSynthesis = errors.New("speech synthesis failed")

// Synthesizer converts a text blob into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
