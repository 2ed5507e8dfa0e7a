// Package dialog sequences recognition, LLM transformation and speech
// synthesis for each user's single active document.
package dialog

import (
	"context"
	"errors"
	"sync"
	"time"

	"docvoice-backend/internal/files"
	"docvoice-backend/internal/llm"
	"docvoice-backend/internal/recognize"
	"docvoice-backend/internal/shared/telemetry"
	"docvoice-backend/internal/speech"
)

// Failures callers must branch on before proceeding.
var (
	// ErrNoDocument means the user has not uploaded a file yet.
	ErrNoDocument = errors.New("no document found")
	// ErrNoText means the requested action needs recognized text and
	// none exists in the session.
	ErrNoText = errors.New("no text available")
)

// Menu tells the transport which keyboard to render next.
type Menu string

const (
	MenuNone      Menu = ""
	MenuMain      Menu = "main"
	MenuTransform Menu = "transform"
	MenuAfterText Menu = "after_text"
)

// Reply is what a menu selection produces: an optional notice, the text
// chunks to deliver in order, and the next menu.
type Reply struct {
	Notice string
	Chunks []string
	Menu   Menu
}

// Timeouts bound the long-latency capability calls. Zero values leave
// calls unbounded.
type Timeouts struct {
	OCR time.Duration
	LLM time.Duration
	TTS time.Duration
}

// session is the per-user conversation state. transformedText is only
// meaningful while recognizedText from the same cycle is set; both are
// cleared on a new upload and transformedText on every new recognition.
type session struct {
	recognizedText  string
	transformedText string
}

// Controller is the per-user state machine over the pipeline components.
type Controller struct {
	Files     *files.Service
	Extractor *recognize.Extractor
	Router    *llm.Router
	Synth     speech.Synthesizer
	Timeouts  Timeouts

	mu       sync.Mutex
	sessions map[string]*session
}

// NewController constructs a Controller.
func NewController(f *files.Service, ex *recognize.Extractor, r *llm.Router, s speech.Synthesizer, t Timeouts) *Controller {
	return &Controller{
		Files:     f,
		Extractor: ex,
		Router:    r,
		Synth:     s,
		Timeouts:  t,
		sessions:  make(map[string]*session),
	}
}

func (c *Controller) session(userID string) *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[userID]
	if !ok {
		s = &session{}
		c.sessions[userID] = s
	}
	return s
}

// NoteUpload records that a new document replaced the previous one and
// invalidates any text recognized from the prior document, so stale text
// can never be transformed or spoken.
func (c *Controller) NoteUpload(userID string) Reply {
	s := c.session(userID)
	c.mu.Lock()
	s.recognizedText = ""
	s.transformedText = ""
	c.mu.Unlock()
	return Reply{Notice: "Файл загружен. Выберите действие:", Menu: MenuMain}
}

// Select dispatches one menu selection for a user. Failures come back as
// taxonomy errors; nothing here is fatal to the process.
func (c *Controller) Select(ctx context.Context, userID string, intent Intent) (Reply, error) {
	switch intent {
	case IntentRecognize:
		return c.recognizeDocument(ctx, userID, recognize.ModeText, false)
	case IntentRecognizePhoto:
		return c.recognizeDocument(ctx, userID, recognize.ModePhoto, false)
	case IntentRecognizeLLM:
		return c.recognizeDocument(ctx, userID, recognize.ModeText, true)
	case IntentSummarize, IntentTranslate, IntentExplain, IntentReconstruct:
		action, _ := transformAction(intent)
		return c.transform(ctx, userID, action)
	case IntentBack:
		return Reply{Notice: "Отправьте изображение или PDF-файл с текстом.", Menu: MenuMain}, nil
	default:
		// Unknown intents are filtered at the transport boundary.
		return Reply{}, nil
	}
}

func (c *Controller) recognizeDocument(ctx context.Context, userID string, mode recognize.Mode, viaLLM bool) (Reply, error) {
	doc, err := c.Files.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return Reply{}, ErrNoDocument
		}
		telemetry.Error("dialog.latest.failed", map[string]any{"user_id": userID, "err": err.Error()})
		return Reply{}, ErrNoDocument
	}

	ctx, cancel := withTimeout(ctx, c.Timeouts.OCR)
	defer cancel()

	text, err := c.Extractor.Extract(ctx, doc, mode)
	if err != nil {
		return Reply{}, err
	}

	s := c.session(userID)
	c.mu.Lock()
	s.recognizedText = text
	s.transformedText = "" // new recognition cycle
	c.mu.Unlock()

	if viaLLM {
		return Reply{Notice: "Текст распознан. Что сделать с ним?", Menu: MenuTransform}, nil
	}
	return Reply{Chunks: SplitMessage(text, ChunkLimit), Menu: MenuAfterText}, nil
}

func (c *Controller) transform(ctx context.Context, userID string, action llm.Action) (Reply, error) {
	s := c.session(userID)
	c.mu.Lock()
	recognized := s.recognizedText
	c.mu.Unlock()
	if recognized == "" {
		return Reply{}, ErrNoText
	}

	ctx, cancel := withTimeout(ctx, c.Timeouts.LLM)
	defer cancel()

	out, err := c.Router.Transform(ctx, action, recognized)
	if err != nil {
		return Reply{}, err
	}

	c.mu.Lock()
	s.transformedText = out
	c.mu.Unlock()

	return Reply{Chunks: SplitMessage(out, ChunkLimit), Menu: MenuAfterText}, nil
}

// Synthesize speaks the session's text, preferring the transformed text
// and falling back to the raw recognized text. It returns MP3 audio; the
// caller owns delivery and any transient artifact.
func (c *Controller) Synthesize(ctx context.Context, userID string) ([]byte, error) {
	s := c.session(userID)
	c.mu.Lock()
	text := s.transformedText
	if text == "" {
		text = s.recognizedText
	}
	c.mu.Unlock()
	if text == "" {
		return nil, ErrNoText
	}

	ctx, cancel := withTimeout(ctx, c.Timeouts.TTS)
	defer cancel()

	audio, err := c.Synth.Synthesize(ctx, text)
	if err != nil {
		telemetry.Error("dialog.synthesize.failed", map[string]any{"user_id": userID, "err": err.Error()})
		return nil, speech.ErrSynthesis
	}
	return audio, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
