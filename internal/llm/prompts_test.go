package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeClient struct {
	out string
	err error
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	return f.out, f.err
}

func TestBuildPromptWrapsRecognizedText(t *testing.T) {
	prompt := BuildPrompt(ActionSummarize, "какой-то текст")
	if !strings.HasPrefix(prompt, "Сделай краткий пересказ:") {
		t.Fatalf("unexpected directive: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "какой-то текст") {
		t.Fatalf("prompt must end with the recognized text: %q", prompt)
	}
}

func TestKnownCoversExactlyFourActions(t *testing.T) {
	for _, a := range []Action{ActionSummarize, ActionTranslate, ActionExplain, ActionReconstruct} {
		if !Known(a) {
			t.Fatalf("action %q should be known", a)
		}
	}
	if Known(Action("dance")) {
		t.Fatal("unknown action must not be part of the transform set")
	}
}

func TestTransformTrimsResponse(t *testing.T) {
	r := &Router{Client: &fakeClient{out: "  summary \n"}}
	out, err := r.Transform(context.Background(), ActionSummarize, "text")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if out != "summary" {
		t.Fatalf("expected trimmed output, got %q", out)
	}
}

func TestTransformConvertsFailuresToErrLLM(t *testing.T) {
	r := &Router{Client: &fakeClient{err: errors.New("network down")}}
	_, err := r.Transform(context.Background(), ActionExplain, "text")
	if !errors.Is(err, ErrLLM) {
		t.Fatalf("expected ErrLLM, got %v", err)
	}
}
