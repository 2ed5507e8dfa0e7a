package llm

import (
	"context"
	"strings"

	"docvoice-backend/internal/shared/telemetry"
)

// Action names one of the fixed text transformations.
type Action string

const (
	ActionSummarize   Action = "summarize"
	ActionTranslate   Action = "translate"
	ActionExplain     Action = "explain"
	ActionReconstruct Action = "reconstruct"
)

// directives wrap the recognized text into one fixed prompt per action.
var directives = map[Action]string{
	ActionSummarize:   "Сделай краткий пересказ:",
	ActionTranslate:   "Переведи на английский:",
	ActionExplain:     "Объясни смысл:",
	ActionReconstruct: "Собери текст по смыслу, без каких либо дополнений:",
}

// Known reports whether the action is part of the fixed transform set.
func Known(action Action) bool {
	_, ok := directives[action]
	return ok
}

// BuildPrompt concatenates the action's directive with the recognized text.
func BuildPrompt(action Action, text string) string {
	return directives[action] + "\n" + text
}

// Router maps an action to a templated request and interprets the
// response. Failures are logged and reported as ErrLLM.
type Router struct {
	Client Client
}

// Transform runs one fixed transformation over the recognized text and
// returns the trimmed response content.
func (r *Router) Transform(ctx context.Context, action Action, text string) (string, error) {
	out, err := r.Client.Complete(ctx, BuildPrompt(action, text))
	if err != nil {
		telemetry.Error("llm.transform.failed", map[string]any{
			"action": string(action),
			"err":    err.Error(),
		})
		return "", ErrLLM
	}
	return strings.TrimSpace(out), nil
}
