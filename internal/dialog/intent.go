package dialog

import "docvoice-backend/internal/llm"

// Intent is the enumerated menu selection at the transport boundary.
// Display strings never reach the core.
type Intent string

const (
	IntentRecognize      Intent = "recognize"
	IntentRecognizePhoto Intent = "recognize_photo"
	IntentRecognizeLLM   Intent = "recognize_llm"
	IntentSummarize      Intent = "summarize"
	IntentTranslate      Intent = "translate"
	IntentExplain        Intent = "explain"
	IntentReconstruct    Intent = "reconstruct"
	IntentToAudio        Intent = "to_audio"
	IntentBack           Intent = "back"
)

var intents = map[Intent]struct{}{
	IntentRecognize:      {},
	IntentRecognizePhoto: {},
	IntentRecognizeLLM:   {},
	IntentSummarize:      {},
	IntentTranslate:      {},
	IntentExplain:        {},
	IntentReconstruct:    {},
	IntentToAudio:        {},
	IntentBack:           {},
}

// ParseIntent maps a raw action string to an Intent. Unknown input is
// reported via ok=false and must be ignored by the caller.
func ParseIntent(raw string) (Intent, bool) {
	in := Intent(raw)
	_, ok := intents[in]
	return in, ok
}

// transformAction maps transform intents to the fixed LLM action set.
func transformAction(in Intent) (llm.Action, bool) {
	switch in {
	case IntentSummarize:
		return llm.ActionSummarize, true
	case IntentTranslate:
		return llm.ActionTranslate, true
	case IntentExplain:
		return llm.ActionExplain, true
	case IntentReconstruct:
		return llm.ActionReconstruct, true
	default:
		return "", false
	}
}
