package prompts

import (
	_ "embed"
	"strings"
)

//go:embed template/intent_prompt.txt
var intentSystemPrompt string

// formatInstructions pins the NLU output shape. Kept separate from the
// template so the extractor's JSON repair logic and the instructions the
// model sees cannot drift apart silently.
const formatInstructions = `Reply with a single JSON object and nothing else:
{"intent": "insert|select|update|delete|sum|unknown", "date": "YYYY-MM-DD" or null, "item": string or null, "amount": integer or null, "target": "last" or null}`

// RenderIntentSystem produces the full system prompt for one intent
// extraction: base template with today's date substituted, optional
// context resources, and the formatting contract.
func RenderIntentSystem(today, resourceContext string) string {
	content := strings.NewReplacer(
		"{today}", today,
	).Replace(intentSystemPrompt)

	context := strings.TrimSpace(resourceContext)
	if context == "" {
		context = "(none)"
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n\nContext resources:\n")
	b.WriteString(context)
	b.WriteString("\n\nFormatting instructions:\n")
	b.WriteString(formatInstructions)
	return b.String()
}
