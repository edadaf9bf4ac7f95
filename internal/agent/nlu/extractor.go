package nlu

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
	"github.com/kdhyo/ledger-ai/internal/agent/prompts"
	logx "github.com/kdhyo/ledger-ai/pkg/logger"
)

// maxCachedPrompts bounds the rendered-prompt cache. The prompt text
// changes at most daily (the {today} substitution) plus per distinct
// resource context, so a small LRU is plenty.
const maxCachedPrompts = 8

// DefaultTimeout bounds one NLU backend call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

type promptKey struct {
	backend Backend
	input   string
}

// Extractor orchestrates one NLU call per message: render the system
// prompt, invoke the backend, repair and validate its output, and fall
// back to the deterministic extractor whenever anything is unusable. A
// backend failure is never propagated; there is no retry.
type Extractor struct {
	backend Backend
	timeout time.Duration
	cache   *lru.Cache[promptKey, string]
}

func NewExtractor(backend Backend, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cache, _ := lru.New[promptKey, string](maxCachedPrompts)
	return &Extractor{backend: backend, timeout: timeout, cache: cache}
}

// systemPrompt renders (or recalls) the full system prompt for the given
// resource context. Keyed by backend identity plus the render inputs so
// sharing an Extractor per backend never crosses prompts between them.
func (e *Extractor) systemPrompt(resourceContext string) string {
	today := todayISO()
	key := promptKey{backend: e.backend, input: today + "\x00" + resourceContext}
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}
	rendered := prompts.RenderIntentSystem(today, resourceContext)
	e.cache.Add(key, rendered)
	return rendered
}

// rawIntent is the untrusted wire shape of the backend's answer. Amount
// stays any: models have been seen returning numbers, numeric strings,
// and unit-suffixed strings for the same field.
type rawIntent struct {
	Intent *string `json:"intent"`
	Date   *string `json:"date"`
	Item   *string `json:"item"`
	Amount any     `json:"amount"`
	Target *string `json:"target"`
}

// Extract resolves one message into an Intent. resourceContext is
// free-form context (recent entries, conversation turns) attached to the
// system prompt; pass "" when none is available.
func (e *Extractor) Extract(ctx context.Context, message, resourceContext string) model.Intent {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := e.backend.Chat(callCtx, e.systemPrompt(resourceContext), message)
	if err != nil {
		logx.Warn().Err(err).Msg("nlu backend call failed; using fallback extractor")
		return fallback(message)
	}

	raw, ok := parseIntentJSON(out)
	if !ok || raw.Intent == nil {
		return fallback(message)
	}

	kind := model.ParseIntentKind(strings.ToLower(strings.TrimSpace(*raw.Intent)))
	if kind == model.IntentUnknown {
		// the backend punted; prefer the fallback verdict when it has one
		if fb := Fallback(message); fb.Kind != model.IntentUnknown {
			fallbacksTotal.Inc()
			return fb
		}
	}

	intent := model.Intent{Kind: kind}

	if raw.Date != nil {
		if d, ok := NormalizeDate(*raw.Date); ok {
			intent.Date = d
		}
	}

	if raw.Item != nil {
		item := strings.TrimSpace(*raw.Item)
		if item != "" && ItemInMessage(message, item) {
			intent.Item = item
		} else if item != "" {
			logx.Debug().Str("item", item).Msg("discarding item absent from message")
		}
	}

	if v, ok := coerceAmount(raw.Amount); ok {
		intent.Amount = model.Amount(v)
	}

	if raw.Target != nil && strings.TrimSpace(*raw.Target) == model.TargetLast {
		intent.Target = model.TargetLast
	}

	return intent
}

// fallback resolves a message with the deterministic extractor and
// counts the event.
func fallback(message string) model.Intent {
	fallbacksTotal.Inc()
	return Fallback(message)
}

// coerceAmount funnels the untyped amount field through NormalizeAmount.
func coerceAmount(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return NormalizeAmount(strconv.FormatFloat(n, 'f', -1, 64))
	case string:
		return NormalizeAmount(n)
	default:
		return 0, false
	}
}

// parseIntentJSON decodes the backend output, tolerating a JSON object
// embedded in surrounding prose: when the full text is not valid JSON,
// the first balanced {...} substring is tried.
func parseIntentJSON(out string) (*rawIntent, bool) {
	text := strings.TrimSpace(out)
	if text == "" {
		return nil, false
	}

	if strings.HasPrefix(text, "{") {
		var raw rawIntent
		if err := json.Unmarshal([]byte(text), &raw); err == nil {
			return &raw, true
		}
	}

	obj, ok := balancedObject(text)
	if !ok {
		return nil, false
	}
	var raw rawIntent
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, false
	}
	return &raw, true
}

// balancedObject returns the first {...} substring with balanced braces,
// skipping braces inside JSON string literals.
func balancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
