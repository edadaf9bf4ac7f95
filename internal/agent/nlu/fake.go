package nlu

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

// RuleBackend is a deterministic stand-in for the LLM backend. It is used
// when no API key is configured and throughout the tests, and answers with
// the same JSON shape a well-behaved model would produce.
type RuleBackend struct{}

func NewRuleBackend() *RuleBackend {
	return &RuleBackend{}
}

var (
	reScaledWon  = regexp.MustCompile(`([\d,]+(?:\s*[천만])?)\s*원`)
	reAnyNumber  = regexp.MustCompile(`\b\d[\d,]*\b`)
	reLeadJosa   = regexp.MustCompile(`^(?:에|의)\s*`)
	reInsertItem = []*regexp.Regexp{
		regexp.MustCompile(`(?:\d{4}-\d{1,2}-\d{1,2})\s+(.+?)\s*([\d,]+(?:\s*[천만])?)\s*원`),
		regexp.MustCompile(`(?:오늘|어제|그제|엊그제)\s+(.+?)\s*([\d,]+(?:\s*[천만])?)\s*원`),
		regexp.MustCompile(`(?i)(?:today|yesterday)\s+(.+?)\s*(\d[\d,]*)\s*(?:won)?`),
		regexp.MustCompile(`^\s*(.+?)\s*([\d,]+(?:\s*[천만])?)\s*원`),
	}
	reEditItem = []*regexp.Regexp{
		regexp.MustCompile(`["'“”‘’]([^"'“”‘’]+)["'“”‘’]\s*(?:아이템)?\s*(?:을|를)?\s*(?:삭제|지워|수정|바꿔|update|delete|change)`),
		regexp.MustCompile(`([가-힣A-Za-z0-9_][가-힣A-Za-z0-9_\s]{0,30})\s*아이템\s*(?:을|를)?\s*(?:삭제|지워|수정|바꿔)`),
		regexp.MustCompile(`(?:삭제|지워|수정|바꿔)\s*해?\s*줘?\s*([가-힣A-Za-z0-9_][가-힣A-Za-z0-9_\s]{0,30})`),
	}
)

type fakeIntentJSON struct {
	Intent string  `json:"intent"`
	Date   *string `json:"date"`
	Item   *string `json:"item"`
	Amount *int64  `json:"amount"`
	Target *string `json:"target"`
}

func (b *RuleBackend) Chat(_ context.Context, _ string, userMessage string) (string, error) {
	msg := strings.TrimSpace(userMessage)
	lower := strings.ToLower(msg)

	kind := model.IntentUnknown
	switch {
	case containsAny(msg, "총합", "합계") || containsAny(lower, "sum", "total"):
		kind = model.IntentSum
	case containsAny(msg, "삭제", "지워") || strings.Contains(lower, "delete"):
		kind = model.IntentDelete
	case containsAny(msg, "수정", "바꿔") || containsAny(lower, "change", "update"):
		kind = model.IntentUpdate
	case containsAny(msg, "내역", "조회", "뭐") || containsAny(lower, "what did i", "list"):
		kind = model.IntentSelect
	case reScaledWon.MatchString(msg) || reBareNum.MatchString(lower):
		kind = model.IntentInsert
	}

	out := fakeIntentJSON{Intent: string(kind)}

	if containsAny(msg, lastTargetWords...) || strings.Contains(lower, "last") {
		t := model.TargetLast
		out.Target = &t
	}

	if d, ok := DateInMessage(msg); ok {
		out.Date = &d
	}

	if m := reScaledWon.FindAllStringSubmatch(msg, -1); m != nil {
		if v, ok := NormalizeAmount(m[len(m)-1][1]); ok {
			out.Amount = &v
		}
	} else if m := reAnyNumber.FindAllString(msg, -1); m != nil {
		if v, ok := NormalizeAmount(m[len(m)-1]); ok {
			out.Amount = &v
		}
	}

	switch kind {
	case model.IntentInsert:
		for _, pat := range reInsertItem {
			if m := pat.FindStringSubmatch(msg); m != nil {
				if item := strings.TrimSpace(m[1]); item != "" {
					out.Item = &item
					break
				}
			}
		}
	case model.IntentUpdate, model.IntentDelete:
		for _, pat := range reEditItem {
			if m := pat.FindStringSubmatch(msg); m != nil {
				item := strings.TrimSpace(reLeadJosa.ReplaceAllString(strings.TrimSpace(m[1]), ""))
				if item != "" {
					out.Item = &item
					break
				}
			}
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
