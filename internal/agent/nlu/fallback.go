package nlu

import (
	"regexp"
	"strings"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

var (
	reWonAmount = regexp.MustCompile(`([\d,]+)\s*원`)
	reBareNum   = regexp.MustCompile(`\b\d+\b`)
)

// lastTargetWords is the deictic vocabulary for "the most recent entry".
var lastTargetWords = []string{"방금", "최근", "그거", "그것", "마지막"}

// Fallback classifies a message by keyword presence alone. It is the
// safety net when the NLU backend is unreachable or returns unusable
// output, so it must stay pure and side-effect free. It never sets Item:
// a keyword guesser has no way to verify one.
func Fallback(message string) model.Intent {
	msg := message
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
	case reWonAmount.MatchString(msg) || reBareNum.MatchString(lower):
		kind = model.IntentInsert
	}

	target := ""
	if containsAny(msg, lastTargetWords...) || strings.Contains(lower, "last") {
		target = model.TargetLast
	}

	date := ""
	if d, ok := DateInMessage(msg); ok {
		date = d
	}

	var amount *int64
	if m := reWonAmount.FindStringSubmatch(msg); m != nil {
		if v, ok := NormalizeAmount(m[1]); ok {
			amount = model.Amount(v)
		}
	}

	return model.Intent{Kind: kind, Date: date, Amount: amount, Target: target}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
