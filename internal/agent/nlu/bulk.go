package nlu

import (
	"context"
	"regexp"
	"strings"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

var reCommaSplit = regexp.MustCompile(`\s*,\s*`)

// InsertCandidate is one independent purchase lifted out of a bulk
// message, ready to insert.
type InsertCandidate struct {
	Date   string
	Item   string
	Amount int64
}

// BulkInsertCandidates detects a single message describing multiple
// purchases and fans it out. The trigger is deliberately narrow: the
// message must carry both a currency marker and a comma, and must split
// into at least two non-empty segments. Each segment is extracted
// independently; segments that do not resolve to a complete insert are
// silently dropped, so a partial bulk save is possible and the reply
// shows exactly what was stored.
//
// A candidate's date defaults, in order: the segment's own date, a date
// found in the whole message, the caller-supplied date, today.
func (e *Extractor) BulkInsertCandidates(ctx context.Context, message, entryDate string) []InsertCandidate {
	if !strings.Contains(message, "원") || !strings.Contains(message, ",") {
		return nil
	}

	defaultDate := entryDate
	if d, ok := DateInMessage(message); ok {
		defaultDate = d
	}
	if defaultDate == "" {
		defaultDate = todayISO()
	}

	var segments []string
	for _, seg := range reCommaSplit.Split(message, -1) {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) < 2 {
		return nil
	}

	var candidates []InsertCandidate
	for _, segment := range segments {
		parsed := e.Extract(ctx, segment, "")
		if parsed.Kind != model.IntentInsert || parsed.Item == "" || !parsed.HasAmount() {
			continue
		}
		date := parsed.Date
		if date == "" {
			date = defaultDate
		}
		candidates = append(candidates, InsertCandidate{
			Date:   date,
			Item:   parsed.Item,
			Amount: parsed.AmountValue(),
		})
	}
	return candidates
}
