package engine

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

var reFirstInt = regexp.MustCompile(`\d+`)

// resolveSelection consumes a message as the answer to a pending
// pick-by-id question. The first integer in the message is taken as the
// chosen entry id; a message with no integer, or an id outside the
// candidate set, re-asks and keeps the selection pending. A chosen
// delete still goes through a confirmation rather than executing
// directly.
func (e *Engine) resolveSelection(ctx context.Context, state model.PendingState, message string) outcome {
	sel := state.Selection
	if sel == nil {
		return terminal(replyNothingToSelect)
	}

	msg := strings.TrimSpace(message)
	lower := strings.ToLower(msg)
	if strings.Contains(msg, "취소") || lower == "cancel" || lower == "no" || lower == "n" {
		return terminal(replySelectionCancelled)
	}

	digits := reFirstInt.FindString(msg)
	if digits == "" {
		return outcome{
			reply:   "수정/삭제할 항목의 id를 보내주세요.\n" + formatEntries(sel.Candidates),
			pending: state,
		}
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		id = -1
	}

	var chosen *model.Entry
	for i := range sel.Candidates {
		if sel.Candidates[i].ID == id {
			chosen = &sel.Candidates[i]
			break
		}
	}
	if chosen == nil {
		return outcome{
			reply:   "후보 목록에 없는 id예요. 다시 골라주세요.\n" + formatEntries(sel.Candidates),
			pending: state,
		}
	}

	switch sel.Action {
	case actionUpdate:
		if sel.Amount == nil {
			return terminal(replySelectionLost)
		}
		return e.applyUpdate(ctx, chosen.ID, *sel.Amount)
	case actionDelete:
		return e.newDeleteConfirmation(*chosen)
	default:
		return terminal(replyUnknownSelection)
	}
}
