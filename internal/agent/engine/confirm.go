package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
	logx "github.com/kdhyo/ledger-ai/pkg/logger"
)

const (
	actionUpdate = "update"
	actionDelete = "delete"
)

var yesWords = map[string]struct{}{
	"yes": {}, "y": {}, "네": {}, "응": {}, "확인": {}, "진행": {}, "삭제해": {}, "해줘": {},
}

var noWords = map[string]struct{}{
	"no": {}, "n": {}, "아니": {}, "취소": {}, "안해": {}, "안 할래": {},
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// newDeleteConfirmation mints the confirmation/action pair guarding one
// delete. Both halves share a fresh single-use token.
func (e *Engine) newDeleteConfirmation(entry model.Entry) outcome {
	token := newToken()
	return outcome{
		reply: "삭제할까요? " + formatEntry(entry),
		pending: model.PendingState{
			Confirm: &model.PendingConfirmation{Token: token, Prompt: deleteConfirmPrompt},
			Action:  &model.PendingAction{Token: token, Action: actionDelete, EntryID: entry.ID},
		},
	}
}

// resolveConfirmation consumes a message as the answer to the pending
// confirmation. An answer that is neither yes nor no re-asks and keeps
// the pair pending; everything else is terminal, so the token is
// redeemed (or discarded) exactly once.
func (e *Engine) resolveConfirmation(ctx context.Context, state model.PendingState, message string) outcome {
	if state.Confirm == nil || state.Action == nil || state.Confirm.Token != state.Action.Token {
		// a half pair cannot be redeemed; clean it up
		return terminal(replyNothingToConfirm)
	}

	answer := strings.ToLower(strings.TrimSpace(message))

	if _, ok := yesWords[answer]; ok {
		if state.Action.Action != actionDelete {
			logx.Warn().Str("action", state.Action.Action).Msg("unsupported pending action")
			return terminal(replyUnsupportedConfirm)
		}
		deleted, err := e.ledger.Delete(ctx, state.Action.EntryID)
		if err != nil {
			logx.Error().Err(err).Int64("id", state.Action.EntryID).Msg("delete failed")
			return terminal(replyDeleteFailed)
		}
		if !deleted {
			return terminal(replyDeleteFailed)
		}
		return terminal(replyDeleteDone)
	}

	if _, ok := noWords[answer]; ok {
		return terminal(replyCancelled)
	}

	return outcome{reply: replyConfirmAgain, pending: state}
}
