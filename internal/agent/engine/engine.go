// Package engine is the dialogue router: it resolves one free-text
// message per turn into ledger actions, confirmation questions, or
// candidate selections, and owns the per-session pending state machine.
//
// Every turn is total: collaborator failures (NLU, ledger, transcript)
// become terminal user-facing replies, never propagated errors, and a
// terminal reply always leaves the session with no pending state.
package engine

import (
	"context"
	"strings"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
	"github.com/kdhyo/ledger-ai/internal/agent/nlu"
	"github.com/kdhyo/ledger-ai/internal/agent/session"
	logx "github.com/kdhyo/ledger-ai/pkg/logger"
)

// outcome is one turn's result before it is committed to the session
// store: the reply plus the pending state the session transitions to.
type outcome struct {
	reply   string
	pending model.PendingState
}

// terminal builds an outcome that clears all pending state.
func terminal(reply string) outcome {
	return outcome{reply: reply}
}

type Engine struct {
	ledger      model.Ledger
	extractor   *nlu.Extractor
	sessions    *session.Store
	transcripts model.TranscriptRepository

	candidateLimit int
	listLimit      int
	contextEntries int
	contextTurns   int
}

func New(
	ledger model.Ledger,
	extractor *nlu.Extractor,
	sessions *session.Store,
	transcripts model.TranscriptRepository,
	cfg model.EngineConfig,
	conv model.ConversationConfig,
) *Engine {
	e := &Engine{
		ledger:         ledger,
		extractor:      extractor,
		sessions:       sessions,
		transcripts:    transcripts,
		candidateLimit: cfg.CandidateLimit,
		listLimit:      cfg.ListLimit,
		contextEntries: cfg.ContextEntries,
		contextTurns:   conv.MaxTurns,
	}
	if e.candidateLimit <= 0 {
		e.candidateLimit = 100
	}
	if e.listLimit <= 0 {
		e.listLimit = 10
	}
	return e
}

// HandleMessage resolves one message for a session. Routing looks only
// at the pending state: a pending confirmation or selection consumes the
// message as its answer; otherwise the message goes through intent
// extraction. A blank message is answered without touching pending
// state, so an outstanding question survives an accidental empty send.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, message string) model.TurnResult {
	state := e.sessions.Get(sessionID)

	var out outcome
	switch {
	case strings.TrimSpace(message) == "":
		out = outcome{reply: replyEmptyMessage, pending: state}
	case state.Confirm != nil || state.Action != nil:
		out = e.resolveConfirmation(ctx, state, message)
	case state.Selection != nil:
		out = e.resolveSelection(ctx, state, message)
	default:
		out = e.dispatch(ctx, sessionID, message)
	}

	e.sessions.Update(sessionID, out.pending)
	e.recordTurn(ctx, sessionID, message, out.reply)
	return model.TurnResult{Reply: out.reply, Confirm: out.pending.Confirm}
}

// HandleConfirmation redeems a confirmation out-of-band, by token, with
// an explicit yes/no decision. A token mismatch preserves the pending
// pair so the real answer can still arrive.
func (e *Engine) HandleConfirmation(ctx context.Context, sessionID, token, decision string) model.TurnResult {
	state := e.sessions.Get(sessionID)

	if state.Confirm == nil {
		return model.TurnResult{Reply: replyNothingToConfirm}
	}
	if token != state.Confirm.Token {
		return model.TurnResult{Reply: replyInvalidToken, Confirm: state.Confirm}
	}

	out := e.resolveConfirmation(ctx, state, decision)
	e.sessions.Update(sessionID, out.pending)
	e.recordTurn(ctx, sessionID, decision, out.reply)
	return model.TurnResult{Reply: out.reply, Confirm: out.pending.Confirm}
}

// dispatch extracts an intent from a free-standing message and runs the
// matching action.
func (e *Engine) dispatch(ctx context.Context, sessionID, message string) outcome {
	intent := e.extractor.Extract(ctx, message, e.resourceContext(ctx, sessionID, message))
	logx.Debug().
		Str("session", sessionID).
		Str("kind", string(intent.Kind)).
		Str("date", intent.Date).
		Str("item", intent.Item).
		Msg("intent resolved")

	switch intent.Kind {
	case model.IntentInsert:
		return e.runInsert(ctx, message, intent)
	case model.IntentSelect:
		return e.runSelect(ctx, intent)
	case model.IntentSum:
		return e.runSum(ctx, intent)
	case model.IntentUpdate:
		return e.prepareUpdate(ctx, intent)
	case model.IntentDelete:
		return e.prepareDelete(ctx, intent)
	default:
		return terminal(replyUnknown)
	}
}

// resourceContext assembles the free-form context block fed to the NLU
// prompt: a few recent ledger rows plus the recent conversation turns.
// Everything here is best-effort; a failing collaborator just means less
// context.
func (e *Engine) resourceContext(ctx context.Context, sessionID, message string) string {
	var b strings.Builder

	if e.contextEntries > 0 {
		date, _ := nlu.DateInMessage(message)
		entries, err := e.ledger.List(ctx, date, e.contextEntries)
		if err != nil {
			logx.Warn().Err(err).Msg("context entries unavailable")
		} else if len(entries) > 0 {
			b.WriteString("Recent ledger entries:\n")
			b.WriteString(formatEntries(entries))
		}
	}

	if e.transcripts != nil && e.contextTurns > 0 {
		turns, err := e.transcripts.Recent(ctx, sessionID, e.contextTurns)
		if err != nil {
			logx.Warn().Err(err).Msg("conversation context unavailable")
		} else if len(turns) > 0 {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString("<conversation_context>\n")
			for _, turn := range turns {
				b.WriteString(turn.Role)
				b.WriteString(": ")
				b.WriteString(turn.Content)
				b.WriteString("\n")
			}
			b.WriteString("</conversation_context>")
		}
	}

	return b.String()
}

// recordTurn appends the user message and the reply to the session
// transcript. Transcript storage only enriches future prompts, so
// failures are logged and swallowed.
func (e *Engine) recordTurn(ctx context.Context, sessionID, message, reply string) {
	if e.transcripts == nil {
		return
	}
	if msg := strings.TrimSpace(message); msg != "" {
		if err := e.transcripts.AddTurn(ctx, sessionID, model.Turn{Role: model.RoleUser, Content: msg}); err != nil {
			logx.Warn().Err(err).Msg("transcript user turn not recorded")
		}
	}
	if err := e.transcripts.AddTurn(ctx, sessionID, model.Turn{Role: model.RoleAssistant, Content: reply}); err != nil {
		logx.Warn().Err(err).Msg("transcript assistant turn not recorded")
	}
}
