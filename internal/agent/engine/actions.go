package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
	"github.com/kdhyo/ledger-ai/internal/agent/nlu"
	logx "github.com/kdhyo/ledger-ai/pkg/logger"
)

// runInsert saves one entry, or fans a bulk message out into several.
// Bulk wins when the splitter finds two or more complete candidates;
// a single candidate backfills fields the top-level extraction missed.
func (e *Engine) runInsert(ctx context.Context, message string, intent model.Intent) outcome {
	entryDate := intent.Date
	if entryDate == "" {
		if d, ok := nlu.DateInMessage(message); ok {
			entryDate = d
		}
	}
	if entryDate == "" {
		entryDate = todayISO()
	}

	candidates := e.extractor.BulkInsertCandidates(ctx, message, entryDate)
	if len(candidates) >= 2 {
		return e.runBulkInsert(ctx, candidates)
	}

	amount := intent.Amount
	item := intent.Item
	if len(candidates) == 1 && (amount == nil || item == "") {
		entryDate = candidates[0].Date
		item = candidates[0].Item
		amount = model.Amount(candidates[0].Amount)
	}

	if amount == nil {
		return terminal(replyNeedAmount)
	}
	if item == "" {
		return terminal(replyNeedItem)
	}

	entry, err := e.ledger.Insert(ctx, entryDate, item, *amount)
	if err != nil {
		logx.Error().Err(err).Msg("insert failed")
		return terminal(replyInsertFailed)
	}
	return terminal("저장했어요: " + formatEntry(entry))
}

func (e *Engine) runBulkInsert(ctx context.Context, candidates []nlu.InsertCandidate) outcome {
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		entry, err := e.ledger.Insert(ctx, c.Date, c.Item, c.Amount)
		if err != nil {
			logx.Error().Err(err).Str("item", c.Item).Msg("bulk insert failed")
			return terminal(replyInsertFailed)
		}
		lines = append(lines, formatEntry(entry))
	}
	return terminal(fmt.Sprintf("%d건 저장했어요.\n%s", len(lines), strings.Join(lines, "\n")))
}

// runSelect lists entries for the requested date, defaulting to today.
func (e *Engine) runSelect(ctx context.Context, intent model.Intent) outcome {
	date := intent.Date
	if date == "" {
		date = todayISO()
	}
	entries, err := e.ledger.List(ctx, date, e.listLimit)
	if err != nil {
		logx.Error().Err(err).Msg("list failed")
		return terminal(replyListFailed)
	}
	return terminal(formatEntries(entries))
}

func (e *Engine) runSum(ctx context.Context, intent model.Intent) outcome {
	date := intent.Date
	if date == "" {
		date = todayISO()
	}
	total, err := e.ledger.Sum(ctx, date)
	if err != nil {
		logx.Error().Err(err).Msg("sum failed")
		return terminal(replySumFailed)
	}
	return terminal(fmt.Sprintf("%s 총합은 %d원이에요.", date, total))
}

// prepareUpdate resolves the update target. One unambiguous target is
// updated immediately; several matches become a pending selection.
func (e *Engine) prepareUpdate(ctx context.Context, intent model.Intent) outcome {
	if !intent.HasAmount() {
		return terminal(replyNeedNewAmount)
	}

	if intent.Target == model.TargetLast {
		last, err := e.ledger.Last(ctx)
		if err != nil {
			logx.Error().Err(err).Msg("last lookup failed")
			return terminal(replyListFailed)
		}
		if last == nil {
			return terminal(replyNoRecent)
		}
		return e.applyUpdate(ctx, last.ID, intent.AmountValue())
	}

	candidates, out, ok := e.resolveCandidates(ctx, intent, replyNoUpdateMatch, replyNoRecent)
	if !ok {
		return out
	}
	if len(candidates) == 1 {
		return e.applyUpdate(ctx, candidates[0].ID, intent.AmountValue())
	}

	return outcome{
		reply: "어느 항목을 수정할까요? id를 알려주세요.\n" + formatEntries(candidates),
		pending: model.PendingState{Selection: &model.PendingSelection{
			Action:     actionUpdate,
			Amount:     intent.Amount,
			Candidates: candidates,
		}},
	}
}

// prepareDelete resolves the delete target. Deletes are never executed
// directly: an unambiguous target mints a pending confirmation, and an
// ambiguous one goes through a selection first.
func (e *Engine) prepareDelete(ctx context.Context, intent model.Intent) outcome {
	if intent.Target == model.TargetLast {
		last, err := e.ledger.Last(ctx)
		if err != nil {
			logx.Error().Err(err).Msg("last lookup failed")
			return terminal(replyListFailed)
		}
		if last == nil {
			return terminal(replyNoDeleteTarget)
		}
		return e.newDeleteConfirmation(*last)
	}

	candidates, out, ok := e.resolveCandidates(ctx, intent, replyNoDeleteMatch, replyNoDeleteTarget)
	if !ok {
		return out
	}
	if len(candidates) == 1 {
		return e.newDeleteConfirmation(candidates[0])
	}

	return outcome{
		reply: "어느 항목을 삭제할까요? id를 알려주세요.\n" + formatEntries(candidates),
		pending: model.PendingState{Selection: &model.PendingSelection{
			Action:     actionDelete,
			Candidates: candidates,
		}},
	}
}

// resolveCandidates finds the entries an update/delete intent refers to.
// With an item or date filter it lists and narrows; with neither it
// falls back to the most recent entry. ok is false when the turn is
// already decided, in which case out carries the terminal outcome.
func (e *Engine) resolveCandidates(ctx context.Context, intent model.Intent, noMatch, noRecent string) (candidates []model.Entry, out outcome, ok bool) {
	if intent.Item != "" || intent.Date != "" {
		entries, err := e.ledger.List(ctx, intent.Date, e.candidateLimit)
		if err != nil {
			logx.Error().Err(err).Msg("candidate lookup failed")
			return nil, terminal(replyListFailed), false
		}
		candidates = filterByItem(entries, intent.Item)
		if len(candidates) == 0 {
			return nil, terminal(noMatch), false
		}
		return candidates, outcome{}, true
	}

	last, err := e.ledger.Last(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("last lookup failed")
		return nil, terminal(replyListFailed), false
	}
	if last == nil {
		return nil, terminal(noRecent), false
	}
	return []model.Entry{*last}, outcome{}, true
}

// filterByItem keeps entries whose stored item contains the requested
// item, comparing in folded form (lowercase, whitespace removed) so
// "스타 벅스" still matches a stored 스타벅스. Containment runs one way
// only: a request for 커피우유 must not match a stored 커피. An empty
// item keeps everything.
func filterByItem(entries []model.Entry, item string) []model.Entry {
	needle := nlu.FoldItem(item)
	if needle == "" {
		return entries
	}
	var matched []model.Entry
	for _, entry := range entries {
		if strings.Contains(nlu.FoldItem(entry.Item), needle) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func (e *Engine) applyUpdate(ctx context.Context, id int64, amount int64) outcome {
	updated, err := e.ledger.UpdateAmount(ctx, id, amount)
	if err != nil {
		logx.Error().Err(err).Int64("id", id).Msg("update failed")
		return terminal(replyUpdateFailed)
	}
	if updated == nil {
		return terminal(replyUpdateFailed)
	}
	return terminal("수정했어요: " + formatEntry(*updated))
}
