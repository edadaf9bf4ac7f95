package model

// PendingConfirmation is an outstanding yes/no question guarding an
// irreversible action. Token is single-use and scoped to one session.
type PendingConfirmation struct {
	Token  string `json:"token"`
	Prompt string `json:"prompt"`
}

// PendingAction is the action executed when its paired confirmation is
// answered affirmatively. It always shares Token with the confirmation;
// the pair is redeemed atomically or not at all.
type PendingAction struct {
	Token   string `json:"token"`
	Action  string `json:"action"` // currently only "delete"
	EntryID int64  `json:"entry_id"`
}

// PendingSelection is an outstanding pick-by-id question issued when an
// update/delete request matched more than one entry. Amount is set only
// for update selections.
type PendingSelection struct {
	Action     string  `json:"action"` // "update" or "delete"
	Amount     *int64  `json:"amount,omitempty"`
	Candidates []Entry `json:"candidates"`
}

// PendingState is the per-session pending triple. At the start of any
// turn at most one category is outstanding: either the confirmation pair
// or the selection, never both.
type PendingState struct {
	Confirm   *PendingConfirmation
	Action    *PendingAction
	Selection *PendingSelection
}

// IsEmpty reports whether no pending state is outstanding.
func (p PendingState) IsEmpty() bool {
	return p.Confirm == nil && p.Action == nil && p.Selection == nil
}

// TurnResult is what one dialogue turn hands back to the caller: the
// user-facing reply and, when a confirmation was just issued or re-issued,
// the confirmation the caller must surface.
type TurnResult struct {
	Reply   string               `json:"reply"`
	Confirm *PendingConfirmation `json:"pending_confirm,omitempty"`
}
