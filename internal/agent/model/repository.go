package model

import "context"

// Ledger is the contract the dialogue engine requires from the expense
// store. All operations are keyed by the ledger location the store was
// opened with and are assumed durable once they return without error.
type Ledger interface {
	// Insert records one entry and returns the stored row.
	Insert(ctx context.Context, date, item string, amount int64) (Entry, error)

	// List returns up to limit entries, most recent first. An empty date
	// means no date filter.
	List(ctx context.Context, date string, limit int) ([]Entry, error)

	// Sum totals the amounts of entries matching date (all entries when
	// date is empty).
	Sum(ctx context.Context, date string) (int64, error)

	// Last returns the most recent entry, or nil when the ledger is empty.
	Last(ctx context.Context) (*Entry, error)

	// UpdateAmount sets a new amount on the entry with id and returns the
	// updated row, or nil when no such entry exists.
	UpdateAmount(ctx context.Context, id int64, amount int64) (*Entry, error)

	// Delete removes the entry with id, reporting whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// Turn is one user or assistant utterance kept in the conversation
// transcript.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TranscriptRepository stores recent conversation turns per session. The
// transcript only feeds context into the NLU prompt, so every method is
// best-effort from the engine's point of view.
type TranscriptRepository interface {
	// AddTurn appends a turn to the session transcript.
	AddTurn(ctx context.Context, sessionID string, turn Turn) error

	// Recent returns up to n most recent turns in chronological order.
	Recent(ctx context.Context, sessionID string, n int) ([]Turn, error)

	// Clear removes the transcript for a session.
	Clear(ctx context.Context, sessionID string) error
}
