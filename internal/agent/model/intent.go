package model

// IntentKind enumerates the operations the dialogue engine understands.
type IntentKind string

const (
	IntentInsert  IntentKind = "insert"
	IntentSelect  IntentKind = "select"
	IntentUpdate  IntentKind = "update"
	IntentDelete  IntentKind = "delete"
	IntentSum     IntentKind = "sum"
	IntentUnknown IntentKind = "unknown"
)

// TargetLast is the only accepted value for Intent.Target. It marks a
// request that refers to the most recently recorded entry.
const TargetLast = "last"

// ParseIntentKind validates a raw kind string against the fixed enum.
// Anything unrecognised becomes IntentUnknown.
func ParseIntentKind(v string) IntentKind {
	switch IntentKind(v) {
	case IntentInsert, IntentSelect, IntentUpdate, IntentDelete, IntentSum:
		return IntentKind(v)
	default:
		return IntentUnknown
	}
}

// Intent is the structured interpretation of one user message. It is
// produced fresh per message and never persisted. Empty string / nil
// fields mean "not present".
type Intent struct {
	Kind   IntentKind
	Date   string // ISO-8601 date or empty
	Item   string
	Amount *int64 // non-negative when set
	Target string // "" or TargetLast
}

// HasAmount reports whether an amount was extracted.
func (i Intent) HasAmount() bool {
	return i.Amount != nil
}

// AmountValue returns the extracted amount, or 0 when none is present.
func (i Intent) AmountValue() int64 {
	if i.Amount == nil {
		return 0
	}
	return *i.Amount
}

// Amount wraps v for assignment to Intent.Amount.
func Amount(v int64) *int64 {
	return &v
}
