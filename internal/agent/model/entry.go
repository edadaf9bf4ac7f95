package model

// Entry is one recorded ledger line as seen by the dialogue engine. The
// ledger store owns the full row; the engine only reads these by value.
type Entry struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Item      string `json:"item"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
