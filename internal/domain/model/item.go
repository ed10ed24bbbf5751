package model

import "time"

// Item is one budget line as it exists in storage. Description and Amount
// hold opaque encrypted tokens, never plaintext; the storage layer moves
// them around without inspecting them.
type Item struct {
	ID          int64
	BudgetID    int64
	Description string
	Amount      string
	CreatedAt   time.Time
}
