package model

import "time"

// Budget is a named collection of line items. Names are unique across the
// database; item rows are removed by cascade when the budget is deleted.
type Budget struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
