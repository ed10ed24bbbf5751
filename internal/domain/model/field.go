package model

import "github.com/shopspring/decimal"

// Field is the outcome of decrypting one stored field. Exactly one of
// Plaintext or Err is meaningful: a non-nil Err means the token failed
// authentication or was malformed, and Plaintext is empty.
type Field struct {
	Plaintext string
	Err       error
}

// OK reports whether the field decrypted successfully.
func (f Field) OK() bool { return f.Err == nil }

// ItemView is one budget line as presented to a caller: both fields
// decrypted (or marked failed) and the amount parsed when possible.
type ItemView struct {
	ID          int64
	Description Field
	Amount      Field

	// Value is the parsed amount. ValueOK is false when the amount failed
	// to decrypt or decrypted to something that is not a decimal number;
	// such rows are excluded from the budget total.
	Value   decimal.Decimal
	ValueOK bool
}

// BudgetSummary is the decrypted view of a whole budget. Total sums the
// Value of every row with ValueOK set; rows with failed or unparseable
// amounts are reported but not counted.
type BudgetSummary struct {
	Budget Budget
	Items  []ItemView
	Total  decimal.Decimal
}
