package models

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account is the accounts table row. The chart of accounts is reference
// data: rows are inserted by the bootstrap migration and read-only afterwards.
type Account struct {
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	IsCashLike  bool        `db:"is_cash_like"`
	AuditFields
}
