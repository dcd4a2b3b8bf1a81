package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Well-known account codes of the fixed chart seeded at bootstrap.
// Every posting refers to accounts by these stable codes.
const (
	CodeCash        = "CASH"  // physical cash drawer
	CodeBank        = "BANK"  // bank balance
	CodeReceivables = "AR"    // accounts receivable
	CodeSales       = "SALES" // service revenue
	CodeOpex        = "OPEX"  // operating expenses
	CodeCardFees    = "FEES"  // card processing fees
	CodeCapital     = "CAPITAL"
)

// Account represents one entry of the chart of accounts. The chart is
// read-only reference data at runtime; rows are provisioned once by the
// bootstrap migration and never mutated by the core.
type Account struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsCashLike  bool        `json:"isCashLike"` // true for accounts representing spendable funds
	AuditFields
}
