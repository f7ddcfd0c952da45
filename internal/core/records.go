package core

import "time"

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type (
	// TransactionType is a closed enum: every transaction is either
	// income or expense, the sign of its amount is implied by the type.
	TransactionType string

	Theme string

	Asset struct {
		ID           string  `json:"id" yaml:"id"`
		Name         string  `json:"name" yaml:"name"`
		MainCategory string  `json:"mainCategory" yaml:"mainCategory"`
		SubCategory  string  `json:"subCategory" yaml:"subCategory"`
		Value        float64 `json:"value" yaml:"value"`
	}

	Liability struct {
		ID           string  `json:"id" yaml:"id"`
		Name         string  `json:"name" yaml:"name"`
		MainCategory string  `json:"mainCategory" yaml:"mainCategory"`
		SubCategory  string  `json:"subCategory" yaml:"subCategory"`
		Amount       float64 `json:"amount" yaml:"amount"`
		DueDate      string  `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	}

	CreditCard struct {
		ID      string  `json:"id" yaml:"id"`
		Name    string  `json:"name" yaml:"name"`
		Limit   float64 `json:"limit" yaml:"limit"`
		Balance float64 `json:"balance" yaml:"balance"`
		// AER is the annual effective rate in percent, informational only.
		AER    float64 `json:"aer,omitempty" yaml:"aer,omitempty"`
		DueDay int     `json:"dueDay,omitempty" yaml:"dueDay,omitempty"`
	}

	Transaction struct {
		ID       string          `json:"id" yaml:"id"`
		Type     TransactionType `json:"type" yaml:"type"`
		Category string          `json:"category" yaml:"category"`
		Amount   float64         `json:"amount" yaml:"amount"`
		// Date is an ISO calendar date (2006-01-02). Kept as a string so a
		// record with an unparseable date survives the round trip untouched.
		Date string `json:"date" yaml:"date"`
		// Account is nil for untracked transactions that affect no account.
		Account *AccountRef `json:"accountId,omitempty" yaml:"accountId,omitempty"`
		Note    string      `json:"note,omitempty" yaml:"note,omitempty"`
	}

	Settings struct {
		// Currency is a 3-letter display label; no conversion anywhere.
		Currency                string `json:"currency" yaml:"currency"`
		Theme                   Theme  `json:"theme" yaml:"theme"`
		IncludeCreditInNetworth bool   `json:"includeCreditInNetworth" yaml:"includeCreditInNetworth"`
	}

	Meta struct {
		CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	}
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Invert swaps income and expense. Unknown types map to themselves.
func (t TransactionType) Invert() TransactionType {
	switch t {
	case Income:
		return Expense
	case Expense:
		return Income
	}
	return t
}

// AssetCategories maps main asset categories to their subcategories,
// in display order.
var AssetCategories = map[string][]string{
	"Cash & Bank":  {"Cash", "Checking Account", "Savings Account", "Fixed Deposit"},
	"Investments":  {"Stocks", "Bonds", "Mutual Funds", "Crypto", "ETFs"},
	"Property":     {"Real Estate", "Vehicle", "Art & Collectibles"},
	"Other Assets": {"Other"},
}

// LiabilityCategories maps main liability categories to their subcategories.
var LiabilityCategories = map[string][]string{
	"Loans":       {"Mortgage", "Car Loan", "Personal Loan", "Student Loan"},
	"Taxes":       {"Income Tax", "Property Tax"},
	"Bills":       {"Utility Bills", "Phone Bills", "Internet Bills"},
	"Other Debts": {"Other"},
}
