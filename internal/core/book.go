package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Book is the record store: every collection the tracker owns, plus
// settings and metadata. It carries no behavior of its own beyond
// lookup; mutation goes through the service layer, aggregation through
// the pure functions in aggregate.go.
type Book struct {
	Meta         Meta          `json:"meta" yaml:"meta"`
	Settings     Settings      `json:"settings" yaml:"settings"`
	Assets       []Asset       `json:"assets" yaml:"assets"`
	CreditCards  []CreditCard  `json:"creditCards" yaml:"creditCards"`
	Liabilities  []Liability   `json:"liabilities" yaml:"liabilities"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
}

// NewBook returns the default empty book.
func NewBook() *Book {
	now := time.Now().UTC()
	return &Book{
		Meta: Meta{CreatedAt: now, UpdatedAt: now},
		Settings: Settings{
			Currency:                "USD",
			Theme:                   ThemeDark,
			IncludeCreditInNetworth: false,
		},
		Assets:       []Asset{},
		CreditCards:  []CreditCard{},
		Liabilities:  []Liability{},
		Transactions: []Transaction{},
	}
}

// DecodeBook merges a JSON snapshot over the defaults: top-level fields
// present in the blob override, missing fields keep their default value.
// A malformed blob returns an error and the caller decides the fallback.
func DecodeBook(data []byte) (*Book, error) {
	book := NewBook()
	if len(data) == 0 {
		return book, nil
	}
	if err := json.Unmarshal(data, book); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	// json.Unmarshal leaves absent slices at their default but a present
	// null overwrites them; normalize so callers can always range.
	if book.Assets == nil {
		book.Assets = []Asset{}
	}
	if book.CreditCards == nil {
		book.CreditCards = []CreditCard{}
	}
	if book.Liabilities == nil {
		book.Liabilities = []Liability{}
	}
	if book.Transactions == nil {
		book.Transactions = []Transaction{}
	}
	return book, nil
}

// Encode serializes the book as an indented JSON snapshot, the canonical
// persisted and exported form.
func (b *Book) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy, safe to hand to readers while the original
// keeps being mutated.
func (b *Book) Clone() *Book {
	out := *b
	out.Assets = append([]Asset(nil), b.Assets...)
	out.CreditCards = append([]CreditCard(nil), b.CreditCards...)
	out.Liabilities = append([]Liability(nil), b.Liabilities...)
	out.Transactions = make([]Transaction, len(b.Transactions))
	for i, t := range b.Transactions {
		if t.Account != nil {
			ref := *t.Account
			t.Account = &ref
		}
		out.Transactions[i] = t
	}
	return &out
}

// Asset returns a pointer into the book's asset collection, or nil.
func (b *Book) Asset(id string) *Asset {
	for i := range b.Assets {
		if b.Assets[i].ID == id {
			return &b.Assets[i]
		}
	}
	return nil
}

// CreditCard returns a pointer into the book's card collection, or nil.
func (b *Book) CreditCard(id string) *CreditCard {
	for i := range b.CreditCards {
		if b.CreditCards[i].ID == id {
			return &b.CreditCards[i]
		}
	}
	return nil
}

// Liability returns a pointer into the book's liability collection, or nil.
func (b *Book) Liability(id string) *Liability {
	for i := range b.Liabilities {
		if b.Liabilities[i].ID == id {
			return &b.Liabilities[i]
		}
	}
	return nil
}

// Transaction returns a pointer into the book's transaction collection, or nil.
func (b *Book) Transaction(id string) *Transaction {
	for i := range b.Transactions {
		if b.Transactions[i].ID == id {
			return &b.Transactions[i]
		}
	}
	return nil
}
