// Package service owns the in-memory record store and every mutation
// path into it. The Book service is the single writer: handlers call
// it, it applies the reconciliation rules, and it notifies the
// persistence gateway after each change.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"finbook/internal/core"
	"finbook/internal/store"
)

var ErrNotFound = errors.New("record not found")

// Book guards the record store with one mutex; there is exactly one
// logical writer, but HTTP handlers and the gateway run on separate
// goroutines.
type Book struct {
	mu     sync.Mutex
	book   *core.Book
	logger *slog.Logger

	// notify is called after every mutation, typically the gateway's
	// MarkDirty. Set once during wiring, before any traffic.
	notify func()
}

// NewFromStore loads the snapshot and decodes it over defaults. Any
// load or decode failure degrades to the default empty book with a log
// line; boot never fails on bad data.
func NewFromStore(ctx context.Context, st store.SnapshotStore, logger *slog.Logger) *Book {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "book")

	data, err := st.Load(ctx)
	if err != nil {
		logger.Error("Failed to load snapshot, starting empty", "error", err)
		return &Book{book: core.NewBook(), logger: logger}
	}
	book, err := core.DecodeBook(data)
	if err != nil {
		logger.Error("Malformed snapshot, starting empty", "error", err)
		book = core.NewBook()
	}
	return &Book{book: book, logger: logger}
}

// New wraps an existing book; used by tests.
func New(book *core.Book, logger *slog.Logger) *Book {
	if logger == nil {
		logger = slog.Default()
	}
	return &Book{book: book, logger: logger.With("component", "book")}
}

// SetNotifier installs the post-mutation callback.
func (s *Book) SetNotifier(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

func (s *Book) changed() {
	if s.notify != nil {
		s.notify()
	}
}

// Snapshot returns a deep copy for readers.
func (s *Book) Snapshot() *core.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Clone()
}

// EncodeForSave stamps the updated-at metadata and encodes the book.
// Implements the gateway's Snapshotter.
func (s *Book) EncodeForSave() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.Meta.UpdatedAt = time.Now().UTC()
	return s.book.Encode()
}

// ReplaceFromSnapshot swaps the whole book for the stored blob,
// discarding any in-memory state. Malformed data falls back to the
// default empty book. Implements the gateway's Reloader.
func (s *Book) ReplaceFromSnapshot(data []byte) {
	book, err := core.DecodeBook(data)
	if err != nil {
		s.logger.Error("Malformed snapshot on reload, starting empty", "error", err)
		book = core.NewBook()
	}
	s.mu.Lock()
	s.book = book
	s.mu.Unlock()
}

// ---- assets ----

func (s *Book) AddAsset(a core.Asset) core.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	s.book.Assets = append(s.book.Assets, a)
	s.changed()
	return a
}

func (s *Book) UpdateAsset(a core.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.book.Asset(a.ID)
	if existing == nil {
		return ErrNotFound
	}
	*existing = a
	s.changed()
	return nil
}

// DeleteAsset removes the asset. Transactions referencing it are left
// in place; the dangling reference tolerance in reconciliation covers
// them from here on.
func (s *Book) DeleteAsset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.book.Assets {
		if s.book.Assets[i].ID == id {
			s.book.Assets = append(s.book.Assets[:i], s.book.Assets[i+1:]...)
			s.changed()
			return nil
		}
	}
	return ErrNotFound
}

// ---- credit cards ----

func (s *Book) AddCreditCard(c core.CreditCard) core.CreditCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.book.CreditCards = append(s.book.CreditCards, c)
	s.changed()
	return c
}

func (s *Book) UpdateCreditCard(c core.CreditCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.book.CreditCard(c.ID)
	if existing == nil {
		return ErrNotFound
	}
	*existing = c
	s.changed()
	return nil
}

func (s *Book) DeleteCreditCard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.book.CreditCards {
		if s.book.CreditCards[i].ID == id {
			s.book.CreditCards = append(s.book.CreditCards[:i], s.book.CreditCards[i+1:]...)
			s.changed()
			return nil
		}
	}
	return ErrNotFound
}

// ---- liabilities ----

func (s *Book) AddLiability(l core.Liability) core.Liability {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = uuid.NewString()
	s.book.Liabilities = append(s.book.Liabilities, l)
	s.changed()
	return l
}

func (s *Book) UpdateLiability(l core.Liability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.book.Liability(l.ID)
	if existing == nil {
		return ErrNotFound
	}
	*existing = l
	s.changed()
	return nil
}

func (s *Book) DeleteLiability(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.book.Liabilities {
		if s.book.Liabilities[i].ID == id {
			s.book.Liabilities = append(s.book.Liabilities[:i], s.book.Liabilities[i+1:]...)
			s.changed()
			return nil
		}
	}
	return ErrNotFound
}

// ---- transactions ----

// AddTransaction records a transaction and applies its effect once to
// the target account, if it has one. A dangling target logs a warning
// and changes nothing, matching the no-op contract.
func (s *Book) AddTransaction(t core.Transaction) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	if t.Date == "" {
		t.Date = core.Today()
	}
	if t.Account != nil && !core.ApplyToAccount(s.book, t.Account, t.Type, t.Amount) {
		s.logger.Warn("Transaction targets a missing account", "id", t.ID, "account", t.Account)
	}
	s.book.Transactions = append(s.book.Transactions, t)
	s.changed()
	return t
}

// UpdateTransaction replaces a transaction in place. The old effect is
// reversed before the new one is applied, in exactly that order, even
// when old and new are identical.
func (s *Book) UpdateTransaction(t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.book.Transaction(t.ID)
	if old == nil {
		return ErrNotFound
	}
	if old.Account != nil {
		core.ReverseApply(s.book, old.Account, old.Type, old.Amount)
	}
	*old = t
	if t.Account != nil && !core.ApplyToAccount(s.book, t.Account, t.Type, t.Amount) {
		s.logger.Warn("Edited transaction targets a missing account", "id", t.ID, "account", t.Account)
	}
	s.changed()
	return nil
}

// DeleteTransaction reverses the transaction's effect, if any, and
// removes it.
func (s *Book) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.book.Transactions {
		t := s.book.Transactions[i]
		if t.ID != id {
			continue
		}
		if t.Account != nil {
			core.ReverseApply(s.book, t.Account, t.Type, t.Amount)
		}
		s.book.Transactions = append(s.book.Transactions[:i], s.book.Transactions[i+1:]...)
		s.changed()
		return nil
	}
	return ErrNotFound
}

// ---- settings ----

func (s *Book) UpdateSettings(settings core.Settings) core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.Currency = strings.ToUpper(strings.TrimSpace(settings.Currency))
	if settings.Currency == "" {
		settings.Currency = "USD"
	}
	if settings.Theme != core.ThemeLight {
		settings.Theme = core.ThemeDark
	}
	s.book.Settings = settings
	s.changed()
	return settings
}
