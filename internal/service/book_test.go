package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"finbook/internal/core"
	"finbook/internal/store"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newService(t *testing.T) *Book {
	t.Helper()
	return New(core.NewBook(), nil)
}

func seedAccounts(t *testing.T, s *Book) (asset core.Asset, card core.CreditCard, liab core.Liability) {
	t.Helper()
	asset = s.AddAsset(core.Asset{Name: "Checking", MainCategory: "Cash & Bank", SubCategory: "Checking Account", Value: 1000})
	card = s.AddCreditCard(core.CreditCard{Name: "Visa", Limit: 500, Balance: 100})
	liab = s.AddLiability(core.Liability{Name: "Loan", MainCategory: "Loans", SubCategory: "Personal Loan", Amount: 300})
	return
}

func TestAddAssetAssignsID(t *testing.T) {
	s := newService(t)
	a := s.AddAsset(core.Asset{Name: "Cash", Value: 50})
	if a.ID == "" {
		t.Fatal("asset id not assigned")
	}
	b := s.AddAsset(core.Asset{Name: "More", Value: 1})
	if a.ID == b.ID {
		t.Fatal("ids must be unique")
	}
}

func TestUpdateMissingRecords(t *testing.T) {
	s := newService(t)
	if err := s.UpdateAsset(core.Asset{ID: "nope"}); err != ErrNotFound {
		t.Fatalf("UpdateAsset = %v, want ErrNotFound", err)
	}
	if err := s.UpdateCreditCard(core.CreditCard{ID: "nope"}); err != ErrNotFound {
		t.Fatalf("UpdateCreditCard = %v, want ErrNotFound", err)
	}
	if err := s.UpdateLiability(core.Liability{ID: "nope"}); err != ErrNotFound {
		t.Fatalf("UpdateLiability = %v, want ErrNotFound", err)
	}
	if err := s.UpdateTransaction(core.Transaction{ID: "nope"}); err != ErrNotFound {
		t.Fatalf("UpdateTransaction = %v, want ErrNotFound", err)
	}
	if err := s.DeleteTransaction("nope"); err != ErrNotFound {
		t.Fatalf("DeleteTransaction = %v, want ErrNotFound", err)
	}
}

// Create applies the effect once; delete reverses it. The asset ends
// where it started.
func TestTransactionCreateDelete(t *testing.T) {
	s := newService(t)
	asset, _, _ := seedAccounts(t, s)

	tx := s.AddTransaction(core.Transaction{
		Type: core.Expense, Category: "Food", Amount: 200, Date: "2025-06-01",
		Account: &core.AccountRef{Kind: core.KindAsset, ID: asset.ID},
	})
	if got := s.Snapshot().Asset(asset.ID).Value; !almostEqual(got, 800) {
		t.Fatalf("after create: %v, want 800", got)
	}
	if err := s.DeleteTransaction(tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap := s.Snapshot()
	if got := snap.Asset(asset.ID).Value; !almostEqual(got, 1000) {
		t.Fatalf("after delete: %v, want 1000", got)
	}
	if len(snap.Transactions) != 0 {
		t.Fatal("transaction not removed")
	}
}

// Edit reverses the old effect before applying the new one: the card
// scenario 150 -> 100 -> 50.
func TestTransactionEdit(t *testing.T) {
	s := newService(t)
	_, card, _ := seedAccounts(t, s)
	ref := &core.AccountRef{Kind: core.KindCard, ID: card.ID}

	tx := s.AddTransaction(core.Transaction{
		Type: core.Expense, Category: "Shopping", Amount: 50, Date: "2025-06-01", Account: ref,
	})
	if got := s.Snapshot().CreditCard(card.ID).Balance; !almostEqual(got, 150) {
		t.Fatalf("after create: %v, want 150", got)
	}

	tx.Type = core.Income
	if err := s.UpdateTransaction(tx); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.Snapshot().CreditCard(card.ID).Balance; !almostEqual(got, 50) {
		t.Fatalf("after edit: %v, want 50", got)
	}
}

// Editing to identical values leaves every balance unchanged.
func TestTransactionEditIdempotent(t *testing.T) {
	s := newService(t)
	asset, card, liab := seedAccounts(t, s)

	tx := s.AddTransaction(core.Transaction{
		Type: core.Expense, Category: "Food", Amount: 75.5, Date: "2025-06-01",
		Account: &core.AccountRef{Kind: core.KindAsset, ID: asset.ID},
	})
	before := s.Snapshot()
	if err := s.UpdateTransaction(tx); err != nil {
		t.Fatalf("update: %v", err)
	}
	after := s.Snapshot()
	if !almostEqual(before.Asset(asset.ID).Value, after.Asset(asset.ID).Value) ||
		!almostEqual(before.CreditCard(card.ID).Balance, after.CreditCard(card.ID).Balance) ||
		!almostEqual(before.Liability(liab.ID).Amount, after.Liability(liab.ID).Amount) {
		t.Fatal("identical edit changed a balance")
	}
}

// Moving a transaction between accounts reverses on the old target and
// applies on the new one.
func TestTransactionEditMovesAccounts(t *testing.T) {
	s := newService(t)
	asset, card, _ := seedAccounts(t, s)

	tx := s.AddTransaction(core.Transaction{
		Type: core.Expense, Category: "Food", Amount: 100, Date: "2025-06-01",
		Account: &core.AccountRef{Kind: core.KindAsset, ID: asset.ID},
	})
	tx.Account = &core.AccountRef{Kind: core.KindCard, ID: card.ID}
	if err := s.UpdateTransaction(tx); err != nil {
		t.Fatalf("update: %v", err)
	}
	snap := s.Snapshot()
	if got := snap.Asset(asset.ID).Value; !almostEqual(got, 1000) {
		t.Fatalf("old target not restored: %v", got)
	}
	if got := snap.CreditCard(card.ID).Balance; !almostEqual(got, 200) {
		t.Fatalf("new target not applied: %v", got)
	}
}

// An untracked transaction never touches an account, including on
// delete.
func TestUntrackedTransaction(t *testing.T) {
	s := newService(t)
	asset, _, _ := seedAccounts(t, s)
	tx := s.AddTransaction(core.Transaction{Type: core.Expense, Category: "Misc", Amount: 40})
	if tx.Date == "" {
		t.Fatal("date must default to today")
	}
	if err := s.DeleteTransaction(tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.Snapshot().Asset(asset.ID).Value; !almostEqual(got, 1000) {
		t.Fatalf("untracked transaction moved an asset: %v", got)
	}
}

// Deleting an account out from under its transactions leaves them
// dangling; further lifecycle steps degrade to no-ops.
func TestDanglingAfterAccountDelete(t *testing.T) {
	s := newService(t)
	asset, _, liab := seedAccounts(t, s)

	tx := s.AddTransaction(core.Transaction{
		Type: core.Expense, Category: "Food", Amount: 300, Date: "2025-06-01",
		Account: &core.AccountRef{Kind: core.KindAsset, ID: asset.ID},
	})
	if err := s.DeleteAsset(asset.ID); err != nil {
		t.Fatalf("delete asset: %v", err)
	}
	// Delete of the transaction reverses into nothing and must not panic.
	if err := s.DeleteTransaction(tx.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if got := s.Snapshot().Liability(liab.ID).Amount; !almostEqual(got, 300) {
		t.Fatalf("liability drifted: %v", got)
	}
}

func TestUpdateSettings(t *testing.T) {
	s := newService(t)
	got := s.UpdateSettings(core.Settings{Currency: " eur ", Theme: "neon", IncludeCreditInNetworth: true})
	if got.Currency != "EUR" {
		t.Fatalf("currency = %q", got.Currency)
	}
	if got.Theme != core.ThemeDark {
		t.Fatalf("unknown theme must fall back to dark, got %q", got.Theme)
	}
	if !s.Snapshot().Settings.IncludeCreditInNetworth {
		t.Fatal("toggle not persisted")
	}
}

func TestNotifier(t *testing.T) {
	s := newService(t)
	var calls int
	s.SetNotifier(func() { calls++ })
	s.AddAsset(core.Asset{Name: "Cash", Value: 1})
	s.UpdateSettings(core.Settings{Currency: "USD"})
	if calls != 2 {
		t.Fatalf("notifier called %d times, want 2", calls)
	}
}

func TestExportImportJSON(t *testing.T) {
	s := newService(t)
	seedAccounts(t, s)
	s.AddTransaction(core.Transaction{Type: core.Expense, Category: "Food", Amount: 10, Date: "2025-01-01"})

	blob, err := s.Export(FormatJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !json.Valid(blob) {
		t.Fatal("export is not valid JSON")
	}

	fresh := newService(t)
	if err := fresh.Import(blob, FormatJSON); err != nil {
		t.Fatalf("import: %v", err)
	}
	snap := fresh.Snapshot()
	if len(snap.Assets) != 1 || len(snap.Transactions) != 1 {
		t.Fatalf("import lost records: %d assets, %d transactions", len(snap.Assets), len(snap.Transactions))
	}
}

func TestExportImportYAML(t *testing.T) {
	s := newService(t)
	asset, _, _ := seedAccounts(t, s)
	s.AddTransaction(core.Transaction{
		Type: core.Expense, Category: "Food", Amount: 12.5, Date: "2025-01-01",
		Account: &core.AccountRef{Kind: core.KindAsset, ID: asset.ID},
	})

	blob, err := s.Export(FormatYAML)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(blob), "asset:"+asset.ID) {
		t.Fatalf("yaml export missing wire-form ref:\n%s", blob)
	}

	fresh := newService(t)
	if err := fresh.Import(blob, FormatYAML); err != nil {
		t.Fatalf("import: %v", err)
	}
	tx := fresh.Snapshot().Transactions
	if len(tx) != 1 || tx[0].Account == nil || tx[0].Account.ID != asset.ID {
		t.Fatalf("yaml ref did not round-trip: %+v", tx)
	}
}

// A failed import is all-or-nothing: state stays untouched.
func TestImportMalformed(t *testing.T) {
	s := newService(t)
	seedAccounts(t, s)
	before := s.Snapshot()

	if err := s.Import([]byte("{broken"), FormatJSON); err == nil {
		t.Fatal("expected import error")
	}
	if err := s.Import([]byte(":\tnot yaml"), FormatYAML); err == nil {
		t.Fatal("expected yaml import error")
	}

	after := s.Snapshot()
	if len(before.Assets) != len(after.Assets) || len(before.CreditCards) != len(after.CreditCards) {
		t.Fatal("failed import mutated state")
	}
}

func TestParseExportFormat(t *testing.T) {
	cases := []struct {
		in   string
		want ExportFormat
		err  bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for i, tc := range cases {
		got, err := ParseExportFormat(tc.in)
		if tc.err != (err != nil) || got != tc.want {
			t.Fatalf("case %d: ParseExportFormat(%q) = %v, %v", i, tc.in, got, err)
		}
	}
}

func TestNewFromStoreMalformed(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	if err := st.Save(ctx, []byte("garbage")); err != nil {
		t.Fatal(err)
	}
	s := NewFromStore(ctx, st, nil)
	snap := s.Snapshot()
	if snap.Settings.Currency != "USD" || len(snap.Assets) != 0 {
		t.Fatalf("expected default book, got %+v", snap.Settings)
	}
}

func TestNewFromStoreLoadsSnapshot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed := New(core.NewBook(), nil)
	seed.AddAsset(core.Asset{Name: "Cash", Value: 123})
	blob, err := seed.EncodeForSave()
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save(ctx, blob); err != nil {
		t.Fatal(err)
	}

	s := NewFromStore(ctx, st, nil)
	snap := s.Snapshot()
	if len(snap.Assets) != 1 || snap.Assets[0].Value != 123 {
		t.Fatalf("snapshot not loaded: %+v", snap.Assets)
	}
	if snap.Meta.UpdatedAt.IsZero() {
		t.Fatal("meta not preserved")
	}
}
