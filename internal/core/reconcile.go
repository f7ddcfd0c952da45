package core

// Reconciliation is the account-effect half of the transaction
// lifecycle: applying a transaction's amount to its target account and
// reversing that effect on edit or delete.
//
// Asset and debt accounts respond to income and expense in opposite
// directions: money leaving an asset shrinks it, money leaving through a
// card or against a liability grows the debt. None of the effects clamp;
// an asset may go negative (overdraft), a card may exceed its limit, a
// liability may go below zero (overpayment).

// ApplyToAccount applies a transaction effect to the account ref points
// at. A nil ref, or a ref whose account no longer exists, is a no-op;
// the return value reports whether an account was actually touched so
// callers can log the dangling case, but nothing ever errors here.
func ApplyToAccount(b *Book, ref *AccountRef, typ TransactionType, amount float64) bool {
	if ref == nil {
		return false
	}
	switch ref.Kind {
	case KindAsset:
		a := b.Asset(ref.ID)
		if a == nil {
			return false
		}
		if typ == Expense {
			a.Value -= amount
		} else {
			a.Value += amount
		}
	case KindCard:
		c := b.CreditCard(ref.ID)
		if c == nil {
			return false
		}
		if typ == Expense {
			c.Balance += amount
		} else {
			c.Balance -= amount
		}
	case KindLiability:
		l := b.Liability(ref.ID)
		if l == nil {
			return false
		}
		if typ == Expense {
			l.Amount += amount
		} else {
			l.Amount -= amount
		}
	default:
		return false
	}
	return true
}

// ReverseApply undoes a previous ApplyToAccount with the same arguments.
// It is exactly ApplyToAccount with the type inverted, so apply followed
// by reverse is a strict no-op on the target account.
func ReverseApply(b *Book, ref *AccountRef, typ TransactionType, amount float64) bool {
	return ApplyToAccount(b, ref, typ.Invert(), amount)
}
