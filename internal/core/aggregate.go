package core

import (
	"sort"
	"time"
)

// The aggregation functions are pure reads over a Book. They never
// mutate, hold no state between calls, and read settings at call time.

// MonthTotals is the income/expense pair for one calendar month.
type MonthTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryAmount is an expense total for one category label.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// NetWorthPoint is one sample of the trailing net-worth series.
type NetWorthPoint struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TotalAssets sums every asset's current value. Negative asset values
// are not prevented and pass straight through.
func TotalAssets(b *Book) float64 {
	var total float64
	for _, a := range b.Assets {
		total += a.Value
	}
	return total
}

// TotalLiabilities pools liability amounts and credit card balances into
// one debt figure.
func TotalLiabilities(b *Book) float64 {
	var total float64
	for _, l := range b.Liabilities {
		total += l.Amount
	}
	for _, c := range b.CreditCards {
		total += c.Balance
	}
	return total
}

// UnusedCredit sums the remaining headroom per card, clamped at zero:
// a card over its limit contributes nothing, never a negative.
func UnusedCredit(b *Book) float64 {
	var total float64
	for _, c := range b.CreditCards {
		if avail := c.Limit - c.Balance; avail > 0 {
			total += avail
		}
	}
	return total
}

// NetWorth is assets minus pooled debt, plus unused credit when the
// setting asks for it. The toggle is read at call time, never cached.
func NetWorth(b *Book) float64 {
	nw := TotalAssets(b) - TotalLiabilities(b)
	if b.Settings.IncludeCreditInNetworth {
		nw += UnusedCredit(b)
	}
	return nw
}

// CreditUtilization is the pooled balance over the pooled limit, in
// percent. A pooled limit of zero or less yields 0, never NaN.
func CreditUtilization(b *Book) float64 {
	var limit, balance float64
	for _, c := range b.CreditCards {
		limit += c.Limit
		balance += c.Balance
	}
	if limit <= 0 {
		return 0
	}
	return balance / limit * 100
}

// MonthlyTotals sums transaction amounts by type for one calendar month.
// Transactions with a missing or unparseable date are excluded.
func MonthlyTotals(b *Book, year int, month time.Month) MonthTotals {
	var totals MonthTotals
	for _, t := range b.Transactions {
		d, ok := ParseDay(t.Date)
		if !ok || d.Year() != year || d.Month() != month {
			continue
		}
		switch t.Type {
		case Income:
			totals.Income += t.Amount
		case Expense:
			totals.Expense += t.Amount
		}
	}
	return totals
}

// ExpenseByCategory groups expense transactions by their exact,
// case-sensitive category label. An empty result means there is no
// expense data at all; callers must treat that as a distinct state.
func ExpenseByCategory(b *Book) []CategoryAmount {
	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, t := range b.Transactions {
		if t.Type != Expense {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: sums[name]})
	}
	return out
}

// NetWorthSeries samples a trailing net-worth estimate for the chart:
// the current asset and debt totals plus the cumulative signed
// transaction flow dated before each month's cutoff.
func NetWorthSeries(b *Book, now time.Time, months int) []NetWorthPoint {
	base := TotalAssets(b) - TotalLiabilities(b)
	points := make([]NetWorthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		cutoff := m.AddDate(0, 1, 0)
		var flow float64
		for _, t := range b.Transactions {
			d, ok := ParseDay(t.Date)
			if !ok || !d.Before(cutoff) {
				continue
			}
			if t.Type == Income {
				flow += t.Amount
			} else {
				flow -= t.Amount
			}
		}
		points = append(points, NetWorthPoint{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: m.Format("Jan"),
			Value: base + flow,
		})
	}
	return points
}

// RecentTransactions returns up to n transactions, most recent date
// first. Undated transactions sort last; ties keep insertion order.
func RecentTransactions(b *Book, n int) []Transaction {
	sorted := make([]Transaction, len(b.Transactions))
	copy(sorted, b.Transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, iok := ParseDay(sorted[i].Date)
		dj, jok := ParseDay(sorted[j].Date)
		if iok != jok {
			return iok
		}
		return di.After(dj)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
