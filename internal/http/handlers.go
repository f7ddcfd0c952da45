package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"finbook/internal/core"
)

type summaryResponse struct {
	Year              int                   `json:"year"`
	Month             int                   `json:"month"`
	NetWorth          float64               `json:"netWorth"`
	TotalAssets       float64               `json:"totalAssets"`
	TotalLiabilities  float64               `json:"totalLiabilities"`
	UnusedCredit      float64               `json:"unusedCredit"`
	CreditUtilization float64               `json:"creditUtilization"`
	MonthTotals       core.MonthTotals      `json:"monthTotals"`
	ExpenseByCategory []core.CategoryAmount `json:"expenseByCategory"`
	NetWorthSeries    []core.NetWorthPoint  `json:"netWorthSeries"`
	Recent            []core.Transaction    `json:"recentTransactions"`
	Settings          core.Settings         `json:"settings"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// parseMonth extracts year/month from the query, defaulting to now.
func parseMonth(r *http.Request) (int, time.Month) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}
	return year, month
}

func (s *Server) summarize(r *http.Request) summaryResponse {
	book := s.book.Snapshot()
	year, month := parseMonth(r)
	return summaryResponse{
		Year:              year,
		Month:             int(month),
		NetWorth:          core.NetWorth(book),
		TotalAssets:       core.TotalAssets(book),
		TotalLiabilities:  core.TotalLiabilities(book),
		UnusedCredit:      core.UnusedCredit(book),
		CreditUtilization: core.CreditUtilization(book),
		MonthTotals:       core.MonthlyTotals(book, year, month),
		ExpenseByCategory: core.ExpenseByCategory(book),
		NetWorthSeries:    core.NetWorthSeries(book, time.Now(), 12),
		Recent:            core.RecentTransactions(book, 8),
		Settings:          book.Settings,
		UpdatedAt:         book.Meta.UpdatedAt,
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.summarize(r))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", s.summarize(r)); err != nil {
		s.logger.Error("Failed to render dashboard", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]map[string][]string{
		"assets":      core.AssetCategories,
		"liabilities": core.LiabilityCategories,
	})
}
