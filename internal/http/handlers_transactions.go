package http

import (
	"net/http"

	"finbook/internal/core"
)

type transactionPayload struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   any    `json:"amount"`
	Date     string `json:"date"`
	// AccountID is the wire-form "kind:id" reference, empty for an
	// untracked transaction.
	AccountID string `json:"accountId"`
	Note      string `json:"note"`
}

func (p transactionPayload) record(id string) (core.Transaction, error) {
	typ := core.TransactionType(p.Type)
	if !typ.Valid() {
		typ = core.Expense
	}
	ref, err := core.ParseAccountRef(p.AccountID)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:       id,
		Type:     typ,
		Category: p.Category,
		Amount:   coerceAmount(p.Amount),
		Date:     p.Date,
		Account:  ref,
		Note:     p.Note,
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.RecentTransactions(s.book.Snapshot(), -1))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var p transactionPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record, err := p.record("")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.book.AddTransaction(record))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var p transactionPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record, err := p.record(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.book.UpdateTransaction(record); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteTransaction(r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
