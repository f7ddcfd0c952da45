package http

import (
	"errors"
	"net/http"

	"finbook/internal/core"
	"finbook/internal/service"
)

// Record payloads accept amounts as numbers or strings; either way the
// value is coerced, never rejected.

type assetPayload struct {
	Name         string `json:"name"`
	MainCategory string `json:"mainCategory"`
	SubCategory  string `json:"subCategory"`
	Value        any    `json:"value"`
}

func (p assetPayload) record(id string) core.Asset {
	return core.Asset{
		ID:           id,
		Name:         p.Name,
		MainCategory: p.MainCategory,
		SubCategory:  p.SubCategory,
		Value:        coerceAmount(p.Value),
	}
}

type cardPayload struct {
	Name    string `json:"name"`
	Limit   any    `json:"limit"`
	Balance any    `json:"balance"`
	AER     any    `json:"aer"`
	DueDay  int    `json:"dueDay"`
}

func (p cardPayload) record(id string) core.CreditCard {
	return core.CreditCard{
		ID:      id,
		Name:    p.Name,
		Limit:   coerceAmount(p.Limit),
		Balance: coerceAmount(p.Balance),
		AER:     coerceAmount(p.AER),
		DueDay:  p.DueDay,
	}
}

type liabilityPayload struct {
	Name         string `json:"name"`
	MainCategory string `json:"mainCategory"`
	SubCategory  string `json:"subCategory"`
	Amount       any    `json:"amount"`
	DueDate      string `json:"dueDate"`
}

func (p liabilityPayload) record(id string) core.Liability {
	return core.Liability{
		ID:           id,
		Name:         p.Name,
		MainCategory: p.MainCategory,
		SubCategory:  p.SubCategory,
		Amount:       coerceAmount(p.Amount),
		DueDate:      p.DueDate,
	}
}

// ---- assets ----

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Snapshot().Assets)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var p assetPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusCreated, s.book.AddAsset(p.record("")))
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var p assetPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := p.record(r.PathValue("id"))
	if err := s.book.UpdateAsset(record); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteAsset(r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- credit cards ----

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Snapshot().CreditCards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var p cardPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusCreated, s.book.AddCreditCard(p.record("")))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var p cardPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := p.record(r.PathValue("id"))
	if err := s.book.UpdateCreditCard(record); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteCreditCard(r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- liabilities ----

func (s *Server) handleListLiabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Snapshot().Liabilities)
}

func (s *Server) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	var p liabilityPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusCreated, s.book.AddLiability(p.record("")))
}

func (s *Server) handleUpdateLiability(w http.ResponseWriter, r *http.Request) {
	var p liabilityPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := p.record(r.PathValue("id"))
	if err := s.book.UpdateLiability(record); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteLiability(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteLiability(r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
