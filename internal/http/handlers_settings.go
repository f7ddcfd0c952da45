package http

import (
	"io"
	"net/http"

	"finbook/internal/core"
	"finbook/internal/service"
)

type settingsPayload struct {
	Currency                string `json:"currency"`
	Theme                   string `json:"theme"`
	IncludeCreditInNetworth bool   `json:"includeCreditInNetworth"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Snapshot().Settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var p settingsPayload
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated := s.book.UpdateSettings(core.Settings{
		Currency:                p.Currency,
		Theme:                   core.Theme(p.Theme),
		IncludeCreditInNetworth: p.IncludeCreditInNetworth,
	})
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := service.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	blob, err := s.book.Export(format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	switch format {
	case service.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Content-Disposition", `attachment; filename="finbook_backup.yaml"`)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="finbook_backup.json"`)
	}
	w.Write(blob)
}

// handleImport replaces the whole record store. Destructive, so the
// caller must send confirm=true; the UI asks the user first.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "import replaces all current data; pass confirm=true to proceed")
		return
	}
	format, err := service.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read import body")
		return
	}
	if err := s.book.Import(data, format); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Imports persist immediately rather than waiting out the debounce.
	if s.gw != nil {
		if err := s.gw.Flush(r.Context()); err != nil {
			s.logger.Error("Failed to persist import", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
