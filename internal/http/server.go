// Package http serves the dashboard page and the JSON API. Handlers
// read through service snapshots and mutate only through the service;
// the persistence gateway picks up every change via the service's
// notifier.
package http

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"finbook/internal/gateway"
	"finbook/internal/service"
	appweb "finbook/web"
)

type Server struct {
	http.Server
	templates *template.Template
	book      *service.Book
	gw        *gateway.Gateway
	logger    *slog.Logger
}

func NewServer(addr string, book *service.Book, gw *gateway.Gateway, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		book:   book,
		gw:     gw,
		logger: logger.With("component", "http"),
	}
	s.templates = template.Must(template.ParseFS(appweb.TemplatesFS, "templates/*.html"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/summary", s.handleSummary)

	mux.HandleFunc("GET /api/assets", s.handleListAssets)
	mux.HandleFunc("POST /api/assets", s.handleCreateAsset)
	mux.HandleFunc("PUT /api/assets/{id}", s.handleUpdateAsset)
	mux.HandleFunc("DELETE /api/assets/{id}", s.handleDeleteAsset)

	mux.HandleFunc("GET /api/cards", s.handleListCards)
	mux.HandleFunc("POST /api/cards", s.handleCreateCard)
	mux.HandleFunc("PUT /api/cards/{id}", s.handleUpdateCard)
	mux.HandleFunc("DELETE /api/cards/{id}", s.handleDeleteCard)

	mux.HandleFunc("GET /api/liabilities", s.handleListLiabilities)
	mux.HandleFunc("POST /api/liabilities", s.handleCreateLiability)
	mux.HandleFunc("PUT /api/liabilities/{id}", s.handleUpdateLiability)
	mux.HandleFunc("DELETE /api/liabilities/{id}", s.handleDeleteLiability)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)

	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/import", s.handleImport)

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err == nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	s.Server = http.Server{
		Addr:           addr,
		Handler:        s.withRequestLog(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
	return s
}

// withRequestLog logs each request with method, path, status and timing.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
