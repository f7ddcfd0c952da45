package http

import (
	"encoding/json"
	"net/http"

	"finbook/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}

// coerceAmount accepts a JSON number or a free-form string and coerces
// it to a number; anything else counts as zero. Numeric fields are
// never a reason to reject a request.
func coerceAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		return core.ToAmount(n)
	case json.Number:
		return core.ToAmount(n.String())
	}
	return 0
}
