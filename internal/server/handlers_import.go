package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/company-scout/internal/schemas"
)

// maxImportBytes caps the import payload size (16 MiB).
const maxImportBytes = 16 << 20

// handleImport validates a JSON array of scraped company facts and merges it
// into the index. A payload that fails schema validation imports nothing and
// returns the per-field failures.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(payload) > maxImportBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Import payload too large")
		return
	}

	summary, err := s.importer.ImportJSON(r.Context(), payload)
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			fields := make([]map[string]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, map[string]string{
					"field":   fe.Field,
					"message": fe.Message,
				})
			}
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  "validation_failed",
				"fields": fields,
			})
			return
		}
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			s.errorResponse(w, http.StatusInternalServerError, "Import schema unavailable")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Import failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, summary)
}
