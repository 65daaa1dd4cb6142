package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/company-scout/internal/search"
)

// stringList accepts either a JSON string or an array of strings, so callers
// can send "name": "Acme" and "name": ["Acme", "Acme Corp"] interchangeably.
type stringList []string

func (sl *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*sl = stringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*sl = stringList(many)
		return nil
	}
	return fmt.Errorf("expected string or array of strings")
}

// searchRequest is the POST /api/search payload
type searchRequest struct {
	Name    stringList `json:"name"`
	Phone   stringList `json:"phone"`
	URLs    stringList `json:"urls"`
	Address stringList `json:"address"`
	Debug   bool       `json:"debug"`
}

// handleSearch matches free-form criteria against the company index.
// Returns the best match, the full ranked list in debug mode, or a 404
// carrying the normalized criteria when nothing matches.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	criteria := search.Criteria{
		Names:     req.Name,
		Phones:    req.Phone,
		URLs:      req.URLs,
		Addresses: req.Address,
	}

	result, err := s.scorer.Search(r.Context(), criteria, req.Debug)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Search failed: "+err.Error())
		return
	}

	if !result.Found {
		s.jsonResponse(w, http.StatusNotFound, map[string]any{
			"found":           false,
			"message":         "No matching company found",
			"search_criteria": result.Criteria,
		})
		return
	}

	if req.Debug {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"found":           true,
			"results":         result.Hits,
			"search_criteria": result.Criteria,
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"found":           true,
		"score":           result.Score,
		"company":         result.Company,
		"search_criteria": result.Criteria,
	})
}
