package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/satish051/RealEstateApp/internal/auth"
)

// createKeyResponse carries the one-time plaintext key.
type createKeyResponse struct {
	Key    string       `json:"key"`
	APIKey *auth.APIKey `json:"api_key"`
}

// handleAPIKeys handles GET (list) and POST (create) on /api/keys.
// The middleware has already required a session for these paths.
func (s *Server) handleAPIKeys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		keys, err := s.apiKeys.List()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to list keys")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"keys": keys})

	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if err := decodeJSONBody(r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			writeJSONError(w, http.StatusBadRequest, "name is required")
			return
		}

		plaintext, key, err := s.apiKeys.Create(req.Name)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to create key")
			return
		}

		// The plaintext key is shown exactly once.
		writeJSON(w, http.StatusCreated, createKeyResponse{Key: plaintext, APIKey: key})

	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAPIKeyDelete handles DELETE /api/keys/{id}.
func (s *Server) handleAPIKeyDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/keys/"), "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid key id")
		return
	}

	if err := s.apiKeys.Delete(id); err != nil {
		writeJSONError(w, http.StatusNotFound, "key not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
