package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/tokenstore"
)

func (s *Server) handleGenerateLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload          map[string]any `json:"payload"`
		ExpiresInMinutes int            `json:"expires_in_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Payload) == 0 {
		writeError(w, http.StatusBadRequest, "payload is required")
		return
	}

	ttl := s.tokenExpiry
	if req.ExpiresInMinutes > 0 {
		ttl = time.Duration(req.ExpiresInMinutes) * time.Minute
	}

	token, expiresAt, err := s.tokens.Issue(req.Payload, ttl)
	if err != nil {
		zap.L().Error("issue voice call token failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"token":      token,
		"link":       fmt.Sprintf("/voice-call?token=%s", token),
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetPayload(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	payload, err := s.tokens.Get(token)
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid or expired token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"payload": payload,
	})
}

func (s *Server) handleInvalidateToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := s.tokens.Invalidate(token); err != nil {
		if eris.Is(err, tokenstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "token not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "token invalidated"})
}
