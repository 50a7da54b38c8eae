package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/model"
	"github.com/regradar/compliance-cli/internal/store"
)

// createContactRequest mirrors the create payload. Pointer booleans
// distinguish "absent" from "false": channel_email defaults to on.
type createContactRequest struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ChannelEmail   *bool  `json:"channel_email"`
	ChannelSMS     bool   `json:"channel_sms"`
	ChannelCalls   bool   `json:"channel_calls"`
	Frequency      string `json:"frequency"`
	HighImpactOnly bool   `json:"high_impact_only"`
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	frequency := model.FrequencyDaily
	if req.Frequency != "" {
		parsed, ok := model.ParseNotificationFrequency(req.Frequency)
		if !ok {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("invalid frequency %q: must be realtime, daily, or weekly", req.Frequency))
			return
		}
		frequency = parsed
	}

	channelEmail := true
	if req.ChannelEmail != nil {
		channelEmail = *req.ChannelEmail
	}

	contact := &model.NotificationContact{
		UserID:         userID,
		Name:           req.Name,
		Role:           req.Role,
		Email:          req.Email,
		Phone:          req.Phone,
		ChannelEmail:   channelEmail,
		ChannelSMS:     req.ChannelSMS,
		ChannelCalls:   req.ChannelCalls,
		Frequency:      frequency,
		HighImpactOnly: req.HighImpactOnly,
		IsActive:       true,
	}

	created, err := s.store.CreateContact(r.Context(), contact)
	if err != nil {
		zap.L().Error("create contact failed", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	zap.L().Info("notification contact created",
		zap.String("contact_id", created.ID),
		zap.String("user_id", userID))
	writeData(w, http.StatusOK, created)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	filter := store.ContactFilter{UserID: chi.URLParam(r, "userID")}

	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "is_active must be true or false")
			return
		}
		filter.IsActive = &active
	}

	contacts, err := s.store.ListContacts(r.Context(), filter)
	if err != nil {
		zap.L().Error("list contacts failed", zap.String("user_id", filter.UserID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []model.NotificationContact{}
	}

	count := len(contacts)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: contacts, Count: &count})
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")

	contact, err := s.store.GetContact(r.Context(), id)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("contact %s not found", id))
			return
		}
		zap.L().Error("get contact failed", zap.String("contact_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeData(w, http.StatusOK, contact)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")

	var update model.ContactUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if update.Frequency != nil {
		parsed, ok := model.ParseNotificationFrequency(string(*update.Frequency))
		if !ok {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("invalid frequency %q: must be realtime, daily, or weekly", *update.Frequency))
			return
		}
		update.Frequency = &parsed
	}
	if update.Email != nil && !strings.Contains(*update.Email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	updated, err := s.store.UpdateContact(r.Context(), id, update)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("contact %s not found", id))
			return
		}
		zap.L().Error("update contact failed", zap.String("contact_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")

	if err := s.store.DeleteContact(r.Context(), id); err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("contact %s not found", id))
			return
		}
		zap.L().Error("delete contact failed", zap.String("contact_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: fmt.Sprintf("contact %s deleted", id),
	})
}
