package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/model"
	"github.com/regradar/compliance-cli/internal/store"
)

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req model.EnrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompanyName == "" {
		writeError(w, http.StatusBadRequest, "company_name is required")
		return
	}

	profile, err := s.enricher.Enrich(r.Context(), req)
	if err != nil {
		zap.L().Error("scrape failed",
			zap.String("company", req.CompanyName),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Return the scraped profile even when storage fails, flagging the
	// storage error alongside.
	stored, err := s.store.UpsertProfile(r.Context(), profile)
	if err != nil {
		zap.L().Error("store profile failed",
			zap.String("company", req.CompanyName),
			zap.Error(err))
		writeJSON(w, http.StatusOK, envelope{
			Success: true,
			Data:    profile,
			Error:   fmt.Sprintf("data scraped but storage failed: %s", err.Error()),
		})
		return
	}

	writeData(w, http.StatusOK, stored)
}

func (s *Server) handleScrapeURLs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URLs []string `json:"urls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "urls is required")
		return
	}

	result := s.enricher.EnrichBatch(r.Context(), req.URLs, s.concurrency)

	for i := range result.Profiles {
		p := &result.Profiles[i]
		if _, err := s.store.UpsertProfile(r.Context(), p); err != nil {
			zap.L().Error("store profile failed",
				zap.String("company", p.CompanyName),
				zap.Error(err))
		}
	}

	writeData(w, http.StatusOK, result)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	name := pathCompanyName(r)

	profile, err := s.store.GetProfile(r.Context(), name)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("company %q not found", name))
			return
		}
		zap.L().Error("get profile failed", zap.String("company", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeData(w, http.StatusOK, profile)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	filter := store.ProfileFilter{
		Industry: r.URL.Query().Get("industry"),
		Limit:    queryInt(r, "limit", 50),
		Offset:   queryInt(r, "offset", 0),
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}
	if filter.Offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be non-negative")
		return
	}

	profiles, err := s.store.ListProfiles(r.Context(), filter)
	if err != nil {
		zap.L().Error("list profiles failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []model.CompanyProfile{}
	}

	count := len(profiles)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: profiles, Count: &count})
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	name := pathCompanyName(r)

	if err := s.store.DeleteProfile(r.Context(), name); err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("company %q not found", name))
			return
		}
		zap.L().Error("delete profile failed", zap.String("company", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: fmt.Sprintf("company %q deleted", name),
	})
}

func (s *Server) handleRegulatoryTopics(w http.ResponseWriter, r *http.Request) {
	name := pathCompanyName(r)

	profile, err := s.store.GetProfile(r.Context(), name)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("company %q not found", name))
			return
		}
		zap.L().Error("get profile failed", zap.String("company", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"company_name":      profile.CompanyName,
		"regulatory_topics": profile.RegulatoryTopics,
	})
}

func pathCompanyName(r *http.Request) string {
	name := chi.URLParam(r, "companyName")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
