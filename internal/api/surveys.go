package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// SurveysHandler handles shift survey endpoints.
type SurveysHandler struct {
	DB *sql.DB
}

// GetDraft handles GET /api/surveys/draft?instructor_name=.
// It looks for a draft dated today or later.
func (h *SurveysHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("instructor_name")

	survey, err := store.FindDraft(r.Context(), h.DB, name, model.Today())
	if err != nil {
		slog.Error("finding draft survey", "instructor", name, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to find draft survey")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"success": survey != nil,
		"survey":  survey,
	})
}

// SaveDraft handles POST /api/surveys/draft.
func (h *SurveysHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var draft model.SurveyDraft
	if err := decodeJSON(r, &draft); err != nil {
		if errors.Is(err, model.ErrUnknownSurveyID) {
			jsonError(w, http.StatusNotFound, "Survey not found")
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := store.SaveDraft(r.Context(), h.DB, draft)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("saving draft survey", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save survey")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"survey":  survey,
	})
}

// Complete handles POST /api/surveys/{id}/complete.
func (h *SurveysHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid survey id")
		return
	}

	err = store.CompleteSurvey(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("completing survey", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to complete survey")
		return
	}

	slog.Info("survey completed", "id", id)
	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Survey completed",
	})
}

// List handles GET /api/surveys.
func (h *SurveysHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := store.ListSurveys(r.Context(), h.DB)
	if err != nil {
		slog.Error("listing surveys", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list surveys")
		return
	}
	if surveys == nil {
		surveys = []model.Survey{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(surveys),
		"surveys": surveys,
	})
}

// Get handles GET /api/surveys/{id}.
func (h *SurveysHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid survey id")
		return
	}

	survey, err := store.GetSurvey(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("getting survey", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get survey")
		return
	}
	if survey == nil {
		jsonError(w, http.StatusNotFound, "Survey not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"survey":  survey,
	})
}
