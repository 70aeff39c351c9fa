package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/prefs"
	"github.com/learninglab/bitlab/internal/progress"
)

// ProgressService is the learner-journey surface the handlers need.
type ProgressService interface {
	Journey(ctx context.Context) []progress.ModuleStatus
	Status(ctx context.Context, id string) (progress.ModuleStatus, bool)
	HasCompletedPrerequisites(ctx context.Context, id string) bool
	MissingPrerequisites(ctx context.Context, id string) []string
	MarkModuleComplete(ctx context.Context, id string) error
	ResetProgress(ctx context.Context) error
	CompletedModules(ctx context.Context) []string
	Summary(ctx context.Context) progress.Summary
}

// PrefsService is the preferences surface the handlers need.
type PrefsService interface {
	DarkMode(ctx context.Context) bool
	SetDarkMode(ctx context.Context, on bool) error
	LearnerName(ctx context.Context) string
	SetLearnerName(ctx context.Context, name string) error
	ClearLearnerName(ctx context.Context) error
	HighScores(ctx context.Context) []prefs.HighScore
	RecordHighScore(ctx context.Context, hs prefs.HighScore) (bool, error)
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := EncodeJSON(w, data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// EncodeJSON writes v as a single line of JSON followed by a newline.
func EncodeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// ProgressHandler serves module and progress routes.
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/modules", func(r chi.Router) {
		r.Get("/", h.ListModules)
		r.Get("/{id}", h.GetModule)
		r.Get("/{id}/prerequisites", h.GetPrerequisites)
		r.Post("/{id}/complete", h.CompleteModule)
	})
	r.Route("/progress", func(r chi.Router) {
		r.Get("/", h.GetProgress)
		r.Delete("/", h.ResetProgress)
	})
}

// ListModules handles GET /modules
func (h *ProgressHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, h.service.Journey(r.Context()))
}

// GetModule handles GET /modules/{id}
func (h *ProgressHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, ok := h.service.Status(r.Context(), id)
	if !ok {
		h.RespondError(w, http.StatusNotFound, "module not found")
		return
	}
	h.RespondJSON(w, http.StatusOK, status)
}

// prerequisiteResponse answers "may the learner open this module?".
type prerequisiteResponse struct {
	Satisfied bool     `json:"satisfied"`
	Missing   []string `json:"missing"`
}

// GetPrerequisites handles GET /modules/{id}/prerequisites.
// Unknown modules have no prerequisites, matching the tracker.
func (h *ProgressHandler) GetPrerequisites(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.RespondJSON(w, http.StatusOK, prerequisiteResponse{
		Satisfied: h.service.HasCompletedPrerequisites(r.Context(), id),
		Missing:   h.service.MissingPrerequisites(r.Context(), id),
	})
}

// CompleteModule handles POST /modules/{id}/complete
func (h *ProgressHandler) CompleteModule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.MarkModuleComplete(r.Context(), id); err != nil {
		if errors.Is(err, progress.ErrUnknownModule) {
			h.RespondError(w, http.StatusNotFound, "module not found")
			return
		}
		h.Logger.Error("failed to mark module complete",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("module", id),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// progressResponse is the learner's summary plus the raw completion set.
type progressResponse struct {
	progress.Summary
	CompletedModules []string `json:"completedModules"`
}

// GetProgress handles GET /progress
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, progressResponse{
		Summary:          h.service.Summary(r.Context()),
		CompletedModules: h.service.CompletedModules(r.Context()),
	})
}

// ResetProgress handles DELETE /progress
func (h *ProgressHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetProgress(r.Context()); err != nil {
		h.Logger.Error("failed to reset progress",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "failed to reset progress")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PrefsHandler serves preference and leaderboard routes.
type PrefsHandler struct {
	BaseHandler
	service PrefsService
}

// NewPrefsHandler creates a new preferences handler
func NewPrefsHandler(svc PrefsService, logger *zap.Logger) *PrefsHandler {
	return &PrefsHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all preference handler routes
func (h *PrefsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.UpdatePreferences)
	r.Get("/highscores", h.GetHighScores)
	r.Post("/highscores", h.RecordHighScore)
}

// preferences is the wire shape of the learner's preferences.
type preferences struct {
	DarkMode    bool   `json:"darkMode"`
	LearnerName string `json:"learnerName"`
}

// preferencesUpdate is a partial update; nil fields are left unchanged.
// An empty learnerName clears the saved name.
type preferencesUpdate struct {
	DarkMode    *bool   `json:"darkMode"`
	LearnerName *string `json:"learnerName"`
}

// GetPreferences handles GET /preferences
func (h *PrefsHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, preferences{
		DarkMode:    h.service.DarkMode(r.Context()),
		LearnerName: h.service.LearnerName(r.Context()),
	})
}

// UpdatePreferences handles PUT /preferences
func (h *PrefsHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate the whole update before writing any of it.
	if req.LearnerName != nil && *req.LearnerName != "" && strings.TrimSpace(*req.LearnerName) == "" {
		h.RespondError(w, http.StatusBadRequest, prefs.ErrEmptyName.Error())
		return
	}

	ctx := r.Context()
	if req.DarkMode != nil {
		if err := h.service.SetDarkMode(ctx, *req.DarkMode); err != nil {
			h.failSave(w, r, err)
			return
		}
	}
	if req.LearnerName != nil {
		var err error
		if *req.LearnerName == "" {
			err = h.service.ClearLearnerName(ctx)
		} else {
			err = h.service.SetLearnerName(ctx, *req.LearnerName)
		}
		if err != nil {
			h.failSave(w, r, err)
			return
		}
	}

	h.GetPreferences(w, r)
}

// GetHighScores handles GET /highscores
func (h *PrefsHandler) GetHighScores(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, h.service.HighScores(r.Context()))
}

// highScoreRequest is the body of POST /highscores.
type highScoreRequest struct {
	Name  string `json:"name"`
	Game  string `json:"game"`
	Score int    `json:"score"`
}

// RecordHighScore handles POST /highscores
func (h *PrefsHandler) RecordHighScore(w http.ResponseWriter, r *http.Request) {
	var req highScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Score < 0 {
		h.RespondError(w, http.StatusBadRequest, "score must not be negative")
		return
	}

	ranked, err := h.service.RecordHighScore(r.Context(), prefs.HighScore{
		Name:  req.Name,
		Game:  req.Game,
		Score: req.Score,
	})
	if errors.Is(err, prefs.ErrEmptyName) {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.failSave(w, r, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]bool{"ranked": ranked})
}

func (h *PrefsHandler) failSave(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Error("failed to save preferences",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Error(err),
	)
	h.RespondError(w, http.StatusInternalServerError, "failed to save preferences")
}
