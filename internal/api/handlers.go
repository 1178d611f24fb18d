package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lifegame-app/lifegame/internal/domain"
)

// ─── Goals ───────────────────────────────────────────────────────────────────

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goals":       s.tracker.Goals(),
		"completions": s.tracker.Progress().Completions,
	})
}

type goalRequest struct {
	Title  string `json:"title"`
	Points int    `json:"points"`
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	goal := s.tracker.AddGoal(req.Title, req.Points)
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.tracker.UpdateGoal(id, req.Title, req.Points); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.tracker.DeleteGoal(id); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	points, err := s.tracker.Toggle(id)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points":      points,
		"completions": s.tracker.Progress().Completions,
	})
}

// ─── Derived views ───────────────────────────────────────────────────────────

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Progress())
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Level())
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"streak": s.tracker.Streak(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Stats())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Summary())
}

// ─── Profile ─────────────────────────────────────────────────────────────────

type profileRequest struct {
	Name     *string `json:"name,omitempty"`
	Baseline *int    `json:"baseline,omitempty"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":     s.tracker.Name(),
		"baseline": s.tracker.Baseline(),
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil && req.Baseline == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if req.Baseline != nil && *req.Baseline < 0 {
		writeError(w, http.StatusBadRequest, "baseline must not be negative")
		return
	}

	if req.Name != nil {
		s.tracker.SetName(*req.Name)
	}
	if req.Baseline != nil {
		s.tracker.SetBaseline(*req.Baseline)
	}
	s.handleGetProfile(w, r)
}
