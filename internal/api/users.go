package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyabroad-workers/internal/counsellor"
	"studyabroad-workers/internal/models"
)

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.LoadState(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := decode(r, &profile); err != nil {
		s.writeError(w, r, err)
		return
	}
	userID := chi.URLParam(r, "userID")
	if err := s.store.SaveProfile(r.Context(), userID, profile); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeState(w, r, userID)
}

type stageRequest struct {
	Stage models.AppStage `json:"stage"`
}

// putStage lets the front end move a student back a stage, for example to
// rework the profile after discovery. Forward moves normally happen through
// shortlist and lock.
func (s *Server) putStage(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !req.Stage.Valid() {
		s.writeError(w, r, fmt.Errorf("%w: stage %d out of range", errMalformedBody, req.Stage))
		return
	}
	userID := chi.URLParam(r, "userID")
	if err := s.store.SetStage(r.Context(), userID, req.Stage); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeState(w, r, userID)
}

func (s *Server) greeting(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.LoadState(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	unis, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"greeting":     counsellor.BuildGreeting(*state, unis),
		"quickActions": counsellor.QuickActions,
	})
}

func (s *Server) shortlist(w http.ResponseWriter, r *http.Request) {
	s.applyAndRespond(w, r, counsellor.Action{Type: counsellor.ActionShortlist, UniversityID: chi.URLParam(r, "id")})
}

func (s *Server) lock(w http.ResponseWriter, r *http.Request) {
	s.applyAndRespond(w, r, counsellor.Action{Type: counsellor.ActionLock, UniversityID: chi.URLParam(r, "id")})
}

func (s *Server) applyAction(w http.ResponseWriter, r *http.Request) {
	var action counsellor.Action
	if err := decode(r, &action); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.applyAndRespond(w, r, action)
}

func (s *Server) applyAndRespond(w http.ResponseWriter, r *http.Request, action counsellor.Action) {
	outcome, err := s.executor.Apply(r.Context(), chi.URLParam(r, "userID"), action)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) unshortlist(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := s.store.Unshortlist(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeState(w, r, userID)
}

type todoRequest struct {
	Task     string              `json:"task"`
	Category models.TaskCategory `json:"category"`
}

func (s *Server) addTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.store.AddTodo(r.Context(), chi.URLParam(r, "userID"), req.Task, req.Category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) toggleTodo(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := s.store.ToggleTodo(r.Context(), userID, chi.URLParam(r, "todoID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeState(w, r, userID)
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, userID string) {
	state, err := s.store.LoadState(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
