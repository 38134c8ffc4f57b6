package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/counsellor"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
)

// profileRequest carries either an inline profile or the id of a stored one.
type profileRequest struct {
	UserID  string              `json:"userId,omitempty"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

func (s *Server) resolveProfile(r *http.Request, req profileRequest) (models.UserProfile, error) {
	if req.Profile != nil {
		return *req.Profile, nil
	}
	if req.UserID == "" {
		return models.UserProfile{}, fmt.Errorf("%w: profile or userId is required", errMalformedBody)
	}
	state, err := s.store.LoadState(r.Context(), req.UserID)
	if err != nil {
		return models.UserProfile{}, err
	}
	return state.Profile, nil
}

func (s *Server) listUniversities(w http.ResponseWriter, r *http.Request) {
	unis, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	opts := scoring.FilterOptions{
		BudgetRange:    q.Get("budget"),
		FieldOfStudy:   q.Get("field"),
		OnlyAffordable: q.Get("budget") != "",
	}
	if c := q.Get("countries"); c != "" {
		opts.PreferredCountries = strings.Split(c, ",")
	}
	unis = scoring.FilterUniversities(unis, opts)

	writeJSON(w, http.StatusOK, map[string]interface{}{"universities": unis, "count": len(unis)})
}

func (s *Server) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	unis, err := catalog.Refresh(r.Context(), s.catalog)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("catalog refreshed", map[string]interface{}{"count": len(unis)})
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(unis)})
}

func (s *Server) filterUniversities(w http.ResponseWriter, r *http.Request) {
	var opts scoring.FilterOptions
	if err := decode(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	unis, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := scoring.FilterUniversities(unis, opts)
	if opts.Profile != nil {
		out = scoring.SortByFit(out, *opts.Profile)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"universities": out, "count": len(out)})
}

func (s *Server) analyzeProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	profile, err := s.resolveProfile(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	analysis := scoring.AnalyzeProfile(profile)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analysis":        analysis,
		"profileStrength": scoring.ProfileStrength(profile),
		"gapReport":       counsellor.GapReport(analysis),
	})
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	profile, err := s.resolveProfile(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	unis, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scoring.RecommendDetailed(unis, profile))
}

func (s *Server) explainFit(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	profile, err := s.resolveProfile(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := catalog.Get(r.Context(), s.catalog, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"university": scoring.Rank(u, profile),
		"affordable": scoring.TuitionFloor(u.TuitionFee) <= scoring.BudgetCeiling(profile.BudgetRange),
	})
}

type chatRequest struct {
	UserID  string           `json:"userId,omitempty"`
	Message string           `json:"message"`
	State   *models.AppState `json:"state,omitempty"`
}

type chatResponse struct {
	counsellor.Reply
	Fallback bool `json:"fallback,omitempty"`
}

// chat answers one message. Actions in the reply are returned to the caller
// for confirmation, not applied; POST them to /api/users/{id}/actions.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	state := req.State
	if state == nil {
		if req.UserID == "" {
			s.writeError(w, r, fmt.Errorf("%w: state or userId is required", errMalformedBody))
			return
		}
		var err error
		if state, err = s.store.LoadState(r.Context(), req.UserID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	unis, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusOK, chatResponse{Reply: counsellor.BuildGreeting(*state, unis)})
		return
	}

	reply, err := s.responder.Respond(r.Context(), req.Message, *state, unis)
	if err != nil {
		s.logger.Warn("counsellor unavailable, replying with fallback", map[string]interface{}{
			"error": err.Error(),
		})
		writeJSON(w, http.StatusOK, chatResponse{
			Reply:    counsellor.Reply{Text: counsellor.FallbackText, Actions: []counsellor.Action{}},
			Fallback: true,
		})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: *reply})
}
