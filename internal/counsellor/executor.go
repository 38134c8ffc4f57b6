package counsellor

import (
	"context"
	"fmt"
	"strings"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/common/metrics"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
)

// StateStore is the part of the profile store the executor mutates.
type StateStore interface {
	LoadState(ctx context.Context, userID string) (*models.AppState, error)
	Shortlist(ctx context.Context, userID, universityID string) (bool, error)
	Lock(ctx context.Context, userID, universityID string) (bool, error)
	AddTodos(ctx context.Context, userID string, items []models.ToDoItem) ([]models.ToDoItem, error)
}

// Outcome describes what applying one action did.
type Outcome struct {
	Action      Action            `json:"action"`
	Changed     bool              `json:"changed"`
	Message     string            `json:"message"`
	Shortlisted []string          `json:"shortlisted,omitempty"`
	Todos       []models.ToDoItem `json:"todos,omitempty"`
	NextActions []Action          `json:"nextActions,omitempty"`
}

// Executor applies counsellor actions to a user's state.
type Executor struct {
	store   StateStore
	catalog catalog.Source
}

func NewExecutor(store StateStore, src catalog.Source) *Executor {
	return &Executor{store: store, catalog: src}
}

// Apply performs one action for userID.
func (e *Executor) Apply(ctx context.Context, userID string, action Action) (*Outcome, error) {
	out, err := e.apply(ctx, userID, action)
	switch {
	case err != nil:
		metrics.CounsellorActions.WithLabelValues(string(action.Type), "failed").Inc()
	case out.Changed:
		metrics.CounsellorActions.WithLabelValues(string(action.Type), "applied").Inc()
	default:
		metrics.CounsellorActions.WithLabelValues(string(action.Type), "unchanged").Inc()
	}
	return out, err
}

// ApplyAll applies actions in order and stops at the first error.
func (e *Executor) ApplyAll(ctx context.Context, userID string, actions []Action) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(actions))
	for _, a := range actions {
		out, err := e.Apply(ctx, userID, a)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, *out)
	}
	return outcomes, nil
}

func (e *Executor) apply(ctx context.Context, userID string, action Action) (*Outcome, error) {
	out := &Outcome{Action: action}

	switch action.Type {
	case ActionShortlist:
		u, err := catalog.Get(ctx, e.catalog, action.UniversityID)
		if err != nil {
			return nil, err
		}
		if out.Changed, err = e.store.Shortlist(ctx, userID, u.ID); err != nil {
			return nil, err
		}
		out.Shortlisted = []string{u.ID}
		out.Message = fmt.Sprintf("Great choice! I've shortlisted %s for you. You can now lock it when you're ready to commit.", u.Name)

	case ActionLock:
		u, err := catalog.Get(ctx, e.catalog, action.UniversityID)
		if err != nil {
			return nil, err
		}
		if out.Changed, err = e.store.Lock(ctx, userID, u.ID); err != nil {
			return nil, err
		}
		out.Message = fmt.Sprintf("Excellent! You've locked %s. This shows great commitment. I'll now create personalized application tasks for you.", u.Name)
		out.NextActions = []Action{{Type: ActionCreateTasks, Label: "Create Application Tasks", UniversityID: u.ID}}

	case ActionAddTask:
		items, err := e.store.AddTodos(ctx, userID, []models.ToDoItem{{Task: action.Task, Category: action.Category}})
		if err != nil {
			return nil, err
		}
		out.Changed = true
		out.Todos = items
		out.Message = fmt.Sprintf("I've added \"%s\" to your %s tasks.", action.Task, action.Category)

	case ActionAutoShortlist:
		state, err := e.store.LoadState(ctx, userID)
		if err != nil {
			return nil, err
		}
		unis, err := e.catalog.List(ctx)
		if err != nil {
			return nil, err
		}
		picks := AutoShortlist(unis, state.Profile)
		if len(picks) == 0 {
			out.Message = "I couldn't find universities that match your budget and preferences yet. Try widening your preferred countries or budget range."
			return out, nil
		}
		lines := make([]string, 0, len(picks))
		for _, u := range picks {
			added, err := e.store.Shortlist(ctx, userID, u.ID)
			if err != nil {
				return nil, err
			}
			out.Changed = out.Changed || added
			out.Shortlisted = append(out.Shortlisted, u.ID)
			lines = append(lines, fmt.Sprintf("• %s (%s)", u.Name, scoring.CategorizeForProfile(u, state.Profile)))
		}
		out.Message = fmt.Sprintf("Perfect! I've shortlisted your top %d universities:\n\n%s\n\nNow let's create your application timeline. What's your target application deadline?",
			len(picks), strings.Join(lines, "\n"))

	case ActionCreatePlan:
		items, err := e.store.AddTodos(ctx, userID, ApplicationPlan())
		if err != nil {
			return nil, err
		}
		out.Changed = true
		out.Todos = items
		out.Message = "Excellent! I've created your 5-step application plan. Check your dashboard to track progress.\n\nNext, let's work on strengthening your profile. Which area would you like to focus on first?"

	case ActionCreateTasks:
		items, err := e.store.AddTodos(ctx, userID, PostLockPlan())
		if err != nil {
			return nil, err
		}
		out.Changed = true
		out.Todos = items
		out.Message = "Perfect! I've created 5 essential application tasks for you. Check your dashboard to track progress. Remember, early preparation is key to success!"

	case ActionProfileGaps:
		state, err := e.store.LoadState(ctx, userID)
		if err != nil {
			return nil, err
		}
		out.Message = GapReport(scoring.AnalyzeProfile(state.Profile))

	case ActionAnalyze:
		state, err := e.store.LoadState(ctx, userID)
		if err != nil {
			return nil, err
		}
		out.Message = DetailedAnalysis(scoring.AnalyzeProfile(state.Profile))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action.Type)
	}

	return out, nil
}
