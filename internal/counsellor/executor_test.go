package counsellor

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/common/metrics"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/store"
)

func TestExecutor_ShortlistThenLock(t *testing.T) {
	ms := newMemStore()
	e := NewExecutor(ms, staticCatalog())
	ctx := context.Background()

	out, err := e.Apply(ctx, "u1", Action{Type: ActionShortlist, UniversityID: "2"})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Contains(t, out.Message, "I've shortlisted University of Waterloo")
	assert.Equal(t, models.StageFinalizingUniversities, ms.state.CurrentStage)

	out, err = e.Apply(ctx, "u1", Action{Type: ActionShortlist, UniversityID: "2"})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, []string{"2"}, ms.state.ShortlistedUniversities)

	out, err = e.Apply(ctx, "u1", Action{Type: ActionLock, UniversityID: "2"})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, models.StagePreparingApplications, ms.state.CurrentStage)
	require.Len(t, out.NextActions, 1)
	assert.Equal(t, ActionCreateTasks, out.NextActions[0].Type)
}

func TestExecutor_LockRequiresShortlist(t *testing.T) {
	e := NewExecutor(newMemStore(), staticCatalog())

	before := testutil.ToFloat64(metrics.CounsellorActions.WithLabelValues("lock", "failed"))
	_, err := e.Apply(context.Background(), "u1", Action{Type: ActionLock, UniversityID: "3"})
	assert.True(t, errors.Is(err, store.ErrNotShortlisted))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CounsellorActions.WithLabelValues("lock", "failed")))
}

func TestExecutor_UnknownUniversity(t *testing.T) {
	e := NewExecutor(newMemStore(), staticCatalog())
	_, err := e.Apply(context.Background(), "u1", Action{Type: ActionShortlist, UniversityID: "99"})
	assert.True(t, errors.Is(err, catalog.ErrUniversityNotFound))
}

func TestExecutor_AddTask(t *testing.T) {
	ms := newMemStore()
	e := NewExecutor(ms, staticCatalog())

	out, err := e.Apply(context.Background(), "u1", Action{Type: ActionAddTask, Task: "Book IELTS", Category: models.TaskExams})
	require.NoError(t, err)
	require.Len(t, out.Todos, 1)
	assert.NotEmpty(t, out.Todos[0].ID)
	assert.Len(t, ms.state.ToDos, 1)

	_, err = e.Apply(context.Background(), "u1", Action{Type: ActionAddTask, Task: "Relax", Category: "Leisure"})
	assert.True(t, errors.Is(err, store.ErrInvalidTaskCategory))
}

func TestExecutor_AutoShortlist(t *testing.T) {
	ms := newMemStore()
	e := NewExecutor(ms, staticCatalog())

	out, err := e.Apply(context.Background(), "u1", Action{Type: ActionAutoShortlist})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, []string{"1", "2", "3"}, out.Shortlisted)
	assert.Equal(t, []string{"1", "2", "3"}, ms.state.ShortlistedUniversities)
	assert.Contains(t, out.Message, "• University of Toronto (Dream)")
	assert.Contains(t, out.Message, "• York University (Safe)")
}

func TestExecutor_AutoShortlist_NoMatches(t *testing.T) {
	ms := newMemStore()
	ms.state.Profile.PreferredCountries = []string{"Germany"}
	e := NewExecutor(ms, staticCatalog())

	out, err := e.Apply(context.Background(), "u1", Action{Type: ActionAutoShortlist})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Empty(t, ms.state.ShortlistedUniversities)
}

func TestExecutor_Plans(t *testing.T) {
	ms := newMemStore()
	e := NewExecutor(ms, staticCatalog())

	outcomes, err := e.ApplyAll(context.Background(), "u1", []Action{
		{Type: ActionCreatePlan},
		{Type: ActionCreateTasks},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Len(t, ms.state.ToDos, 10)
	assert.Contains(t, outcomes[0].Message, "5-step application plan")
}

func TestExecutor_ProfileGaps(t *testing.T) {
	ms := newMemStore()
	ms.state.Profile.SOPStatus = models.SOPDraft
	e := NewExecutor(ms, staticCatalog())

	out, err := e.Apply(context.Background(), "u1", Action{Type: ActionProfileGaps})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Contains(t, out.Message, "1. Statement of Purpose still in draft stage")
}

func TestExecutor_AnalyzeProfile(t *testing.T) {
	e := NewExecutor(newMemStore(), staticCatalog())

	out, err := e.Apply(context.Background(), "u1", Action{Type: ActionAnalyze})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Contains(t, out.Message, "**Overall Score: 80/100**")
	assert.Contains(t, out.Message, "My Recommendations")
}

func TestExecutor_UnknownAction(t *testing.T) {
	e := NewExecutor(newMemStore(), staticCatalog())
	outcomes, err := e.ApplyAll(context.Background(), "u1", []Action{
		{Type: ActionCreatePlan},
		{Type: "launchRocket"},
		{Type: ActionCreatePlan},
	})
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.Len(t, outcomes, 1)
}

func TestExecutor_ProfileMissing(t *testing.T) {
	e := NewExecutor(newMemStore(), staticCatalog())
	_, err := e.Apply(context.Background(), "ghost", Action{Type: ActionProfileGaps})
	assert.True(t, errors.Is(err, store.ErrProfileNotFound))
}
