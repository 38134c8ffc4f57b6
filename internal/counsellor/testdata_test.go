package counsellor

import (
	"context"
	"fmt"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/store"
)

func testProfile() models.UserProfile {
	return models.UserProfile{
		Name:               "Asha",
		Major:              "Computer Science",
		GPA:                "3.9/4.0",
		PreferredCountries: []string{"Canada"},
		BudgetRange:        "$30,000 - $50,000",
		IELTSScore:         "8.0",
		GREScore:           "325",
		SOPStatus:          models.SOPFinal,
	}
}

func testState() models.AppState {
	return models.AppState{
		UserID:  "u1",
		Profile: testProfile(),
	}
}

type noopLogger struct{}

func (noopLogger) Info(string, map[string]interface{}) {}
func (noopLogger) Warn(string, map[string]interface{}) {}

// memStore is an in-memory StateStore with the same rules as the Postgres store.
type memStore struct {
	state   models.AppState
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{state: models.AppState{
		UserID:                  "u1",
		Profile:                 testProfile(),
		ShortlistedUniversities: []string{},
		LockedUniversityIDs:     []string{},
		ToDos:                   []models.ToDoItem{},
	}}
}

func (m *memStore) LoadState(_ context.Context, userID string) (*models.AppState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if userID != m.state.UserID {
		return nil, fmt.Errorf("%w: %s", store.ErrProfileNotFound, userID)
	}
	s := m.state
	return &s, nil
}

func (m *memStore) Shortlist(_ context.Context, _ string, id string) (bool, error) {
	if m.state.IsShortlisted(id) {
		return false, nil
	}
	m.state.ShortlistedUniversities = append(m.state.ShortlistedUniversities, id)
	if m.state.CurrentStage < models.StageFinalizingUniversities {
		m.state.CurrentStage = models.StageFinalizingUniversities
	}
	return true, nil
}

func (m *memStore) Lock(_ context.Context, _ string, id string) (bool, error) {
	if !m.state.IsShortlisted(id) {
		return false, fmt.Errorf("%w: %s", store.ErrNotShortlisted, id)
	}
	if m.state.IsLocked(id) {
		return false, nil
	}
	m.state.LockedUniversityIDs = append(m.state.LockedUniversityIDs, id)
	m.state.CurrentStage = models.StagePreparingApplications
	return true, nil
}

func (m *memStore) AddTodos(_ context.Context, _ string, items []models.ToDoItem) ([]models.ToDoItem, error) {
	out := make([]models.ToDoItem, 0, len(items))
	for i, item := range items {
		if !item.Category.Valid() {
			return nil, fmt.Errorf("%w: %s", store.ErrInvalidTaskCategory, item.Category)
		}
		item.ID = fmt.Sprintf("t%d", len(m.state.ToDos)+i+1)
		out = append(out, item)
	}
	m.state.ToDos = append(m.state.ToDos, out...)
	return out, nil
}

func staticCatalog() catalog.Source {
	return catalog.NewStatic(catalog.Default())
}
