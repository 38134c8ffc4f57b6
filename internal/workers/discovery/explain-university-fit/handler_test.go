// internal/workers/discovery/explain-university-fit/handler_test.go
package explainuniversityfit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/common/logger"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/store"
)

type stubProfiles map[string]models.UserProfile

func (s stubProfiles) LoadProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	p, ok := s[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrProfileNotFound, userID)
	}
	return &p, nil
}

func createTestProfile() models.UserProfile {
	return models.UserProfile{
		Name:               "Asha",
		GPA:                "3.9/4.0",
		PreferredCountries: []string{"Canada"},
		BudgetRange:        "$30,000 - $50,000",
		IELTSScore:         "8.0",
		GREScore:           "325",
	}
}

func TestHandler_Execute_Success(t *testing.T) {
	stretched := createTestProfile()
	stretched.BudgetRange = "$20,000"
	stretched.IELTSScore = "6.5"

	tests := []struct {
		name           string
		profile        models.UserProfile
		universityID   string
		wantReason     string
		wantScore      int
		wantCategory   models.Category
		wantAffordable bool
	}{
		{
			name:           "preferred dream within budget",
			profile:        createTestProfile(),
			universityID:   "1",
			wantReason:     "fits your budget range, matches your preferred country",
			wantScore:      6,
			wantCategory:   models.CategoryDream,
			wantAffordable: true,
		},
		{
			name:           "non-preferred country",
			profile:        createTestProfile(),
			universityID:   "4",
			wantReason:     "fits your budget range",
			wantScore:      4,
			wantCategory:   models.CategoryDream,
			wantAffordable: true,
		},
		{
			name:           "over budget with modest IELTS",
			profile:        stretched,
			universityID:   "1",
			wantReason:     "exceeds your budget - consider scholarships, matches your preferred country, may be challenging with current IELTS score",
			wantScore:      3,
			wantCategory:   models.CategoryDream,
			wantAffordable: false,
		},
		{
			name:           "safe school with strong IELTS",
			profile:        createTestProfile(),
			universityID:   "3",
			wantReason:     "fits your budget range, matches your preferred country, your IELTS score meets their requirements",
			wantScore:      8,
			wantCategory:   models.CategorySafe,
			wantAffordable: true,
		},
	}

	h := NewHandler(LoadConfig(), catalog.NewStatic(catalog.Default()), nil, logger.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			output, err := h.Execute(context.Background(), &Input{Profile: &p, UniversityID: tt.universityID})
			require.NoError(t, err)

			assert.Equal(t, tt.wantReason, output.FitReason)
			assert.Equal(t, tt.wantScore, output.FitScore)
			assert.Equal(t, tt.wantCategory, output.ProfileCategory)
			assert.Equal(t, tt.wantAffordable, output.Affordable)
			assert.Equal(t, tt.universityID, output.University.ID)
		})
	}
}

func TestHandler_Execute_StoredProfile(t *testing.T) {
	h := NewHandler(LoadConfig(), catalog.NewStatic(catalog.Default()),
		stubProfiles{"u1": createTestProfile()}, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{UserID: "u1", UniversityID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "University of Waterloo", output.University.Name)
	assert.Equal(t, models.CategoryTarget, output.ProfileCategory)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := NewHandler(LoadConfig(), catalog.NewStatic(catalog.Default()), stubProfiles{}, logger.NewTestLogger(t))
	p := createTestProfile()

	_, err := h.Execute(context.Background(), &Input{Profile: &p, UniversityID: "99"})
	assert.True(t, errors.Is(err, catalog.ErrUniversityNotFound))

	_, err = h.Execute(context.Background(), &Input{UniversityID: "1"})
	assert.True(t, errors.Is(err, ErrProfileValidationFailed))

	_, err = h.Execute(context.Background(), &Input{UserID: "ghost", UniversityID: "1"})
	assert.True(t, errors.Is(err, store.ErrProfileNotFound))
}
