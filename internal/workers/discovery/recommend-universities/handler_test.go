// internal/workers/discovery/recommend-universities/handler_test.go
package recommenduniversities

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

type failingCatalog struct{}

func (failingCatalog) List(context.Context) ([]models.University, error) {
	return nil, fmt.Errorf("%w: connection refused", catalog.ErrCatalogUnavailable)
}

type stubProfiles map[string]models.UserProfile

func (s stubProfiles) LoadProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	p, ok := s[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrProfileNotFound, userID)
	}
	return &p, nil
}

func createTestProfile() *models.UserProfile {
	return &models.UserProfile{
		Name:               "Asha",
		GPA:                "3.9/4.0",
		PreferredCountries: []string{"Canada"},
		BudgetRange:        "$30,000 - $50,000",
		IELTSScore:         "8.0",
		GREScore:           "325",
	}
}

func newTestHandler(t *testing.T, src catalog.Source, profiles ProfileLoader) *Handler {
	return NewHandler(LoadConfig(), src, profiles, logger.NewTestLogger(t))
}

func TestHandler_Execute_InlineProfile(t *testing.T) {
	h := newTestHandler(t, catalog.NewStatic(catalog.Default()), nil)

	output, err := h.Execute(context.Background(), &Input{Profile: createTestProfile()})
	require.NoError(t, err)

	assert.Equal(t, 3, output.Total)
	assert.True(t, output.HasRecommendations)
	require.Len(t, output.Recommendations.Dream, 1)
	require.Len(t, output.Recommendations.Target, 1)
	require.Len(t, output.Recommendations.Safe, 1)

	york := output.Recommendations.Safe[0]
	assert.Equal(t, "York University", york.Name)
	assert.Equal(t, 8, york.FitScore)
	assert.Equal(t, models.CategorySafe, york.ProfileCategory)
	assert.NotEmpty(t, york.FitReason)
}

func TestHandler_Execute_StoredProfileNoMatches(t *testing.T) {
	p := createTestProfile()
	p.PreferredCountries = []string{"Japan"}
	h := newTestHandler(t, catalog.NewStatic(catalog.Default()), stubProfiles{"u1": *p})

	output, err := h.Execute(context.Background(), &Input{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 0, output.Total)
	assert.False(t, output.HasRecommendations)
	assert.NotNil(t, output.Recommendations.Dream)
	assert.Empty(t, output.Recommendations.Dream)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     catalog.Source
		input   *Input
		wantErr error
	}{
		{"no profile", catalog.NewStatic(catalog.Default()), &Input{}, ErrProfileValidationFailed},
		{"unknown user", catalog.NewStatic(catalog.Default()), &Input{UserID: "ghost"}, store.ErrProfileNotFound},
		{"catalog down", failingCatalog{}, &Input{Profile: createTestProfile()}, catalog.ErrCatalogUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.src, stubProfiles{})
			_, err := h.Execute(context.Background(), tt.input)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
