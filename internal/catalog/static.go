// internal/catalog/static.go
package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"studyabroad-workers/internal/models"
)

// Static serves a fixed list.
type Static struct {
	universities []models.University
}

func NewStatic(unis []models.University) *Static {
	return &Static{universities: unis}
}

func (s *Static) List(_ context.Context) ([]models.University, error) {
	out := make([]models.University, len(s.universities))
	copy(out, s.universities)
	return out, nil
}

// LoadFile reads a catalog from a YAML or JSON file holding a list of
// universities.
func LoadFile(path string) ([]models.University, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var unis []models.University
	if err := yaml.Unmarshal(data, &unis); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return unis, nil
}

// Default is the built-in catalog used when no external source is configured.
func Default() []models.University {
	return []models.University{
		{
			ID:               "1",
			Name:             "University of Toronto",
			Country:          "Canada",
			CostLevel:        models.LevelHigh,
			AcceptanceChance: models.LevelLow,
			Category:         models.CategoryDream,
			WhyFit:           "Top-tier CS program matching your tech interest.",
			Risks:            "High competition and high tuition fees.",
			TuitionFee:       "$45,000 - $60,000",
		},
		{
			ID:               "2",
			Name:             "University of Waterloo",
			Country:          "Canada",
			CostLevel:        models.LevelMedium,
			AcceptanceChance: models.LevelMedium,
			Category:         models.CategoryTarget,
			WhyFit:           "Excellent co-op opportunities for IT students.",
			Risks:            "Rigorous workload and specific math requirements.",
			TuitionFee:       "$30,000 - $45,000",
		},
		{
			ID:               "3",
			Name:             "York University",
			Country:          "Canada",
			CostLevel:        models.LevelMedium,
			AcceptanceChance: models.LevelHigh,
			Category:         models.CategorySafe,
			WhyFit:           "Good location and solid tech curriculum.",
			Risks:            "Lower global ranking compared to UofT.",
			TuitionFee:       "$20,000 - $30,000",
		},
		{
			ID:               "4",
			Name:             "University of Melbourne",
			Country:          "Australia",
			CostLevel:        models.LevelHigh,
			AcceptanceChance: models.LevelLow,
			Category:         models.CategoryDream,
			WhyFit:           "Global prestige and strong industry links.",
			Risks:            "Very high living costs in Melbourne.",
			TuitionFee:       "$40,000 - $55,000",
		},
	}
}
