// internal/scoring/filter_test.go
package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyabroad-workers/internal/models"
)

func ids(unis []models.University) []string {
	out := make([]string, 0, len(unis))
	for _, u := range unis {
		out = append(out, u.ID)
	}
	return out
}

func TestFilterUniversities(t *testing.T) {
	catalog := fixtureCatalog()
	strong := strongProfile()
	weak := models.UserProfile{IELTSScore: "6.2"}

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"no constraints keeps everything", FilterOptions{}, []string{"1", "2", "3", "4"}},
		{"country", FilterOptions{PreferredCountries: []string{"Australia"}}, []string{"4"}},
		{"field matches why-fit text", FilterOptions{FieldOfStudy: "CO-OP"}, []string{"2"}},
		{"field matches name", FilterOptions{FieldOfStudy: "york"}, []string{"3"}},
		{"budget ignored unless affordable-only", FilterOptions{BudgetRange: "$25,000"}, []string{"1", "2", "3", "4"}},
		{"affordable only", FilterOptions{BudgetRange: "$25,000 - $30,000", OnlyAffordable: true}, []string{"2", "3"}},
		{"affordable only without budget", FilterOptions{OnlyAffordable: true}, []string{"1", "2", "3", "4"}},
		{"IELTS check drops hard tiers", FilterOptions{Profile: &weak, CheckIELTS: true}, []string{"3"}},
		{"IELTS check passes a strong profile", FilterOptions{Profile: &strong, CheckIELTS: true}, []string{"1", "2", "3", "4"}},
		{"IELTS check without a score", FilterOptions{Profile: &models.UserProfile{}, CheckIELTS: true}, []string{"1", "2", "3", "4"}},
		{"IELTS score ignored unless checked", FilterOptions{Profile: &weak}, []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterUniversities(catalog, tt.opts)))
		})
	}
}

func TestFitScore(t *testing.T) {
	catalog := fixtureCatalog()
	p := models.UserProfile{BudgetRange: "$30,000 - $40,000", PreferredCountries: []string{"Canada"}}

	assert.Equal(t, 0+2+1, FitScore(catalog[0], p)) // Toronto: over budget, preferred, Low
	assert.Equal(t, 3+2+2, FitScore(catalog[1], p)) // Waterloo
	assert.Equal(t, 3+2+3, FitScore(catalog[2], p)) // York
	assert.Equal(t, 3+0+1, FitScore(catalog[3], p)) // Melbourne: $40,000 is within the ceiling
}

func TestSortByFit_StableAndCopying(t *testing.T) {
	catalog := fixtureCatalog()
	original := append([]models.University(nil), catalog...)
	p := models.UserProfile{BudgetRange: "$30,000 - $40,000", PreferredCountries: []string{"Canada"}}

	sorted := SortByFit(catalog, p)

	assert.Equal(t, []string{"3", "2", "4", "1"}, ids(sorted))
	assert.Equal(t, original, catalog)

	same := []models.University{
		{ID: "a", AcceptanceChance: models.LevelLow},
		{ID: "b", AcceptanceChance: models.LevelLow},
		{ID: "c", AcceptanceChance: models.LevelHigh},
		{ID: "d", AcceptanceChance: models.LevelLow},
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(SortByFit(same, models.UserProfile{})))
}

func TestRecommend_ExcludesOtherCountries(t *testing.T) {
	p := models.UserProfile{PreferredCountries: []string{"Canada"}}

	got := Recommend(fixtureCatalog(), p)

	assert.Equal(t, []string{"1"}, ids(got.Dream))
	assert.Equal(t, []string{"2"}, ids(got.Target))
	assert.Equal(t, []string{"3"}, ids(got.Safe))
	for _, bucket := range [][]models.University{got.Dream, got.Target, got.Safe} {
		for _, u := range bucket {
			assert.NotEqual(t, "University of Melbourne", u.Name)
		}
	}
}

func TestRecommend_EmptyBucketsAreNotNil(t *testing.T) {
	got := Recommend(fixtureCatalog(), models.UserProfile{PreferredCountries: []string{"Japan"}})

	require.NotNil(t, got.Dream)
	require.NotNil(t, got.Target)
	require.NotNil(t, got.Safe)
	assert.Empty(t, got.Dream)
	assert.Empty(t, got.Target)
	assert.Empty(t, got.Safe)
}

func TestRecommend_BucketCapsKeepHighestRanked(t *testing.T) {
	var catalog []models.University
	for i := 0; i < 6; i++ {
		for _, level := range []models.Level{models.LevelLow, models.LevelMedium, models.LevelHigh} {
			fee := "$80,000"
			if i%2 == 1 {
				fee = "$10,000"
			}
			catalog = append(catalog, models.University{
				ID:               fmt.Sprintf("%s-%d", level, i),
				Country:          "Canada",
				AcceptanceChance: level,
				TuitionFee:       fee,
			})
		}
	}
	p := models.UserProfile{BudgetRange: "$20,000"}

	got := Recommend(catalog, p)

	assert.Len(t, got.Dream, 3)
	assert.Len(t, got.Target, 4)
	assert.Len(t, got.Safe, 3)
	assert.Equal(t, []string{"Low-1", "Low-3", "Low-5"}, ids(got.Dream))
	assert.Equal(t, []string{"Medium-1", "Medium-3", "Medium-5", "Medium-0"}, ids(got.Target))
	assert.Equal(t, []string{"High-1", "High-3", "High-5"}, ids(got.Safe))
}

func TestRecommend_ResultsSatisfyFilter(t *testing.T) {
	catalog := fixtureCatalog()
	countries := [][]string{nil, {"Canada"}, {"Australia"}, {"Canada", "Australia"}}
	fields := []string{"", "tech", "co-op", "University", "medicine"}

	for _, c := range countries {
		for _, f := range fields {
			p := models.UserProfile{PreferredCountries: c, FieldOfStudy: f}
			got := Recommend(catalog, p)

			assert.LessOrEqual(t, len(got.Dream), 3)
			assert.LessOrEqual(t, len(got.Target), 4)
			assert.LessOrEqual(t, len(got.Safe), 3)
			for _, bucket := range [][]models.University{got.Dream, got.Target, got.Safe} {
				for _, u := range bucket {
					if len(c) > 0 {
						assert.Contains(t, c, u.Country)
					}
					if f != "" {
						assert.True(t, containsFold(u.Name, f) || containsFold(u.WhyFit, f), "%s does not match %q", u.Name, f)
					}
				}
			}
		}
	}
}

func TestRecommendDetailed(t *testing.T) {
	p := strongProfile()

	got := RecommendDetailed(fixtureCatalog(), p)

	assert.Empty(t, got.Dream)
	assert.Empty(t, got.Target)
	assert.Empty(t, got.Safe)

	p.FieldOfStudy = ""
	got = RecommendDetailed(fixtureCatalog(), p)
	require.Len(t, got.Safe, 1)
	york := got.Safe[0]
	assert.Equal(t, "3", york.ID)
	assert.Equal(t, 8, york.FitScore)
	assert.Equal(t, models.CategorySafe, york.ProfileCategory)
	assert.Equal(t, "fits your budget range, matches your preferred country, your IELTS score meets their requirements", york.FitReason)

	require.Len(t, got.Dream, 1)
	assert.Equal(t, models.CategoryDream, got.Dream[0].ProfileCategory)
	assert.Equal(t, "fits your budget range, matches your preferred country", got.Dream[0].FitReason)
}

func BenchmarkRecommend(b *testing.B) {
	catalog := fixtureCatalog()
	p := strongProfile()
	p.FieldOfStudy = ""
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Recommend(catalog, p)
	}
}
