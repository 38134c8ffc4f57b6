// internal/scoring/filter.go
package scoring

import (
	"sort"

	"studyabroad-workers/internal/models"
)

const (
	maxDream  = 3
	maxTarget = 4
	maxSafe   = 3
)

// minIELTS is the IELTS band each acceptance tier expects.
var minIELTS = map[models.Level]float64{
	models.LevelHigh:   6.0,
	models.LevelMedium: 6.5,
	models.LevelLow:    7.0,
}

// FilterOptions selects catalog entries. Country and field constraints apply
// whenever they are set; the budget and IELTS checks are opt-in.
type FilterOptions struct {
	Profile            *models.UserProfile `json:"profile,omitempty"`
	BudgetRange        string              `json:"budgetRange,omitempty"`
	PreferredCountries []string            `json:"preferredCountries,omitempty"`
	FieldOfStudy       string              `json:"fieldOfStudy,omitempty"`
	OnlyAffordable     bool                `json:"onlyAffordable,omitempty"`
	CheckIELTS         bool                `json:"checkIelts,omitempty"`
}

// FilterUniversities returns the entries of catalog that satisfy opts, keeping
// catalog order. The input slice is not modified.
func FilterUniversities(catalog []models.University, opts FilterOptions) []models.University {
	budget := BudgetCeiling(opts.BudgetRange)
	var ielts float64
	if opts.Profile != nil {
		ielts = ParseScore(opts.Profile.IELTSScore)
	}

	out := make([]models.University, 0, len(catalog))
	for _, u := range catalog {
		if opts.OnlyAffordable && opts.BudgetRange != "" && TuitionFloor(u.TuitionFee) > budget {
			continue
		}
		if len(opts.PreferredCountries) > 0 && !containsString(opts.PreferredCountries, u.Country) {
			continue
		}
		if opts.FieldOfStudy != "" && !containsFold(u.Name, opts.FieldOfStudy) && !containsFold(u.WhyFit, opts.FieldOfStudy) {
			continue
		}
		if opts.CheckIELTS && ielts > 0 && !ieltsCompatible(u.AcceptanceChance, ielts) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func ieltsCompatible(tier models.Level, ielts float64) bool {
	want, ok := minIELTS[tier]
	if !ok {
		return true
	}
	return ielts >= want
}

// FitScore ranks how well u suits p: +3 when tuition is within budget, +2 for a
// preferred country, and +3/+2/+1 for a High/Medium/Low acceptance chance.
func FitScore(u models.University, p models.UserProfile) int {
	return fitScore(u, p, BudgetCeiling(p.BudgetRange))
}

func fitScore(u models.University, p models.UserProfile, budget int64) int {
	score := 0
	if TuitionFloor(u.TuitionFee) <= budget {
		score += 3
	}
	if p.PrefersCountry(u.Country) {
		score += 2
	}
	switch u.AcceptanceChance {
	case models.LevelHigh:
		score += 3
	case models.LevelMedium:
		score += 2
	case models.LevelLow:
		score++
	}
	return score
}

// SortByFit returns a copy of unis ordered by FitScore, highest first. Ties
// keep their input order.
func SortByFit(unis []models.University, p models.UserProfile) []models.University {
	budget := BudgetCeiling(p.BudgetRange)
	type scored struct {
		u     models.University
		score int
	}
	ranked := make([]scored, len(unis))
	for i, u := range unis {
		ranked[i] = scored{u: u, score: fitScore(u, p, budget)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]models.University, len(ranked))
	for i, r := range ranked {
		out[i] = r.u
	}
	return out
}

// Recommend filters catalog by the profile's countries and field of study,
// ranks the result and splits it by acceptance chance: Low into dream, Medium
// into target, High into safe. Empty buckets are a normal outcome.
func Recommend(catalog []models.University, p models.UserProfile) models.RecommendationBuckets {
	filtered := FilterUniversities(catalog, FilterOptions{
		PreferredCountries: p.PreferredCountries,
		FieldOfStudy:       p.FieldOfStudy,
	})
	sorted := SortByFit(filtered, p)

	buckets := models.RecommendationBuckets{
		Dream:  []models.University{},
		Target: []models.University{},
		Safe:   []models.University{},
	}
	for _, u := range sorted {
		switch u.AcceptanceChance {
		case models.LevelLow:
			if len(buckets.Dream) < maxDream {
				buckets.Dream = append(buckets.Dream, u)
			}
		case models.LevelMedium:
			if len(buckets.Target) < maxTarget {
				buckets.Target = append(buckets.Target, u)
			}
		case models.LevelHigh:
			if len(buckets.Safe) < maxSafe {
				buckets.Safe = append(buckets.Safe, u)
			}
		}
	}
	return buckets
}

// RecommendDetailed is Recommend with each pick annotated with its fit score,
// fit reason and profile-relative category.
func RecommendDetailed(catalog []models.University, p models.UserProfile) models.RankedBuckets {
	b := Recommend(catalog, p)
	sig := ParseSignals(p)
	strength := profileStrength(sig)
	return models.RankedBuckets{
		Dream:  rankAll(b.Dream, p, sig, strength),
		Target: rankAll(b.Target, p, sig, strength),
		Safe:   rankAll(b.Safe, p, sig, strength),
	}
}

// Rank annotates a single university for p.
func Rank(u models.University, p models.UserProfile) models.RankedUniversity {
	sig := ParseSignals(p)
	return rank(u, p, sig, profileStrength(sig))
}

func rankAll(unis []models.University, p models.UserProfile, sig Signals, strength int) []models.RankedUniversity {
	out := make([]models.RankedUniversity, 0, len(unis))
	for _, u := range unis {
		out = append(out, rank(u, p, sig, strength))
	}
	return out
}

func rank(u models.University, p models.UserProfile, sig Signals, strength int) models.RankedUniversity {
	return models.RankedUniversity{
		University:      u,
		FitScore:        fitScore(u, p, sig.Budget),
		FitReason:       fitReason(u, p, sig),
		ProfileCategory: categorize(u.AcceptanceChance, strength),
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
