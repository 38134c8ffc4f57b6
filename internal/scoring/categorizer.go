// internal/scoring/categorizer.go
package scoring

import "studyabroad-workers/internal/models"

// ProfileStrength rates a profile from 0 to 8: up to 3 for IELTS, 3 for GPA
// and 2 for GRE.
func ProfileStrength(p models.UserProfile) int {
	return profileStrength(ParseSignals(p))
}

func profileStrength(sig Signals) int {
	strength := 0

	switch {
	case sig.IELTS >= 7.5:
		strength += 3
	case sig.IELTS >= 6.5:
		strength += 2
	case sig.IELTS >= 6.0:
		strength++
	}

	switch {
	case sig.GPA >= 3.7:
		strength += 3
	case sig.GPA >= 3.0:
		strength += 2
	case sig.GPA >= 2.5:
		strength++
	}

	switch {
	case sig.GRE >= 320:
		strength += 2
	case sig.GRE >= 300:
		strength++
	}

	return strength
}

// CategorizeForProfile labels u as Dream, Target or Safe relative to p.
func CategorizeForProfile(u models.University, p models.UserProfile) models.Category {
	return categorize(u.AcceptanceChance, ProfileStrength(p))
}

func categorize(chance models.Level, strength int) models.Category {
	switch {
	case strength >= 7:
		// Strong profiles; tuned separately from the middle band.
		switch chance {
		case models.LevelLow:
			return models.CategoryDream
		case models.LevelMedium:
			return models.CategoryTarget
		default:
			return models.CategorySafe
		}
	case strength >= 4:
		switch chance {
		case models.LevelLow:
			return models.CategoryDream
		case models.LevelMedium:
			return models.CategoryTarget
		default:
			return models.CategorySafe
		}
	default:
		if chance == models.LevelHigh {
			return models.CategoryTarget
		}
		return models.CategoryDream
	}
}
