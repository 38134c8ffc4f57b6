// internal/scoring/explainer.go
package scoring

import (
	"strings"

	"studyabroad-workers/internal/models"
)

const (
	reasonFitsBudget      = "fits your budget range"
	reasonExceedsBudget   = "exceeds your budget - consider scholarships"
	reasonPreferred       = "matches your preferred country"
	reasonFieldProgram    = "strong program in your field of interest"
	reasonIELTSMeets      = "your IELTS score meets their requirements"
	reasonIELTSChallenge  = "may be challenging with current IELTS score"
	reasonGeneralFallback = "general fit based on your profile"

	ieltsComfortBand = 7.0
)

// FitReason explains in one sentence how u suits p: budget, country, field of
// study and IELTS against the university's acceptance tier, in that order.
func FitReason(u models.University, p models.UserProfile) string {
	return fitReason(u, p, ParseSignals(p))
}

func fitReason(u models.University, p models.UserProfile, sig Signals) string {
	var reasons []string

	// An unset budget is 0, so any priced university reads as over budget.
	if TuitionFloor(u.TuitionFee) <= sig.Budget {
		reasons = append(reasons, reasonFitsBudget)
	} else {
		reasons = append(reasons, reasonExceedsBudget)
	}

	if p.PrefersCountry(u.Country) {
		reasons = append(reasons, reasonPreferred)
	}

	if p.FieldOfStudy != "" && containsFold(u.Name, p.FieldOfStudy) {
		reasons = append(reasons, reasonFieldProgram)
	}

	switch {
	case sig.IELTS >= ieltsComfortBand && u.AcceptanceChance == models.LevelHigh:
		reasons = append(reasons, reasonIELTSMeets)
	case sig.IELTS < ieltsComfortBand && u.AcceptanceChance == models.LevelLow:
		reasons = append(reasons, reasonIELTSChallenge)
	}

	if len(reasons) == 0 {
		return reasonGeneralFallback
	}
	return strings.Join(reasons, ", ")
}
