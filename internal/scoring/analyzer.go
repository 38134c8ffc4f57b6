// internal/scoring/analyzer.go
package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"studyabroad-workers/internal/models"
)

const maxOverallScore = 100

// AnalyzeProfile scores a profile and lists its strengths, gaps and the
// actions that would close those gaps. It never fails: fields that do not
// parse count as absent.
func AnalyzeProfile(p models.UserProfile) models.ProfileAnalysis {
	sig := ParseSignals(p)
	a := analysis{
		strengths:       []string{},
		gaps:            []string{},
		recommendations: []string{},
	}

	ielts := strconv.FormatFloat(sig.IELTS, 'f', -1, 64)
	switch {
	case sig.IELTS >= 7.5:
		a.strength(25, fmt.Sprintf("Excellent IELTS score (%s) - meets top university requirements", ielts))
	case sig.IELTS >= 6.5:
		a.strength(15, fmt.Sprintf("Good IELTS score (%s) - meets most university requirements", ielts))
	case sig.IELTS > 0:
		a.gap(fmt.Sprintf("IELTS score (%s) may limit university options", ielts),
			"Consider retaking IELTS to improve score above 7.0")
	default:
		a.gap("No IELTS score recorded", "Take IELTS exam - required for most international applications")
	}

	gre := strconv.FormatInt(int64(sig.GRE), 10)
	switch {
	case sig.GRE >= 320:
		a.strength(20, fmt.Sprintf("Strong GRE score (%s) - competitive for top programs", gre))
	case sig.GRE >= 300:
		a.strength(10, fmt.Sprintf("Decent GRE score (%s) - meets minimum requirements", gre))
	case sig.GRE > 0:
		a.gap(fmt.Sprintf("GRE score (%s) below competitive range", gre),
			"Consider retaking GRE to score above 310")
	}

	gpa := strings.TrimSpace(p.GPA)
	switch {
	case sig.GPA >= 3.7:
		a.strength(20, fmt.Sprintf("Strong academic record (%s) - excellent foundation", gpa))
	case sig.GPA >= 3.0:
		a.strength(10, fmt.Sprintf("Good academic record (%s) - meets requirements", gpa))
	case sig.GPA > 0:
		a.gap(fmt.Sprintf("GPA (%s) may limit top university options", gpa),
			"Highlight other strengths to compensate for GPA")
	}

	if p.Major != "" && p.FieldOfStudy != "" {
		if containsFold(p.Major, p.FieldOfStudy) || containsFold(p.FieldOfStudy, p.Major) {
			a.strength(15, "Strong field alignment between background and target study")
		} else {
			a.gap("Limited alignment between current major and target field",
				"Consider bridging courses or highlight transferable skills")
		}
	}

	switch {
	case strings.Contains(p.BudgetRange, "15,000") || strings.Contains(p.BudgetRange, "20,000"):
		a.strength(10, "Realistic budget planning for international education")
	case strings.Contains(p.BudgetRange, "50,000"):
		a.strength(15, "Strong financial capacity for premium universities")
	}

	if p.SOPStatus == models.SOPDraft {
		a.gap("Statement of Purpose still in draft stage", "Complete and refine your Statement of Purpose")
	}

	if a.score > maxOverallScore {
		a.score = maxOverallScore
	}

	return models.ProfileAnalysis{
		Strengths:       a.strengths,
		Gaps:            a.gaps,
		OverallScore:    a.score,
		Recommendations: a.recommendations,
	}
}

type analysis struct {
	score           int
	strengths       []string
	gaps            []string
	recommendations []string
}

func (a *analysis) strength(points int, msg string) {
	a.score += points
	a.strengths = append(a.strengths, msg)
}

// gap records a weakness; rec may be empty.
func (a *analysis) gap(msg, rec string) {
	a.gaps = append(a.gaps, msg)
	if rec != "" {
		a.recommendations = append(a.recommendations, rec)
	}
}
