// internal/scoring/analyzer_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyabroad-workers/internal/models"
)

func TestAnalyzeProfile_StrongScores(t *testing.T) {
	p := models.UserProfile{IELTSScore: "8.0", GPA: "3.9/4.0", GREScore: "325"}

	got := AnalyzeProfile(p)

	assert.Contains(t, got.Strengths, "Excellent IELTS score (8) - meets top university requirements")
	assert.Contains(t, got.Strengths, "Strong GRE score (325) - competitive for top programs")
	assert.Contains(t, got.Strengths, "Strong academic record (3.9/4.0) - excellent foundation")
	assert.GreaterOrEqual(t, got.OverallScore, 65)
	assert.Equal(t, 65, got.OverallScore)
	assert.Empty(t, got.Gaps)
	assert.Empty(t, got.Recommendations)
}

func TestAnalyzeProfile_EmptyProfile(t *testing.T) {
	got := AnalyzeProfile(models.UserProfile{})

	assert.Equal(t, 0, got.OverallScore)
	assert.Equal(t, []string{"No IELTS score recorded"}, got.Gaps)
	assert.Equal(t, []string{"Take IELTS exam - required for most international applications"}, got.Recommendations)
	assert.NotNil(t, got.Strengths)
	assert.Empty(t, got.Strengths)
}

func TestAnalyzeProfile_Rules(t *testing.T) {
	tests := []struct {
		name          string
		profile       models.UserProfile
		wantScore     int
		wantStrengths []string
		wantGaps      []string
		wantRecs      []string
	}{
		{
			name:          "good tier across the board",
			profile:       models.UserProfile{IELTSScore: "6.5", GREScore: "305", GPA: "3.2/4.0"},
			wantScore:     35,
			wantStrengths: []string{"Good IELTS score (6.5) - meets most university requirements", "Decent GRE score (305) - meets minimum requirements", "Good academic record (3.2/4.0) - meets requirements"},
		},
		{
			name:      "weak scores become gaps",
			profile:   models.UserProfile{IELTSScore: "6.0", GREScore: "290", GPA: "2.8/4.0"},
			wantScore: 0,
			wantGaps:  []string{"IELTS score (6) may limit university options", "GRE score (290) below competitive range", "GPA (2.8/4.0) may limit top university options"},
			wantRecs:  []string{"Consider retaking IELTS to improve score above 7.0", "Consider retaking GRE to score above 310", "Highlight other strengths to compensate for GPA"},
		},
		{
			name:          "field alignment either direction, case-insensitive",
			profile:       models.UserProfile{IELTSScore: "7.0", Major: "Computer Science", FieldOfStudy: "computer"},
			wantScore:     30,
			wantStrengths: []string{"Good IELTS score (7) - meets most university requirements", "Strong field alignment between background and target study"},
		},
		{
			name:          "misaligned field",
			profile:       models.UserProfile{IELTSScore: "7.5", Major: "History", FieldOfStudy: "Data Science"},
			wantScore:     25,
			wantStrengths: []string{"Excellent IELTS score (7.5) - meets top university requirements"},
			wantGaps:      []string{"Limited alignment between current major and target field"},
			wantRecs:      []string{"Consider bridging courses or highlight transferable skills"},
		},
		{
			name:          "realistic budget",
			profile:       models.UserProfile{IELTSScore: "7.5", BudgetRange: "$15,000 - $20,000"},
			wantScore:     35,
			wantStrengths: []string{"Excellent IELTS score (7.5) - meets top university requirements", "Realistic budget planning for international education"},
		},
		{
			name:          "realistic budget wins over premium when both appear",
			profile:       models.UserProfile{IELTSScore: "7.5", BudgetRange: "$20,000 - $50,000"},
			wantScore:     35,
			wantStrengths: []string{"Excellent IELTS score (7.5) - meets top university requirements", "Realistic budget planning for international education"},
		},
		{
			name:          "premium budget",
			profile:       models.UserProfile{IELTSScore: "7.5", BudgetRange: "Above $50,000"},
			wantScore:     40,
			wantStrengths: []string{"Excellent IELTS score (7.5) - meets top university requirements", "Strong financial capacity for premium universities"},
		},
		{
			name:          "draft statement of purpose",
			profile:       models.UserProfile{IELTSScore: "7.5", SOPStatus: models.SOPDraft},
			wantScore:     25,
			wantStrengths: []string{"Excellent IELTS score (7.5) - meets top university requirements"},
			wantGaps:      []string{"Statement of Purpose still in draft stage"},
			wantRecs:      []string{"Complete and refine your Statement of Purpose"},
		},
		{
			name:      "unparsable IELTS counts as absent",
			profile:   models.UserProfile{IELTSScore: "pending"},
			wantScore: 0,
			wantGaps:  []string{"No IELTS score recorded"},
			wantRecs:  []string{"Take IELTS exam - required for most international applications"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeProfile(tt.profile)

			assert.Equal(t, tt.wantScore, got.OverallScore)
			assert.Equal(t, orEmpty(tt.wantStrengths), got.Strengths)
			assert.Equal(t, orEmpty(tt.wantGaps), got.Gaps)
			assert.Equal(t, orEmpty(tt.wantRecs), got.Recommendations)
		})
	}
}

func TestAnalyzeProfile_Deterministic(t *testing.T) {
	p := strongProfile()
	p.SOPStatus = models.SOPDraft

	first := AnalyzeProfile(p)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, AnalyzeProfile(p))
	}
}

func TestAnalyzeProfile_ScoreStaysInRange(t *testing.T) {
	ielts := []string{"", "5.5", "6.5", "7.5", "9", "junk"}
	gre := []string{"", "280", "305", "340"}
	gpa := []string{"", "2.1/4.0", "3.3/4.0", "3.95/4.0", "99%"}
	budgets := []string{"", "$15,000 - $20,000", "$50,000+"}

	for _, i := range ielts {
		for _, g := range gre {
			for _, a := range gpa {
				for _, b := range budgets {
					p := models.UserProfile{
						IELTSScore: i, GREScore: g, GPA: a, BudgetRange: b,
						Major: "Computer Science", FieldOfStudy: "Computer Science",
					}
					score := AnalyzeProfile(p).OverallScore
					assert.GreaterOrEqual(t, score, 0)
					assert.LessOrEqual(t, score, 100)
				}
			}
		}
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func BenchmarkAnalyzeProfile(b *testing.B) {
	p := strongProfile()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AnalyzeProfile(p)
	}
}

func TestAnalyzeProfile_PrintsParsedScores(t *testing.T) {
	got := AnalyzeProfile(models.UserProfile{IELTSScore: " 7.50", GREScore: "321.9", GPA: " 3.9/4.0 "})

	assert.Contains(t, got.Strengths, "Excellent IELTS score (7.5) - meets top university requirements")
	assert.Contains(t, got.Strengths, "Strong GRE score (321) - competitive for top programs")
	assert.Contains(t, got.Strengths, "Strong academic record (3.9/4.0) - excellent foundation")
}
