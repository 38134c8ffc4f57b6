package counsellor

import (
	"fmt"
	"strings"

	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
)

// QuickActions are offered with the greeting.
var QuickActions = []Action{
	{Type: ActionAutoShortlist, Label: "Auto-Shortlist Top 3"},
	{Type: ActionCreatePlan, Label: "Create Application Plan"},
	{Type: ActionProfileGaps, Label: "Fix Profile Gaps"},
}

// BuildGreeting renders the counsellor's opening message: profile analysis,
// the top pick of each bucket with its fit reason and risk, next steps and
// prompt suggestions.
func BuildGreeting(state models.AppState, catalog []models.University) Reply {
	p := state.Profile
	analysis := scoring.AnalyzeProfile(p)
	recs := scoring.Recommend(catalog, p)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! I'm your AI Study Abroad Counsellor. I've analyzed your profile and I'm here to guide your journey step by step.\n\n", p.Name)

	b.WriteString("📊 **PROFILE ANALYSIS:**\n")
	fmt.Fprintf(&b, "Overall Strength: %d/100\n\n", analysis.OverallScore)

	b.WriteString("✅ **YOUR STRENGTHS:**\n")
	for _, s := range analysis.Strengths {
		fmt.Fprintf(&b, "• %s\n", s)
	}
	if len(analysis.Gaps) > 0 {
		b.WriteString("\n⚠️ **AREAS TO IMPROVE:**\n")
		for _, g := range analysis.Gaps {
			fmt.Fprintf(&b, "• %s\n", g)
		}
	}

	b.WriteString("\n🎯 **MY UNIVERSITY RECOMMENDATIONS:**\n\n")
	writePick(&b, "🌟 DREAM", recs.Dream, p)
	writePick(&b, "🎯 TARGET", recs.Target, p)
	writePick(&b, "✅ SAFE", recs.Safe, p)

	b.WriteString("🚀 **IMMEDIATE NEXT STEPS:**\n")
	if state.CurrentStage == models.StageBuildingProfile {
		b.WriteString("1. Let me shortlist your top 3 universities\n")
		b.WriteString("2. Create your application timeline\n")
		b.WriteString("3. Identify urgent tasks to complete\n\n")
	}

	b.WriteString("💬 **What would you like me to help you with first?**\n")
	b.WriteString("• \"Shortlist universities for me\"\n")
	b.WriteString("• \"Create my application plan\"\n")
	b.WriteString("• \"What should I improve in my profile?\"\n")
	b.WriteString("• \"Show me scholarship opportunities\"")

	actions := make([]Action, len(QuickActions))
	copy(actions, QuickActions)
	return Reply{Text: b.String(), Actions: actions}
}

func writePick(b *strings.Builder, label string, bucket []models.University, p models.UserProfile) {
	if len(bucket) == 0 {
		return
	}
	u := bucket[0]
	fmt.Fprintf(b, "**%s: %s** (%s)\n", label, u.Name, u.Country)
	fmt.Fprintf(b, "WHY: %s\n", scoring.FitReason(u, p))
	fmt.Fprintf(b, "RISK: %s\n\n", u.Risks)
}

// AutoShortlist picks the top university of each bucket, Dream first.
func AutoShortlist(catalog []models.University, p models.UserProfile) []models.University {
	recs := scoring.Recommend(catalog, p)
	picks := make([]models.University, 0, 3)
	for _, bucket := range [][]models.University{recs.Dream, recs.Target, recs.Safe} {
		if len(bucket) > 0 {
			picks = append(picks, bucket[0])
		}
	}
	return picks
}

var generalPlan = []string{
	"Complete IELTS/TOEFL preparation",
	"Draft Statement of Purpose",
	"Request recommendation letters",
	"Prepare financial documents",
	"Research scholarship opportunities",
}

var postLockPlan = []string{
	"Complete Statement of Purpose draft",
	"Gather academic transcripts",
	"Request recommendation letters",
	"Prepare financial documents",
	"Research scholarship opportunities",
}

// ApplicationPlan returns the five-step plan offered before any university
// is locked.
func ApplicationPlan() []models.ToDoItem {
	return planItems(generalPlan)
}

// PostLockPlan returns the application tasks created after a lock.
func PostLockPlan() []models.ToDoItem {
	return planItems(postLockPlan)
}

func planItems(tasks []string) []models.ToDoItem {
	items := make([]models.ToDoItem, len(tasks))
	for i, t := range tasks {
		items[i] = models.ToDoItem{Task: t, Category: models.TaskApplications}
	}
	return items
}

// GapReport renders the numbered list of profile gaps.
func GapReport(a models.ProfileAnalysis) string {
	var b strings.Builder
	b.WriteString("Let's fix your profile gaps:\n\n")
	if len(a.Gaps) == 0 {
		b.WriteString("No major gaps found. Your profile is in good shape.\n")
	}
	for i, g := range a.Gaps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g)
	}
	b.WriteString("\nWhich gap should we tackle first? I can help you create a specific action plan.")
	return b.String()
}

// DetailedAnalysis renders the full analysis with recommendations.
func DetailedAnalysis(a models.ProfileAnalysis) string {
	var b strings.Builder
	b.WriteString("📊 **Detailed Profile Analysis:**\n\n")
	fmt.Fprintf(&b, "**Overall Score: %d/100**\n\n", a.OverallScore)
	b.WriteString("**Detailed Breakdown:**\n")
	for _, s := range a.Strengths {
		fmt.Fprintf(&b, "✅ %s\n", s)
	}
	if len(a.Gaps) > 0 {
		b.WriteString("\n**Improvement Areas:**\n")
		for _, g := range a.Gaps {
			fmt.Fprintf(&b, "❌ %s\n", g)
		}
	}
	b.WriteString("\n**My Recommendations:**\n")
	for _, r := range a.Recommendations {
		fmt.Fprintf(&b, "💡 %s\n", r)
	}
	return b.String()
}
