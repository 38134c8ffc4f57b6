package counsellor

import (
	"encoding/json"
	"fmt"
	"strings"

	"studyabroad-workers/internal/models"
)

// SystemInstruction renders the counsellor persona together with the user's
// current state and the catalog the model may recommend from.
func SystemInstruction(state models.AppState, catalog []models.University) string {
	profile, _ := json.Marshal(state.Profile)
	shortlist, _ := json.Marshal(nonNil(state.ShortlistedUniversities))
	locked, _ := json.Marshal(nonNil(state.LockedUniversityIDs))

	var b strings.Builder
	b.WriteString("You are a professional Study Abroad Counsellor.\n")
	fmt.Fprintf(&b, "Current User Profile: %s\n", profile)
	fmt.Fprintf(&b, "Current Stage: %d (%s)\n", int(state.CurrentStage), state.CurrentStage)
	fmt.Fprintf(&b, "Shortlisted Universities: %s\n", shortlist)
	fmt.Fprintf(&b, "Locked Universities: %s\n\n", locked)

	b.WriteString("Your Goal:\n")
	b.WriteString("- Guide students step-by-step from confusion to clarity.\n")
	b.WriteString("- Explain profile strengths and gaps (e.g., \"Your GPA is strong, but you need higher IELTS for Dream unis\").\n")
	b.WriteString("- Recommend universities (Dream, Target, Safe) based on profile, budget, and preference.\n")
	b.WriteString("- TAKE ACTIONS: call shortlistUniversity, lockUniversity or addTask when requested or appropriate.\n")
	b.WriteString("- Only lock a university that is already shortlisted.\n")
	b.WriteString("- Be encouraging but realistic.\n\n")

	b.WriteString("Available Universities to recommend:\n")
	for _, u := range catalog {
		fmt.Fprintf(&b, "%s: %s (%s, %s, %s Cost, tuition %s)%s\n",
			u.ID, u.Name, u.Category, u.Country, u.CostLevel, u.TuitionFee, marker(state, u.ID))
	}

	fmt.Fprintf(&b, "\nCurrent Context: %s\n", stageGuidance(state.CurrentStage))
	return b.String()
}

func marker(state models.AppState, id string) string {
	switch {
	case state.IsLocked(id):
		return " [locked]"
	case state.IsShortlisted(id):
		return " [shortlisted]"
	}
	return ""
}

func stageGuidance(stage models.AppStage) string {
	switch stage {
	case models.StageBuildingProfile:
		return "The user is still building their profile. Focus on profile strengths and gaps."
	case models.StageDiscoveringUniversities:
		return "The user is discovering universities. Focus on Dream, Target and Safe options."
	case models.StageFinalizingUniversities:
		return "The user is finalizing their shortlist. Locking a university unlocks application guidance."
	case models.StagePreparingApplications:
		return "The user has locked a university. Focus on application tasks, documents and deadlines."
	}
	return "Unknown stage."
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
