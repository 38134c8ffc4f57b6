// pkg/registry/registry.go
package registry

import "sort"

var activities = []Activity{
	{
		TaskType:    "analyze-profile",
		DisplayName: "Analyze Profile",
		Description: "Scores a student profile and lists its strengths, gaps and recommendations.",
		Category:    "profile",
		Inputs:      []string{"userId", "profile"},
		Outputs:     []string{"analysis", "overallScore", "profileStrength", "hasGaps", "gapReport"},
		ErrorCodes:  []string{"PROFILE_NOT_FOUND", "PROFILE_VALIDATION_FAILED", "QUERY_EXECUTION_FAILED"},
		Timeout:     "10s",
	},
	{
		TaskType:    "recommend-universities",
		DisplayName: "Recommend Universities",
		Description: "Buckets affordable universities in the preferred countries into Dream, Target and Safe.",
		Category:    "discovery",
		Inputs:      []string{"userId", "profile"},
		Outputs:     []string{"recommendations", "total", "hasRecommendations"},
		ErrorCodes:  []string{"PROFILE_NOT_FOUND", "PROFILE_VALIDATION_FAILED", "CATALOG_UNAVAILABLE"},
		Timeout:     "15s",
	},
	{
		TaskType:    "explain-university-fit",
		DisplayName: "Explain University Fit",
		Description: "Explains how one university fits a profile.",
		Category:    "discovery",
		Inputs:      []string{"userId", "profile", "universityId"},
		Outputs:     []string{"university", "fitReason", "fitScore", "profileCategory", "affordable"},
		ErrorCodes:  []string{"PROFILE_NOT_FOUND", "PROFILE_VALIDATION_FAILED", "UNIVERSITY_NOT_FOUND", "CATALOG_UNAVAILABLE"},
		Timeout:     "10s",
	},
	{
		TaskType:    "filter-universities",
		DisplayName: "Filter Universities",
		Description: "Filters the catalog by budget, countries, field and IELTS compatibility.",
		Category:    "discovery",
		Inputs:      []string{"profile", "budgetRange", "preferredCountries", "fieldOfStudy", "onlyAffordable", "checkIelts", "sortByFit"},
		Outputs:     []string{"universities", "count"},
		ErrorCodes:  []string{"PROFILE_VALIDATION_FAILED", "CATALOG_UNAVAILABLE"},
		Timeout:     "10s",
	},
	{
		TaskType:    "counsellor-chat",
		DisplayName: "Counsellor Chat",
		Description: "Answers a student message and applies the actions the counsellor proposes.",
		Category:    "counsellor",
		Inputs:      []string{"userId", "message"},
		Outputs:     []string{"reply", "outcomes", "actionErrors", "fallback"},
		ErrorCodes:  []string{"PROFILE_NOT_FOUND", "PROFILE_VALIDATION_FAILED", "CATALOG_UNAVAILABLE"},
		Timeout:     "60s",
	},
	{
		TaskType:    "counsellor-greeting",
		DisplayName: "Counsellor Greeting",
		Description: "Builds the opening message and quick actions for a student's current stage.",
		Category:    "counsellor",
		Inputs:      []string{"userId"},
		Outputs:     []string{"greeting", "quickActions", "stage"},
		ErrorCodes:  []string{"PROFILE_NOT_FOUND", "PROFILE_VALIDATION_FAILED", "CATALOG_UNAVAILABLE"},
		Timeout:     "10s",
	},
	{
		TaskType:    "apply-counsellor-action",
		DisplayName: "Apply Counsellor Action",
		Description: "Applies one typed action (shortlist, lock, addTask, autoShortlist, createPlan, createTasks, profileGaps, analyzeProfile) to a student's state.",
		Category:    "counsellor",
		Inputs:      []string{"userId", "action"},
		Outputs:     []string{"outcome", "notificationType", "universityId"},
		ErrorCodes:  []string{"PROFILE_NOT_FOUND", "PROFILE_VALIDATION_FAILED", "UNIVERSITY_NOT_FOUND", "NOT_SHORTLISTED", "INVALID_TASK_CATEGORY", "UNKNOWN_ACTION"},
		Timeout:     "15s",
	},
	{
		TaskType:    "send-notification",
		DisplayName: "Send Notification",
		Description: "Emails (and for high priority, texts) a student when a university is locked or a plan is created.",
		Category:    "notification",
		Inputs:      []string{"userId", "notificationType", "universityId", "priority", "metadata"},
		Outputs:     []string{"notificationId", "status", "channels", "failedChannels", "sentAt"},
		ErrorCodes:  []string{"PROFILE_VALIDATION_FAILED", "NOTIFICATION_SEND_FAILED"},
		Timeout:     "30s",
	},
}

// Activities returns every known activity ordered by category then task type.
func Activities() []Activity {
	out := make([]Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].TaskType < out[j].TaskType
	})
	return out
}

// Lookup finds an activity by task type.
func Lookup(taskType string) (Activity, bool) {
	for _, a := range activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Unknown returns the task types in names that no activity serves, sorted.
func Unknown(names []string) []string {
	var out []string
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
