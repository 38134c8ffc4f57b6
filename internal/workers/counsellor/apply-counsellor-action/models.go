// internal/workers/counsellor/apply-counsellor-action/models.go
package applycounselloraction

import "studyabroad-workers/internal/counsellor"

type Input struct {
	UserID string            `json:"userId"`
	Action counsellor.Action `json:"action"`
}

// Output carries the outcome plus the notification the process should send
// next, if any.
type Output struct {
	Outcome          counsellor.Outcome `json:"outcome"`
	NotificationType string             `json:"notificationType,omitempty"`
	UniversityID     string             `json:"universityId,omitempty"`
}

const (
	NotificationUniversityLocked = "university_locked"
	NotificationPlanCreated      = "plan_created"
)
