// internal/workers/discovery/explain-university-fit/models.go
package explainuniversityfit

import "studyabroad-workers/internal/models"

type Input struct {
	UserID       string              `json:"userId,omitempty"`
	Profile      *models.UserProfile `json:"profile,omitempty"`
	UniversityID string              `json:"universityId"`
}

type Output struct {
	University      models.RankedUniversity `json:"university"`
	FitReason       string                  `json:"fitReason"`
	FitScore        int                     `json:"fitScore"`
	ProfileCategory models.Category         `json:"profileCategory"`
	Affordable      bool                    `json:"affordable"`
}
