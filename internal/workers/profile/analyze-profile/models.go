// internal/workers/profile/analyze-profile/models.go
package analyzeprofile

import (
	"encoding/json"

	"studyabroad-workers/internal/models"
)

// Input carries either an inline profile or the id of a stored one. An inline
// profile wins when both are present.
type Input struct {
	UserID  string          `json:"userId,omitempty"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

type Output struct {
	Analysis        models.ProfileAnalysis `json:"analysis"`
	OverallScore    int                    `json:"overallScore"`
	ProfileStrength int                    `json:"profileStrength"`
	HasGaps         bool                   `json:"hasGaps"`
	GapReport       string                 `json:"gapReport"`
}
