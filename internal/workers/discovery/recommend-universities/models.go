// internal/workers/discovery/recommend-universities/models.go
package recommenduniversities

import "studyabroad-workers/internal/models"

type Input struct {
	UserID  string              `json:"userId,omitempty"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

type Output struct {
	Recommendations    models.RankedBuckets `json:"recommendations"`
	Total              int                  `json:"total"`
	HasRecommendations bool                 `json:"hasRecommendations"`
}
