// internal/workers/discovery/filter-universities/models.go
package filteruniversities

import (
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
)

// Input is a set of explicit filter options. SortByFit ranks the result
// against Profile, which must then be present.
type Input struct {
	scoring.FilterOptions
	SortByFit bool `json:"sortByFit,omitempty"`
}

type Output struct {
	Universities []models.University `json:"universities"`
	Count        int                 `json:"count"`
}
