// internal/workers/counsellor/counsellor-greeting/models.go
package counsellorgreeting

import "studyabroad-workers/internal/counsellor"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	Greeting     string              `json:"greeting"`
	QuickActions []counsellor.Action `json:"quickActions"`
	Stage        string              `json:"stage"`
}
