// internal/workers/counsellor/counsellor-chat/models.go
package counsellorchat

import "studyabroad-workers/internal/counsellor"

type Input struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type Output struct {
	Reply        counsellor.Reply     `json:"reply"`
	Outcomes     []counsellor.Outcome `json:"outcomes"`
	ActionErrors []string             `json:"actionErrors,omitempty"`
	Fallback     bool                 `json:"fallback"`
}
