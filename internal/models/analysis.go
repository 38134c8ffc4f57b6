// internal/models/analysis.go
package models

type ProfileAnalysis struct {
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	OverallScore    int      `json:"overallScore"`
	Recommendations []string `json:"recommendations"`
}

type RecommendationBuckets struct {
	Dream  []University `json:"dream"`
	Target []University `json:"target"`
	Safe   []University `json:"safe"`
}

// RankedUniversity decorates a catalog entry with profile-relative results.
type RankedUniversity struct {
	University
	FitScore        int      `json:"fitScore"`
	FitReason       string   `json:"fitReason"`
	ProfileCategory Category `json:"profileCategory"`
}

type RankedBuckets struct {
	Dream  []RankedUniversity `json:"dream"`
	Target []RankedUniversity `json:"target"`
	Safe   []RankedUniversity `json:"safe"`
}
