// internal/models/university.go
package models

// Level is a Low/Medium/High tier. For AcceptanceChance it describes admission
// difficulty inversely: Low means hard to get into, High means easy.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

type Category string

const (
	CategoryDream  Category = "Dream"
	CategoryTarget Category = "Target"
	CategorySafe   Category = "Safe"
)

// University is one catalog entry. Category is the catalog's display default;
// per-profile categorisation is derived from AcceptanceChance.
type University struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Country          string   `json:"country" yaml:"country"`
	CostLevel        Level    `json:"costLevel" yaml:"costLevel"`
	AcceptanceChance Level    `json:"acceptanceChance" yaml:"acceptanceChance"`
	Category         Category `json:"category" yaml:"category"`
	WhyFit           string   `json:"whyFit" yaml:"whyFit"`
	Risks            string   `json:"risks" yaml:"risks"`
	TuitionFee       string   `json:"tuitionFee" yaml:"tuitionFee"`
}
