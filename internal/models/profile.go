// internal/models/profile.go
package models

type SOPStatus string

const (
	SOPNotStarted SOPStatus = "Not Started"
	SOPDraft      SOPStatus = "Draft"
	SOPReview     SOPStatus = "Review"
	SOPFinal      SOPStatus = "Final"
)

// UserProfile is the applicant profile captured by onboarding. Scores, GPA and
// budget are kept as the free-form strings the user typed; the scoring package
// parses them once into numeric signals.
type UserProfile struct {
	Name               string    `json:"name" yaml:"name"`
	EducationLevel     string    `json:"educationLevel" yaml:"educationLevel"`
	Major              string    `json:"major" yaml:"major"`
	GraduationYear     int       `json:"graduationYear,omitempty" yaml:"graduationYear"`
	GPA                string    `json:"gpa" yaml:"gpa"`
	IntendedDegree     string    `json:"intendedDegree" yaml:"intendedDegree"`
	FieldOfStudy       string    `json:"fieldOfStudy" yaml:"fieldOfStudy"`
	TargetIntakeYear   string    `json:"targetIntakeYear" yaml:"targetIntakeYear"`
	PreferredCountries []string  `json:"preferredCountries" yaml:"preferredCountries"`
	BudgetRange        string    `json:"budgetRange" yaml:"budgetRange"`
	FundingPlan        string    `json:"fundingPlan" yaml:"fundingPlan"`
	IELTSScore         string    `json:"ieltsScore" yaml:"ieltsScore"`
	GREScore           string    `json:"greScore" yaml:"greScore"`
	SOPStatus          SOPStatus `json:"sopStatus" yaml:"sopStatus"`
}

// PrefersCountry reports whether country is one of the profile's preferred countries.
func (p UserProfile) PrefersCountry(country string) bool {
	for _, c := range p.PreferredCountries {
		if c == country {
			return true
		}
	}
	return false
}
