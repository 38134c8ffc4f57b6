// internal/scoring/testdata_test.go
package scoring

import "studyabroad-workers/internal/models"

func fixtureCatalog() []models.University {
	return []models.University{
		{
			ID: "1", Name: "University of Toronto", Country: "Canada",
			CostLevel: models.LevelHigh, AcceptanceChance: models.LevelLow, Category: models.CategoryDream,
			WhyFit: "Top-tier CS program matching your tech interest.", Risks: "High competition and high tuition fees.",
			TuitionFee: "$45,000 - $60,000",
		},
		{
			ID: "2", Name: "University of Waterloo", Country: "Canada",
			CostLevel: models.LevelMedium, AcceptanceChance: models.LevelMedium, Category: models.CategoryTarget,
			WhyFit: "Excellent co-op opportunities for IT students.", Risks: "Rigorous workload and specific math requirements.",
			TuitionFee: "$30,000 - $45,000",
		},
		{
			ID: "3", Name: "York University", Country: "Canada",
			CostLevel: models.LevelMedium, AcceptanceChance: models.LevelHigh, Category: models.CategorySafe,
			WhyFit: "Good location and solid tech curriculum.", Risks: "Lower global ranking compared to UofT.",
			TuitionFee: "$20,000 - $30,000",
		},
		{
			ID: "4", Name: "University of Melbourne", Country: "Australia",
			CostLevel: models.LevelHigh, AcceptanceChance: models.LevelLow, Category: models.CategoryDream,
			WhyFit: "Global prestige and strong industry links.", Risks: "Very high living costs in Melbourne.",
			TuitionFee: "$40,000 - $55,000",
		},
	}
}

func strongProfile() models.UserProfile {
	return models.UserProfile{
		Name:               "Asha",
		EducationLevel:     "Bachelor's",
		Major:              "Computer Science",
		GPA:                "3.9/4.0",
		IntendedDegree:     "Master's",
		FieldOfStudy:       "Computer Science",
		PreferredCountries: []string{"Canada"},
		BudgetRange:        "$30,000 - $50,000",
		IELTSScore:         "8.0",
		GREScore:           "325",
		SOPStatus:          models.SOPFinal,
	}
}
