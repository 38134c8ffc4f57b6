// internal/common/validation/profile.go
package validation

func stringField() map[string]interface{} {
	return map[string]interface{}{"type": "string"}
}

// ProfileSchema describes a user profile payload. Every field is optional;
// the analyzer treats missing values as absent.
var ProfileSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":             stringField(),
		"educationLevel":   stringField(),
		"major":            stringField(),
		"graduationYear":   map[string]interface{}{"type": "integer", "minimum": 1950, "maximum": 2100},
		"gpa":              stringField(),
		"intendedDegree":   stringField(),
		"fieldOfStudy":     stringField(),
		"targetIntakeYear": stringField(),
		"preferredCountries": map[string]interface{}{
			"type":  []interface{}{"array", "null"},
			"items": stringField(),
		},
		"budgetRange": stringField(),
		"fundingPlan": stringField(),
		"ieltsScore":  stringField(),
		"greScore":    stringField(),
		"sopStatus": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"", "Not Started", "Draft", "Review", "Final"},
		},
	},
}
