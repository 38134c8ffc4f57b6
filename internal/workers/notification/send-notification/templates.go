// internal/workers/notification/send-notification/templates.go
package sendnotification

import (
	"fmt"
	"regexp"
	"strings"
)

type template struct {
	Subject string
	Body    string
	SMS     string
}

var templates = map[string]template{
	TypeUniversityLocked: {
		Subject: "You've locked {{universityName}}",
		Body: "Congratulations! You've committed to {{universityName}} ({{country}}).\n\n" +
			"Your application tasks are ready on your dashboard. Start with your Statement of Purpose " +
			"and recommendation letters, they take the longest.",
		SMS: "You've locked {{universityName}}. Your application tasks are on your dashboard.",
	},
	TypePlanCreated: {
		Subject: "Your application plan is ready",
		Body: "Your step-by-step application plan has been added to your dashboard.\n\n" +
			"Work through the tasks in order and tick them off as you go.",
		SMS: "Your application plan is ready. Check your dashboard.",
	},
}

var leftover = regexp.MustCompile(`\{\{[^}]*\}\}`)

// renderTemplate substitutes {{key}} placeholders from data. Placeholders
// with no value are removed.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		value := ""
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		pairs = append(pairs, "{{"+k+"}}", value)
	}
	return leftover.ReplaceAllString(strings.NewReplacer(pairs...).Replace(tmpl), "")
}
