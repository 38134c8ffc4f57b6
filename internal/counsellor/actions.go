// Package counsellor is the AI study-abroad counsellor: it builds the model's
// system instruction, declares the functions the model may call, turns model
// replies into typed actions and applies those actions to a user's state.
package counsellor

import (
	"fmt"

	"google.golang.org/genai"

	"studyabroad-workers/internal/models"
)

type ActionType string

const (
	ActionShortlist     ActionType = "shortlist"
	ActionLock          ActionType = "lock"
	ActionAddTask       ActionType = "addTask"
	ActionAutoShortlist ActionType = "autoShortlist"
	ActionCreatePlan    ActionType = "createPlan"
	ActionCreateTasks   ActionType = "createTasks"
	ActionProfileGaps   ActionType = "profileGaps"
	ActionAnalyze       ActionType = "analyzeProfile"
)

// Action is one state change requested by the counsellor or offered to the
// user as a quick action.
type Action struct {
	Type         ActionType          `json:"type"`
	Label        string              `json:"label,omitempty"`
	UniversityID string              `json:"universityId,omitempty"`
	Task         string              `json:"task,omitempty"`
	Category     models.TaskCategory `json:"category,omitempty"`
}

// Reply is the counsellor's answer to one user message.
type Reply struct {
	Text    string   `json:"text"`
	Actions []Action `json:"actions"`
}

const (
	fnShortlist = "shortlistUniversity"
	fnLock      = "lockUniversity"
	fnAddTask   = "addTask"
)

// Tools declares the functions the model may call.
func Tools() []*genai.Tool {
	universityID := &genai.Schema{Type: genai.TypeString, Description: "The ID of the university."}
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        fnShortlist,
				Description: "Add a university to the user's shortlist.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"universityId": universityID},
					Required:   []string{"universityId"},
				},
			},
			{
				Name:        fnLock,
				Description: "Commit to a shortlisted university for the application phase.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"universityId": universityID},
					Required:   []string{"universityId"},
				},
			},
			{
				Name:        fnAddTask,
				Description: "Add a new task to the user's to-do list.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"task": {Type: genai.TypeString, Description: "The task description."},
						"category": {
							Type: genai.TypeString,
							Enum: []string{
								string(models.TaskProfile), string(models.TaskExams),
								string(models.TaskApplications), string(models.TaskDocuments),
							},
						},
					},
					Required: []string{"task", "category"},
				},
			},
		},
	}}
}

// ActionsFromCalls converts model function calls to actions. Calls to
// undeclared functions or with missing arguments are reported as errors and
// skipped.
func ActionsFromCalls(calls []*genai.FunctionCall) ([]Action, []error) {
	actions := []Action{}
	var errs []error
	for _, call := range calls {
		if call == nil {
			continue
		}
		switch call.Name {
		case fnShortlist, fnLock:
			id := stringArg(call.Args, "universityId")
			if id == "" {
				errs = append(errs, fmt.Errorf("%s: missing universityId", call.Name))
				continue
			}
			typ := ActionShortlist
			if call.Name == fnLock {
				typ = ActionLock
			}
			actions = append(actions, Action{Type: typ, UniversityID: id})
		case fnAddTask:
			task := stringArg(call.Args, "task")
			if task == "" {
				errs = append(errs, fmt.Errorf("%s: missing task", call.Name))
				continue
			}
			actions = append(actions, Action{
				Type:     ActionAddTask,
				Task:     task,
				Category: models.TaskCategory(stringArg(call.Args, "category")),
			})
		default:
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownAction, call.Name))
		}
	}
	return actions, errs
}

func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case float64:
		// Some models send numeric ids unquoted.
		return fmt.Sprintf("%g", v)
	}
	return ""
}
