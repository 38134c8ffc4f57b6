// internal/models/state.go
package models

type TaskCategory string

const (
	TaskExams        TaskCategory = "Exams"
	TaskDocuments    TaskCategory = "Documents"
	TaskProfile      TaskCategory = "Profile"
	TaskApplications TaskCategory = "Applications"
)

// Valid reports whether c is one of the four known task categories.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskExams, TaskDocuments, TaskProfile, TaskApplications:
		return true
	}
	return false
}

type ToDoItem struct {
	ID        string       `json:"id"`
	Task      string       `json:"task"`
	Completed bool         `json:"completed"`
	Category  TaskCategory `json:"category"`
}

// AppStage tracks how far the applicant has progressed.
type AppStage int

const (
	StageBuildingProfile AppStage = iota
	StageDiscoveringUniversities
	StageFinalizingUniversities
	StagePreparingApplications
)

// Valid reports whether s is one of the four stages.
func (s AppStage) Valid() bool {
	return s >= StageBuildingProfile && s <= StagePreparingApplications
}

func (s AppStage) String() string {
	switch s {
	case StageBuildingProfile:
		return "Building Profile"
	case StageDiscoveringUniversities:
		return "Discovering Universities"
	case StageFinalizingUniversities:
		return "Finalizing Universities"
	case StagePreparingApplications:
		return "Preparing Applications"
	default:
		return "Unknown"
	}
}

// AppState is the per-user application state owned by the profile store.
type AppState struct {
	UserID                  string      `json:"userId"`
	Profile                 UserProfile `json:"profile"`
	ShortlistedUniversities []string    `json:"shortlistedUniversities"`
	LockedUniversityIDs     []string    `json:"lockedUniversityIds"`
	ToDos                   []ToDoItem  `json:"toDos"`
	CurrentStage            AppStage    `json:"currentStage"`
}

func (s AppState) IsShortlisted(universityID string) bool {
	return contains(s.ShortlistedUniversities, universityID)
}

func (s AppState) IsLocked(universityID string) bool {
	return contains(s.LockedUniversityIDs, universityID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
