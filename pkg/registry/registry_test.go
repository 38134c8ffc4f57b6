// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applycounselloraction "studyabroad-workers/internal/workers/counsellor/apply-counsellor-action"
	counsellorchat "studyabroad-workers/internal/workers/counsellor/counsellor-chat"
	counsellorgreeting "studyabroad-workers/internal/workers/counsellor/counsellor-greeting"
	explainuniversityfit "studyabroad-workers/internal/workers/discovery/explain-university-fit"
	filteruniversities "studyabroad-workers/internal/workers/discovery/filter-universities"
	recommenduniversities "studyabroad-workers/internal/workers/discovery/recommend-universities"
	sendnotification "studyabroad-workers/internal/workers/notification/send-notification"
	analyzeprofile "studyabroad-workers/internal/workers/profile/analyze-profile"
)

func TestActivities_CoverEveryWorker(t *testing.T) {
	taskTypes := []string{
		analyzeprofile.TaskType,
		recommenduniversities.TaskType,
		explainuniversityfit.TaskType,
		filteruniversities.TaskType,
		counsellorchat.TaskType,
		counsellorgreeting.TaskType,
		applycounselloraction.TaskType,
		sendnotification.TaskType,
	}
	assert.Empty(t, Unknown(taskTypes))
	assert.Len(t, Activities(), len(taskTypes))
}

func TestActivities_Ordered(t *testing.T) {
	acts := Activities()
	require.NotEmpty(t, acts)
	assert.Equal(t, "counsellor", acts[0].Category)
	assert.Equal(t, "apply-counsellor-action", acts[0].TaskType)
	assert.Equal(t, "analyze-profile", acts[len(acts)-1].TaskType)
}

func TestLookupAndUnknown(t *testing.T) {
	a, ok := Lookup("explain-university-fit")
	require.True(t, ok)
	assert.Contains(t, a.ErrorCodes, "UNIVERSITY_NOT_FOUND")

	assert.Equal(t, []string{"franchise-search", "recomend-universities"},
		Unknown([]string{"recomend-universities", "analyze-profile", "franchise-search"}))
}
