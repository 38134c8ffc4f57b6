package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var o Observability
	assert.NotPanics(t, func() {
		o.RecordJob(context.Background(), "analyze-profile", "completed", time.Second)
	})
	assert.NoError(t, o.Shutdown(context.Background()))
}
