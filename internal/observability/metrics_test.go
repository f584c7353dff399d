package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))
	RecordCacheHit()
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheLookups.WithLabelValues("hit")))

	invalidated := testutil.ToFloat64(cacheInvalidatedKeys)
	RecordInvalidation(3)
	RecordInvalidation(0)
	assert.Equal(t, invalidated+3, testutil.ToFloat64(cacheInvalidatedKeys))
}

func TestActionAndSaveMetrics(t *testing.T) {
	before := testutil.ToFloat64(actionResults.WithLabelValues("workout_save", "validation_failed"))
	RecordActionResult("workout_save", "validation_failed")
	assert.Equal(t, before+1, testutil.ToFloat64(actionResults.WithLabelValues("workout_save", "validation_failed")))

	RecordWorkoutSave(time.Now(), errors.New("boom"))
	assert.Equal(t, 1, testutil.CollectAndCount(workoutSaveDuration))
}
