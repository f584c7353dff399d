package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Read-through cache lookups by result (hit or miss).",
	}, []string{"result"})

	cacheInvalidatedKeys = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "cache",
		Name:      "invalidated_keys_total",
		Help:      "Cache entries removed by tag invalidation.",
	})

	cacheDiscardedComputes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "cache",
		Name:      "discarded_computes_total",
		Help:      "Computed values not stored because a tag was invalidated while computing.",
	})

	workoutSaveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_log",
		Subsystem: "workouts",
		Name:      "save_duration_seconds",
		Help:      "Duration of workout save transactions by outcome.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	actionResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "actions",
		Name:      "results_total",
		Help:      "Submitted actions by action name and result kind.",
	}, []string{"action", "kind"})
)

func init() {
	prometheus.MustRegister(cacheLookups, cacheInvalidatedKeys, cacheDiscardedComputes, workoutSaveDuration, actionResults)
}

// RecordCacheHit counts a lookup served from the cache.
func RecordCacheHit() { cacheLookups.WithLabelValues("hit").Inc() }

// RecordCacheMiss counts a lookup that had to compute.
func RecordCacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }

// RecordInvalidation counts keys dropped by one invalidation.
func RecordInvalidation(keys int) {
	if keys <= 0 {
		return
	}
	cacheInvalidatedKeys.Add(float64(keys))
}

func RecordDiscardedCompute() { cacheDiscardedComputes.Inc() }

// RecordWorkoutSave observes a save transaction that started at start.
func RecordWorkoutSave(start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	workoutSaveDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

// RecordActionResult counts an orchestrated action outcome. Successful
// actions use the kind "success".
func RecordActionResult(action, kind string) {
	actionResults.WithLabelValues(action, kind).Inc()
}
