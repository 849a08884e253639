package tracking

import "github.com/prometheus/client_golang/prometheus"

var (
	workoutsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workoutmap",
		Subsystem: "tracking",
		Name:      "workouts_recorded_total",
		Help:      "Workouts created from accepted form submissions.",
	}, []string{"kind"})
	submissionsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workoutmap",
		Subsystem: "tracking",
		Name:      "submissions_rejected_total",
		Help:      "Form submissions rejected before a workout was created.",
	}, []string{"reason"})
	storageFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workoutmap",
		Subsystem: "tracking",
		Name:      "storage_failures_total",
		Help:      "Failed reads and writes of the stored workout list.",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(workoutsRecorded, submissionsRejected, storageFailures)
}
