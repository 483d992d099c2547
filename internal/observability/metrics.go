package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	activitiesAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "horario",
		Subsystem: "schedule",
		Name:      "activities_added_total",
		Help:      "Number of activities accepted into a schedule.",
	})
	rangeRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "horario",
		Subsystem: "schedule",
		Name:      "invalid_range_rejections_total",
		Help:      "Number of submissions rejected because the end time was not after the start.",
	})
	gridsRendered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "horario",
		Subsystem: "schedule",
		Name:      "grids_rendered_total",
		Help:      "Number of grid view derivations served.",
	})
	exportsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "horario",
		Subsystem: "schedule",
		Name:      "exports_served_total",
		Help:      "Number of horario.json downloads served.",
	})
)

func init() {
	prometheus.MustRegister(activitiesAdded, rangeRejections, gridsRendered, exportsServed)
}

// RecordActivityAdded counts one accepted activity.
func RecordActivityAdded() {
	activitiesAdded.Inc()
}

// RecordRangeRejection counts one end-before-start rejection.
func RecordRangeRejection() {
	rangeRejections.Inc()
}

// RecordGridRendered counts one served grid derivation.
func RecordGridRendered() {
	gridsRendered.Inc()
}

// RecordExportServed counts one schedule download.
func RecordExportServed() {
	exportsServed.Inc()
}
