package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks desk activity for the attendee module.
type Metrics struct {
	CheckIns          prometheus.Counter
	LunchesCollected  prometheus.Counter
	KitsCollected     prometheus.Counter
	AttendeesImported prometheus.Counter
	ImportRowsSkipped *prometheus.CounterVec
	BackupsCreated    *prometheus.CounterVec
	Rejections        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New registers the attendee metrics with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the attendee metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CheckIns: f.NewCounter(prometheus.CounterOpts{
			Name: "eventdesk_check_ins_total",
			Help: "Total number of attendees checked in",
		}),
		LunchesCollected: f.NewCounter(prometheus.CounterOpts{
			Name: "eventdesk_lunches_collected_total",
			Help: "Total number of lunches handed out",
		}),
		KitsCollected: f.NewCounter(prometheus.CounterOpts{
			Name: "eventdesk_kits_collected_total",
			Help: "Total number of kits handed out",
		}),
		AttendeesImported: f.NewCounter(prometheus.CounterOpts{
			Name: "eventdesk_attendees_imported_total",
			Help: "Total number of attendees added by import or registration",
		}),
		ImportRowsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventdesk_import_rows_skipped_total",
			Help: "Import rows not added, by reason (duplicate, invalid)",
		}, []string{"reason"}),
		BackupsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventdesk_backups_created_total",
			Help: "Snapshot backups written, by trigger (auto, manual)",
		}, []string{"trigger"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventdesk_rejections_total",
			Help: "Desk operations refused, by operation and error code",
		}, []string{"operation", "code"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eventdesk_operation_duration_seconds",
			Help:    "Duration of attendee operations including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementCheckIn() {
	m.CheckIns.Inc()
}

func (m *Metrics) IncrementLunch() {
	m.LunchesCollected.Inc()
}

func (m *Metrics) IncrementKit() {
	m.KitsCollected.Inc()
}

// RecordImport records the outcome counts of one import.
func (m *Metrics) RecordImport(added, skipped, invalid int) {
	m.AttendeesImported.Add(float64(added))
	m.ImportRowsSkipped.WithLabelValues("duplicate").Add(float64(skipped))
	m.ImportRowsSkipped.WithLabelValues("invalid").Add(float64(invalid))
}

func (m *Metrics) IncrementBackup(manual bool) {
	trigger := "auto"
	if manual {
		trigger = "manual"
	}
	m.BackupsCreated.WithLabelValues(trigger).Inc()
}

// IncrementRejection records an operation refused with an error code.
func (m *Metrics) IncrementRejection(operation, code string) {
	m.Rejections.WithLabelValues(operation, code).Inc()
}

// ObserveOperation records how long operation took.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
