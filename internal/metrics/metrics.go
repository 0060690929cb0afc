package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RPCRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_requests_total",
			Help: "Total number of RPCs handled.",
		},
		[]string{"method", "code"},
	)

	RPCDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpc_duration_seconds",
			Help:    "Duration of RPCs.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"role", "result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"role", "result"},
	)

	BookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_appointments_total",
			Help: "Total number of booking attempts.",
		},
		[]string{"result"},
	)

	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Appointment status changes applied.",
		},
		[]string{"from", "to"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notifications published or delivered.",
		},
		[]string{"stage", "kind", "result"},
	)

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_lookups_total",
			Help: "Directory cache lookups by outcome.",
		},
		[]string{"result"},
	)
)

// MustRegister registers every collector on reg with a constant service label.
func MustRegister(reg prometheus.Registerer, serviceName string) {
	prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg).MustRegister(
		RPCRequestsTotal,
		RPCDurationSeconds,
		RegistrationsTotal,
		LoginsTotal,
		BookingsTotal,
		StatusTransitionsTotal,
		NotificationsTotal,
		CacheLookupsTotal,
	)
}

// Result collapses an error into the label value used by outcome counters.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
