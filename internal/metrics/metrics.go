package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homefix",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "homefix",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created.",
		},
	)

	bookingsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "homefix",
			Name:      "bookings_completed_total",
			Help:      "Bookings marked complete by the user.",
		},
	)

	bookingsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "homefix",
			Name:      "bookings_pruned_total",
			Help:      "Past-dated bookings dropped on cache load.",
		},
	)

	catalogFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "homefix",
			Name:      "catalog_fallbacks_total",
			Help:      "Service list requests answered from the static fallback.",
		},
	)

	cacheFailovers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "homefix",
			Name:      "cache_failovers_total",
			Help:      "Times the primary cache backend was marked down.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			bookingsCreated,
			bookingsCompleted,
			bookingsPruned,
			catalogFallbacks,
			cacheFailovers,
		)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncBookingCreated()   { bookingsCreated.Inc() }
func IncBookingCompleted() { bookingsCompleted.Inc() }

// AddBookingsPruned records how many past bookings a single load dropped.
func AddBookingsPruned(n int) {
	if n > 0 {
		bookingsPruned.Add(float64(n))
	}
}

func IncCatalogFallback() { catalogFallbacks.Inc() }
func IncCacheFailover()   { cacheFailovers.Inc() }
