package metrics

import (
	"net/http"
	"strconv"
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "consultation"

// Conflict reasons
const (
	ReasonSlotNotOffered = shared.ConflictSlotNotOffered
	ReasonSlotBooked     = shared.ConflictSlotBooked
	ReasonLockContention = shared.ConflictLockContention
	ReasonUniqueIndex    = shared.ConflictUniqueIndex
)

type Metrics struct {
	registry        *prometheus.Registry
	bookingsCreated prometheus.Counter
	conflicts       *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	slotsCreated    prometheus.Counter
	httpDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings created by players.",
		}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected because the slot was unavailable.",
		}, []string{"reason"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions by target status.",
		}, []string{"to"}),
		slotsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slots_created_total",
			Help:      "Slot rows created from availability rules.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bookingsCreated,
		m.conflicts,
		m.transitions,
		m.slotsCreated,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) BookingCreated() {
	m.bookingsCreated.Inc()
}

func (m *Metrics) BookingConflict(reason string) {
	m.conflicts.WithLabelValues(reason).Inc()
}

func (m *Metrics) BookingTransition(to booking.Status) {
	m.transitions.WithLabelValues(to.String()).Inc()
}

func (m *Metrics) SlotsCreated(n int) {
	if n > 0 {
		m.slotsCreated.Add(float64(n))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware observes request latency labelled by the matched route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
