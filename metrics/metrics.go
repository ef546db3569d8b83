package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lostfound"

// Verification results
const (
	VerifySuccess     = "success"
	VerifyInvalidCode = "invalid_code"
	VerifyBlocked     = "blocked"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ItemsCreated       prometheus.Counter
	Verifications      *prometheus.CounterVec
	Shipments          prometheus.Counter
	NotificationsSent  *prometheus.CounterVec
	SideEffectFailures *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

// New registers the service metrics on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ItemsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_created_total",
			Help:      "The total number of lost items recorded",
		}),
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Collection code verification attempts by result",
		}, []string{"result"}),
		Shipments: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_total",
			Help:      "The total number of items moved to shipped",
		}),
		NotificationsSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Passenger notification emails by result",
		}, []string{"result"}),
		SideEffectFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Failures of secondary steps that did not fail the request",
		}, []string{"operation"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// NewNop returns metrics registered on a throwaway registry
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
