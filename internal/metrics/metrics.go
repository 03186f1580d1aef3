package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger counters and HTTP instrumentation.

var (
	ProjectsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fundraising",
		Subsystem: "projects",
		Name:      "created_total",
		Help:      "Total projects created",
	})

	ProjectsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fundraising",
		Subsystem: "projects",
		Name:      "closed_total",
		Help:      "Total projects moved from OPEN to CLOSED",
	}, []string{"reason"})

	InvestmentsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fundraising",
		Subsystem: "investments",
		Name:      "accepted_total",
		Help:      "Total investments accepted",
	})

	InvestmentsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fundraising",
		Subsystem: "investments",
		Name:      "rejected_total",
		Help:      "Total investments rejected because the project was missing or not OPEN",
	})

	StakesListed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fundraising",
		Subsystem: "market",
		Name:      "stakes_listed_total",
		Help:      "Total investment records marked for sale",
	})

	StakesTransferred = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fundraising",
		Subsystem: "market",
		Name:      "stakes_transferred_total",
		Help:      "Total investment records transferred to a new investor",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fundraising",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fundraising",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})
)

// Close reasons
const (
	CloseReasonInvestment = "investment"
	CloseReasonReconcile  = "reconcile"
)
