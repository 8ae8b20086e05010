package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges exposed on /metrics. Registered on the default
// registry at init.
var (
	LeadsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growfin_leads_created_total",
		Help: "Number of leads captured",
	})

	LeadsConverted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growfin_leads_converted_total",
		Help: "Number of leads converted into customers",
	})

	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growfin_applications_submitted_total",
		Help: "Number of loan applications submitted for review",
	})

	LoansCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growfin_loans_created_total",
		Help: "Number of loans disbursed",
	})

	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growfin_payments_recorded_total",
		Help: "Number of collection payments recorded",
	})

	LoansInArrears = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "growfin_loans_in_arrears",
		Help: "Active loans currently behind schedule, refreshed by the arrears monitor",
	})
)
