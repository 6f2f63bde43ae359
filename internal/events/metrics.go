package events

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "dagjobs"

// Metrics records job notifications as Prometheus metrics.
type Metrics struct {
	// Launched counts launch attempts, including ones that later fail.
	Launched prometheus.Counter
	// Completed counts jobs that cached a result.
	Completed prometheus.Counter
	// Failed counts jobs whose work executor returned an error.
	Failed prometheus.Counter
	// BaseValue observes the values produced by the work executor.
	BaseValue prometheus.Histogram
}

// NewMetrics creates the job metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Launched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_launched_total",
			Help:      "Total number of job launches.",
		}),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_completed_total",
			Help:      "Total number of jobs that produced a result.",
		}),
		Failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_failed_total",
			Help:      "Total number of jobs whose execution failed.",
		}),
		BaseValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "job_base_value",
			Help:      "Base values produced by the work executor.",
			Buckets:   prometheus.LinearBuckets(10, 10, 9),
		}),
	}
	for _, c := range []prometheus.Collector{m.Launched, m.Completed, m.Failed, m.BaseValue} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register job metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) JobLaunched(context.Context, uint64) {
	m.Launched.Inc()
}

func (m *Metrics) JobGenerated(_ context.Context, _ uint64, base int) {
	m.BaseValue.Observe(float64(base))
}

func (m *Metrics) JobCompleted(context.Context, uint64, int) {
	m.Completed.Inc()
}

func (m *Metrics) JobFailed(context.Context, uint64, error) {
	m.Failed.Inc()
}
