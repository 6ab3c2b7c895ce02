// File: observability/prometheus/exporter.go
// Package prometheus exports scheduler runtime statistics.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package prometheus

import (
	"github.com/momentics/hioload-sched/scheduler"

	prom "github.com/prometheus/client_golang/prometheus"
)

// StatsProvider supplies point-in-time scheduler statistics.
type StatsProvider interface {
	Stats() scheduler.Stats
}

// Exporter is a prometheus.Collector over a scheduler's Stats snapshot.
type Exporter struct {
	provider StatsProvider

	tasksSubmitted *prom.Desc
	tasksCompleted *prom.Desc
	tasksInFlight  *prom.Desc
	steals         *prom.Desc
	busySeconds    *prom.Desc
	workers        *prom.Desc
	fibersCreated  *prom.Desc
	fibersIdle     *prom.Desc
}

// NewExporter creates a collector for the given scheduler and registers
// it with reg (DefaultRegisterer when nil).
func NewExporter(namespace string, provider StatsProvider, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = "hioload_sched"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	e := &Exporter{
		provider: provider,
		tasksSubmitted: prom.NewDesc(prom.BuildFQName(namespace, "", "tasks_submitted_total"),
			"Total number of tasks submitted.", nil, nil),
		tasksCompleted: prom.NewDesc(prom.BuildFQName(namespace, "", "tasks_completed_total"),
			"Total number of tasks completed.", nil, nil),
		tasksInFlight: prom.NewDesc(prom.BuildFQName(namespace, "", "tasks_in_flight"),
			"Tasks submitted but not yet completed.", nil, nil),
		steals: prom.NewDesc(prom.BuildFQName(namespace, "", "steals_total"),
			"Total number of tasks stolen between workers.", nil, nil),
		busySeconds: prom.NewDesc(prom.BuildFQName(namespace, "", "busy_seconds_total"),
			"Total task execution time across all workers.", nil, nil),
		workers: prom.NewDesc(prom.BuildFQName(namespace, "", "workers"),
			"Number of worker threads.", nil, nil),
		fibersCreated: prom.NewDesc(prom.BuildFQName(namespace, "", "fibers_created"),
			"Fibers created so far, bounded by the pool cap.", nil, nil),
		fibersIdle: prom.NewDesc(prom.BuildFQName(namespace, "", "fibers_idle"),
			"Fibers currently parked in the pool.", nil, nil),
	}
	if err := reg.Register(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prom.Desc) {
	ch <- e.tasksSubmitted
	ch <- e.tasksCompleted
	ch <- e.tasksInFlight
	ch <- e.steals
	ch <- e.busySeconds
	ch <- e.workers
	ch <- e.fibersCreated
	ch <- e.fibersIdle
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prom.Metric) {
	st := e.provider.Stats()
	ch <- prom.MustNewConstMetric(e.tasksSubmitted, prom.CounterValue, float64(st.TasksSubmitted))
	ch <- prom.MustNewConstMetric(e.tasksCompleted, prom.CounterValue, float64(st.TasksCompleted))
	ch <- prom.MustNewConstMetric(e.tasksInFlight, prom.GaugeValue, float64(st.TasksInFlight))
	ch <- prom.MustNewConstMetric(e.steals, prom.CounterValue, float64(st.Steals))
	ch <- prom.MustNewConstMetric(e.busySeconds, prom.CounterValue, float64(st.BusyNanos)/1e9)
	ch <- prom.MustNewConstMetric(e.workers, prom.GaugeValue, float64(st.Workers))
	ch <- prom.MustNewConstMetric(e.fibersCreated, prom.GaugeValue, float64(st.FibersCreated))
	ch <- prom.MustNewConstMetric(e.fibersIdle, prom.GaugeValue, float64(st.FibersIdle))
}

var _ prom.Collector = (*Exporter)(nil)
