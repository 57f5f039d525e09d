// Package monitoring exposes Prometheus metrics for the simulation:
// scheduling events, process lifecycle counts, resource gauges, and
// producer-consumer activity.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors. Each Metrics value registers
// its collectors on its own registry, so independent simulations (and
// tests) never collide.
type Metrics struct {
	registry *prometheus.Registry

	// Scheduler metrics
	CycleEvents *prometheus.CounterVec
	Preemptions prometheus.Counter

	// Process lifecycle metrics
	ProcessesCreated    prometheus.Counter
	ProcessesTerminated prometheus.Counter
	ReadyQueueLength    prometheus.Gauge

	// Resource metrics
	MemoryFreeMB prometheus.Gauge
	CPUBusy      prometheus.Gauge

	// IPC metrics
	MessagesSent prometheus.Counter

	// Producer-consumer metrics
	BufferItems   prometheus.Gauge
	ItemsProduced prometheus.Counter
	ItemsConsumed prometheus.Counter
}

// NewMetrics creates a metrics collector backed by a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		CycleEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sim_scheduler_cycle_events_total",
				Help: "Scheduling cycle outcomes by event kind",
			},
			[]string{"event"},
		),
		Preemptions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sim_scheduler_preemptions_total",
				Help: "Round robin quantum preemptions",
			},
		),
		ProcessesCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sim_processes_created_total",
				Help: "Processes admitted to the process table",
			},
		),
		ProcessesTerminated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sim_processes_terminated_total",
				Help: "Processes terminated, by completion or explicitly",
			},
		),
		ReadyQueueLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sim_ready_queue_length",
				Help: "Processes currently queued as ready",
			},
		),
		MemoryFreeMB: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sim_memory_free_mb",
				Help: "Unassigned memory in the resource pool",
			},
		),
		CPUBusy: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sim_cpu_busy",
				Help: "1 while the CPU unit is held, 0 while free",
			},
		),
		MessagesSent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sim_ipc_messages_sent_total",
				Help: "Messages delivered to mailboxes",
			},
		),
		BufferItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sim_buffer_items",
				Help: "Items currently queued in the bounded buffer",
			},
		),
		ItemsProduced: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sim_buffer_items_produced_total",
				Help: "Items accepted by the bounded buffer",
			},
		),
		ItemsConsumed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sim_buffer_items_consumed_total",
				Help: "Items removed from the bounded buffer",
			},
		),
	}
}

// Registry returns the Prometheus registry holding the collectors, for
// exposition by a driver.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
