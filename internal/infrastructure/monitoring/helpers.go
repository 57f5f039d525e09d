package monitoring

// Every helper is nil-safe so components can carry an optional *Metrics
// without guarding each call site.

// RecordCycle counts one scheduling cycle outcome.
func (m *Metrics) RecordCycle(event string) {
	if m == nil {
		return
	}
	m.CycleEvents.WithLabelValues(event).Inc()
}

// RecordPreemption counts one quantum preemption.
func (m *Metrics) RecordPreemption() {
	if m == nil {
		return
	}
	m.Preemptions.Inc()
}

// RecordProcessCreated counts one process admission.
func (m *Metrics) RecordProcessCreated() {
	if m == nil {
		return
	}
	m.ProcessesCreated.Inc()
}

// RecordProcessTerminated counts one process termination.
func (m *Metrics) RecordProcessTerminated() {
	if m == nil {
		return
	}
	m.ProcessesTerminated.Inc()
}

// SetReadyQueueLength tracks the ready queue size.
func (m *Metrics) SetReadyQueueLength(n int) {
	if m == nil {
		return
	}
	m.ReadyQueueLength.Set(float64(n))
}

// SetResourceState tracks free memory and CPU occupancy.
func (m *Metrics) SetResourceState(memoryFreeMB int, cpuFree bool) {
	if m == nil {
		return
	}
	m.MemoryFreeMB.Set(float64(memoryFreeMB))
	if cpuFree {
		m.CPUBusy.Set(0)
	} else {
		m.CPUBusy.Set(1)
	}
}

// RecordMessageSent counts one delivered message.
func (m *Metrics) RecordMessageSent() {
	if m == nil {
		return
	}
	m.MessagesSent.Inc()
}

// RecordProduced counts one accepted item and tracks the buffer size.
func (m *Metrics) RecordProduced(buffered int) {
	if m == nil {
		return
	}
	m.ItemsProduced.Inc()
	m.BufferItems.Set(float64(buffered))
}

// RecordConsumed counts one removed item and tracks the buffer size.
func (m *Metrics) RecordConsumed(buffered int) {
	if m == nil {
		return
	}
	m.ItemsConsumed.Inc()
	m.BufferItems.Set(float64(buffered))
}
