package process

// readyQueue is a FIFO of runnable processes. Round robin rotation is a
// head removal plus a tail push; removal of an arbitrary element, needed
// when SJF or priority selection dispatches from the middle, is a linear
// scan.
type readyQueue struct {
	items []*Process
}

func (q *readyQueue) push(p *Process) {
	q.items = append(q.items, p)
}

// remove deletes the first occurrence of pid and reports whether it was found.
func (q *readyQueue) remove(pid uint32) bool {
	for i, p := range q.items {
		if p.PID == pid {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// ordered returns the queued processes from head to tail.
func (q *readyQueue) ordered() []*Process {
	out := make([]*Process, len(q.items))
	copy(out, q.items)
	return out
}

func (q *readyQueue) len() int {
	return len(q.items)
}
