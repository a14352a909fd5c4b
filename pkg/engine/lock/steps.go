package lock

import (
	"github.com/zyedidia/generic/queue"
)

type step struct {
	delay  float64
	action func()
}

// StepQueue runs actions in order, each after its delay has elapsed since the
// previous one ran. Time only moves through Advance, so a lock stays
// deterministic under a fixed tick rate.
type StepQueue struct {
	steps   *queue.Queue[step]
	pending int
	elapsed float64
}

// NewStepQueue creates an empty step queue
func NewStepQueue() *StepQueue {
	return &StepQueue{steps: queue.New[step]()}
}

// Schedule appends an action that runs delay seconds after the step before it.
func (q *StepQueue) Schedule(delay float64, action func()) {
	if delay < 0 {
		delay = 0
	}
	q.steps.Enqueue(step{delay: delay, action: action})
	q.pending++
}

// Advance moves time forward by dt and runs every step that became due.
// Actions may schedule further steps; leftover time counts toward them.
func (q *StepQueue) Advance(dt float64) {
	if q.pending == 0 {
		q.elapsed = 0
		return
	}
	q.elapsed += dt
	for q.pending > 0 {
		next := q.steps.Peek()
		if q.elapsed < next.delay {
			return
		}
		q.elapsed -= next.delay
		q.steps.Dequeue()
		q.pending--
		if next.action != nil {
			next.action()
		}
	}
	q.elapsed = 0
}

// Clear drops every pending step.
func (q *StepQueue) Clear() {
	q.steps = queue.New[step]()
	q.pending = 0
	q.elapsed = 0
}

// Pending returns the number of steps not yet run.
func (q *StepQueue) Pending() int {
	return q.pending
}

// Empty reports whether no step is pending.
func (q *StepQueue) Empty() bool {
	return q.pending == 0
}
