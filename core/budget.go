package core

import "sync"

// StepBudget counts agent executions against a workflow wide maximum.
// If max <= 0, the budget is unlimited.
type StepBudget struct {
	max  int
	used int
	mu   sync.Mutex
}

// NewStepBudget creates a new budget allowing max executions.
func NewStepBudget(max int) *StepBudget {
	return &StepBudget{max: max}
}

// Take consumes one unit. It returns false, without consuming, once the
// budget is exhausted.
func (b *StepBudget) Take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max > 0 && b.used >= b.max {
		return false
	}

	b.used++

	return true
}

// Used returns the number of units consumed so far.
func (b *StepBudget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.used
}

// Remaining returns how many units are left, or -1 when unlimited.
func (b *StepBudget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max <= 0 {
		return -1 // unlimited
	}

	return b.max - b.used
}

// Exhausted reports whether no further unit can be taken.
func (b *StepBudget) Exhausted() bool {
	return b.Remaining() == 0
}
