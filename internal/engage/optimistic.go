package engage

// Optimistic tracks an engagement flag through a two-phase toggle: the
// tentative state is shown immediately, then either committed when the
// backend confirms or reverted when it fails. No retry on failure. Owned by
// a single viewing context; not safe for concurrent use.
type Optimistic struct {
	committed bool
	pending   bool
	inFlight  bool
}

func NewOptimistic(initial bool) *Optimistic {
	return &Optimistic{committed: initial, pending: initial}
}

// Apply flips the visible state before the backend call resolves and returns
// the tentative value.
func (o *Optimistic) Apply() bool {
	o.pending = !o.committed
	o.inFlight = true
	return o.pending
}

// Commit accepts the backend's answer as the new settled state.
func (o *Optimistic) Commit(state bool) {
	o.committed = state
	o.pending = state
	o.inFlight = false
}

// Revert restores the last settled state after a failed call and returns it.
func (o *Optimistic) Revert() bool {
	o.pending = o.committed
	o.inFlight = false
	return o.committed
}

// State is the value the caller should display right now.
func (o *Optimistic) State() bool {
	return o.pending
}

// InFlight reports whether a toggle is awaiting confirmation.
func (o *Optimistic) InFlight() bool {
	return o.inFlight
}
