package audio

// Relay is a simulated relay coil. Its contact position is the square wave.
type Relay struct {
	high   bool
	driven bool
	edges  uint64
}

// SetHigh closes the relay
func (r *Relay) SetHigh() {
	if !r.high {
		r.edges++
	}
	r.high = true
	r.driven = true
}

// SetLow opens the relay
func (r *Relay) SetLow() {
	if r.high {
		r.edges++
	}
	r.high = false
	r.driven = true
}

// Level reports whether the relay is closed
func (r *Relay) Level() bool {
	return r.high
}

// Edges returns the number of contact changes so far
func (r *Relay) Edges() uint64 {
	return r.edges
}

// Sample returns the relay output as a square wave sample (-1.0 or 1.0).
// An undriven relay is silent.
func (r *Relay) Sample() float64 {
	if !r.driven {
		return 0
	}
	if r.high {
		return 1.0
	}
	return -1.0
}
