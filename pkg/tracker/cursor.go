package tracker

// Cursor is a position in a cyclic sequence of fixed length.
// The index always stays in [0, len).
type Cursor struct {
	idx int
	n   int
}

// NewCursor returns a cursor at index 0 over n entries. n must be > 0.
func NewCursor(n int) Cursor {
	if n <= 0 {
		panic("tracker: cursor over empty sequence")
	}
	return Cursor{n: n}
}

// Index returns the current position
func (c Cursor) Index() int {
	return c.idx
}

// Len returns the sequence length
func (c Cursor) Len() int {
	return c.n
}

// Next returns the cursor advanced by one, wrapping from len-1 to 0
func (c Cursor) Next() Cursor {
	c.idx = (c.idx + 1) % c.n
	return c
}
