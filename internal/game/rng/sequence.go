package rng

// Sequence is a scripted Source for tests. Intn and Float64 consume their
// queued values in order; when a queue is exhausted the zero value is
// returned, which selects the first element of whatever is being sampled.
type Sequence struct {
	Ints   []int
	Floats []float64

	intIdx   int
	floatIdx int
}

// Intn returns the next queued int modulo n, or 0 when the queue is empty.
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	if s.intIdx >= len(s.Ints) {
		return 0
	}
	v := s.Ints[s.intIdx] % n
	s.intIdx++
	return v
}

// Float64 returns the next queued float, or 0.0 when the queue is empty.
func (s *Sequence) Float64() float64 {
	if s.floatIdx >= len(s.Floats) {
		return 0
	}
	v := s.Floats[s.floatIdx]
	s.floatIdx++
	return v
}
