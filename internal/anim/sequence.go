package anim

// Sequence yields frame numbers 1..n in order. A repeating sequence starts
// over at 1 after n and never ends.
type Sequence struct {
	n      int
	next   int
	repeat bool
}

func NewSequence(n int, repeat bool) *Sequence {
	return &Sequence{n: n, next: 1, repeat: repeat}
}

func (s *Sequence) Next() (int, bool) {
	if s.n < 1 {
		return 0, false
	}
	if s.next > s.n {
		if !s.repeat {
			return 0, false
		}
		s.next = 1
	}
	f := s.next
	s.next++
	return f, true
}

func (s *Sequence) Reset() { s.next = 1 }

func (s *Sequence) Len() int { return s.n }
