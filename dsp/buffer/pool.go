package buffer

import "sync"

// Pool recycles scratch slices so per-tick and per-block work does not
// allocate in steady state.
type Pool struct {
	pool sync.Pool
}

// Scratch is a pooled slice. Data is valid until the Scratch is returned
// with Put.
type Scratch struct {
	Data []float64
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return &Scratch{} },
		},
	}
}

// Get returns a scratch slice of length n, zeroed. Hand it back with Put.
func (p *Pool) Get(n int) *Scratch {
	s := p.pool.Get().(*Scratch)
	if cap(s.Data) < n {
		s.Data = make([]float64, n)
	}

	s.Data = s.Data[:n]
	clear(s.Data)
	return s
}

// Put returns s to the pool. The caller must not use it afterwards.
func (p *Pool) Put(s *Scratch) {
	if s == nil {
		return
	}

	p.pool.Put(s)
}
