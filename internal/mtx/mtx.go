package mtx

import "sync"

// Mtx wraps a value behind a sync.Mutex.
type Mtx[T any] struct {
	sync.Mutex
	v T
}

// NewMtx ...
func NewMtx[T any](v T) Mtx[T] {
	return Mtx[T]{v: v}
}

// Val gives direct access to the value, without locking.
func (m *Mtx[T]) Val() *T { return &m.v }

// Get ...
func (m *Mtx[T]) Get() T {
	m.Lock()
	defer m.Unlock()
	return m.v
}

// Set ...
func (m *Mtx[T]) Set(v T) {
	m.Lock()
	defer m.Unlock()
	m.v = v
}

// Swap sets a new value and returns the old one.
func (m *Mtx[T]) Swap(v T) (old T) {
	m.Lock()
	defer m.Unlock()
	old, m.v = m.v, v
	return
}

// With ...
func (m *Mtx[T]) With(clb func(v *T)) {
	_ = m.WithE(func(tx *T) error {
		clb(tx)
		return nil
	})
}

// WithE ...
func (m *Mtx[T]) WithE(clb func(v *T) error) error {
	m.Lock()
	defer m.Unlock()
	return clb(&m.v)
}

// RWMtx wraps a value behind a sync.RWMutex.
type RWMtx[T any] struct {
	sync.RWMutex
	v T
}

// NewRWMtx ...
func NewRWMtx[T any](v T) RWMtx[T] {
	return RWMtx[T]{v: v}
}

// Val gives direct access to the value, without locking.
func (m *RWMtx[T]) Val() *T { return &m.v }

// Get ...
func (m *RWMtx[T]) Get() T {
	m.RLock()
	defer m.RUnlock()
	return m.v
}

// Set ...
func (m *RWMtx[T]) Set(v T) {
	m.Lock()
	defer m.Unlock()
	m.v = v
}

// Swap sets a new value and returns the old one.
func (m *RWMtx[T]) Swap(v T) (old T) {
	m.Lock()
	defer m.Unlock()
	old, m.v = m.v, v
	return
}

// With ...
func (m *RWMtx[T]) With(clb func(v *T)) {
	_ = m.WithE(func(tx *T) error {
		clb(tx)
		return nil
	})
}

// WithE ...
func (m *RWMtx[T]) WithE(clb func(v *T) error) error {
	m.Lock()
	defer m.Unlock()
	return clb(&m.v)
}

// RWith ...
func (m *RWMtx[T]) RWith(clb func(v T)) {
	_ = m.RWithE(func(tx T) error {
		clb(tx)
		return nil
	})
}

// RWithE ...
func (m *RWMtx[T]) RWithE(clb func(v T) error) error {
	m.RLock()
	defer m.RUnlock()
	return clb(m.v)
}
