package smartcalc

import "math/big"

// Store holds variable values for a session. Names are case-sensitive. A
// Store only grows; there is no way to remove a variable. It is not safe to
// use a Store concurrently.
type Store struct {
	names map[string]*big.Int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{names: make(map[string]*big.Int)}
}

// Set sets the value of a variable to a copy of value. Returns s for
// chaining.
func (s *Store) Set(name string, value *big.Int) *Store {
	if s.names == nil {
		s.names = make(map[string]*big.Int)
	}
	s.names[name] = new(big.Int).Set(value)
	return s
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the store, then the result is nil. A nil Store has no
// variables.
func (s *Store) Lookup(name string) *big.Int {
	if s == nil {
		return nil
	}
	v := s.names[name]
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

// Len returns the number of variables in the store.
func (s *Store) Len() int {
	return len(s.names)
}

// Names returns the names of all variables in the store, sorted.
func (s *Store) Names() []string {
	r := make([]string, 0, len(s.names))
	for k := range s.names {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}
