package env

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrReserved is returned when an assignment names the status variable.
	ErrReserved = errors.New("variable is reserved")
	// ErrMalformed is returned for assignments missing a name or a value.
	ErrMalformed = errors.New("malformed assignment")
	// ErrCapacity is returned when the store is full.
	ErrCapacity = errors.New("variable capacity exceeded")
)

// Variable is a single named value held by the Store.
type Variable struct {
	Name  string
	Value string
}

// Store holds user variables plus the reserved status variable.
//
// The status variable is held in its own field rather than among the user
// variables; it always exists and counts towards the capacity.
type Store struct {
	status   Variable
	vars     []Variable
	capacity int
}

// NewStore creates a store whose status variable is called statusName and
// initialized to "0". Capacity counts the status variable, values below one
// are raised to one.
func NewStore(statusName string, capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}

	return &Store{
		status:   Variable{Name: statusName, Value: "0"},
		capacity: capacity,
	}
}

// StatusName returns the name of the reserved status variable.
func (s *Store) StatusName() string {
	return s.status.Name
}

// Status returns the decimal exit status of the last command.
func (s *Store) Status() string {
	return s.status.Value
}

// SetStatus records the exit status of the last command.
func (s *Store) SetStatus(code int) {
	s.status.Value = strconv.Itoa(code)
}

// Lookup retrieves the value of the variable named by name. The status
// variable resolves to the last exit status.
func (s *Store) Lookup(name string) (string, bool) {
	if name == s.status.Name {
		return s.status.Value, true
	}

	for _, v := range s.vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Get returns the value of name, empty if it is not set. To distinguish
// between an empty value and an unset one, use Lookup.
func (s *Store) Get(name string) string {
	val, _ := s.Lookup(name)
	return val
}

// Set assigns a user variable.
//
// It refuses the status variable, empty names and empty values. An existing
// variable is updated in place, a new one is appended if there's room.
func (s *Store) Set(name, value string) error {
	switch {
	case name == s.status.Name:
		return fmt.Errorf("%s: %w", name, ErrReserved)
	case name == "" || value == "":
		return fmt.Errorf("%q=%q: %w", name, value, ErrMalformed)
	}

	for i := range s.vars {
		if s.vars[i].Name == name {
			s.vars[i].Value = value
			return nil
		}
	}

	if s.Len() >= s.capacity {
		return fmt.Errorf("%s: %w (%d)", name, ErrCapacity, s.capacity)
	}
	s.vars = append(s.vars, Variable{Name: name, Value: value})
	return nil
}

// Len returns the number of variables, the status variable included.
func (s *Store) Len() int {
	return len(s.vars) + 1
}

// Variables returns a copy of the variables in insertion order, starting
// with the status variable.
func (s *Store) Variables() []Variable {
	out := make([]Variable, 0, s.Len())
	out = append(out, s.status)
	return append(out, s.vars...)
}

// Environ returns the variables in the form "key=value".
func (s *Store) Environ() []string {
	var env []string
	for _, v := range s.Variables() {
		env = append(env, fmt.Sprintf("%s=%s", v.Name, v.Value))
	}
	return env
}

// Clear drops every user variable and resets the status to "0".
func (s *Store) Clear() {
	s.vars = nil
	s.status.Value = "0"
}
