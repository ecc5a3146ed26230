package tournament

import "fmt"

// StateError is returned when an operation is not allowed right now
type StateError struct {
	Op     string
	Status Status
	Reason string
}

func (s *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s: %s", s.Op, s.Status, s.Reason)
}

func (t *Tournament) newStateError(op string, format string, a ...interface{}) *StateError {
	return &StateError{
		Op:     op,
		Status: t.status,
		Reason: fmt.Sprintf(format, a...),
	}
}
