package payments

import (
	"fmt"
	"sync"
)

type SessionState string

const (
	StateIdle            SessionState = "idle"
	StateMethodSelected  SessionState = "method_selected"
	StateAwaitingPayment SessionState = "awaiting_payment"
	StateConfirmed       SessionState = "confirmed"
	StateFailed          SessionState = "failed"
	StateCancelled       SessionState = "cancelled"
)

type InvalidTransitionError struct {
	From SessionState
	To   SessionState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid checkout transition %s -> %s", e.From, e.To)
}

// Session tracks one checkout attempt through
// idle -> method_selected -> awaiting_payment -> confirmed/failed/cancelled.
// Confirmed is terminal; failed and cancelled return to method_selected so
// the customer can retry. At most one confirmation source is live at a
// time: selecting a new method closes the previous one, which tears down
// any pending dialog or timer driven off it.
type Session struct {
	mu     sync.Mutex
	state  SessionState
	method Method
	source ConfirmationSource
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Method() Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

func (s *Session) SelectMethod(method Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle, StateMethodSelected, StateAwaitingPayment, StateFailed, StateCancelled:
	default:
		return &InvalidTransitionError{From: s.state, To: StateMethodSelected}
	}

	s.discardSourceLocked()
	s.method = method
	s.state = StateMethodSelected
	return nil
}

// BeginPayment arms the confirmation source for the selected method.
func (s *Session) BeginPayment(source ConfirmationSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateMethodSelected {
		return &InvalidTransitionError{From: s.state, To: StateAwaitingPayment}
	}

	s.source = source
	s.state = StateAwaitingPayment
	return nil
}

func (s *Session) Confirm() error {
	return s.finish(StateConfirmed)
}

func (s *Session) Fail() error {
	return s.finish(StateFailed)
}

// Cancel handles the gateway dismiss callback: the order stays pending and
// the session returns control to method selection.
func (s *Session) Cancel() error {
	return s.finish(StateCancelled)
}

func (s *Session) finish(to SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPayment {
		return &InvalidTransitionError{From: s.state, To: to}
	}

	s.discardSourceLocked()
	s.state = to
	return nil
}

// Teardown discards any pending confirmation, for when the customer leaves
// the checkout flow entirely.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardSourceLocked()
}

func (s *Session) discardSourceLocked() {
	if s.source != nil {
		s.source.Close()
		s.source = nil
	}
}
