package domain

import "errors"

// NegotiationState represents one stage of the login / auto-provisioning workflow.
type NegotiationState string

const (
	StateIdle                  NegotiationState = "idle"
	StateValidating            NegotiationState = "validating"
	StateFormError             NegotiationState = "form_error"
	StateLoginSucceeded        NegotiationState = "login_succeeded"
	StateRedirecting           NegotiationState = "redirecting"
	StateProvisioning          NegotiationState = "provisioning"
	StateProvisioningSucceeded NegotiationState = "provisioning_succeeded"
	StateProvisioningFailed    NegotiationState = "provisioning_failed"
	StateLoginFailed           NegotiationState = "login_failed"
	StateConnectionError       NegotiationState = "connection_error"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[NegotiationState][]NegotiationState{
	StateIdle:                  {StateValidating, StateFormError},
	StateValidating:            {StateLoginSucceeded, StateProvisioning, StateLoginFailed, StateConnectionError},
	StateLoginSucceeded:        {StateRedirecting},
	StateProvisioning:          {StateProvisioningSucceeded, StateProvisioningFailed, StateConnectionError},
	StateProvisioningSucceeded: {StateLoginSucceeded, StateLoginFailed, StateConnectionError},
}

var ErrNegotiationInFlight = errors.New("another authentication attempt is in progress")

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s NegotiationState) CanTransitionTo(next NegotiationState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the workflow stops at this state.
func (s NegotiationState) Terminal() bool {
	switch s {
	case StateFormError, StateRedirecting, StateProvisioningFailed, StateLoginFailed, StateConnectionError:
		return true
	}
	return false
}

// StatusUpdate is a single user-visible status transition emitted while a
// negotiation runs. Updates are ordered and never conflict: each one replaces
// the previous status message.
type StatusUpdate struct {
	State   NegotiationState `json:"state"`
	Message string           `json:"message"`
}
