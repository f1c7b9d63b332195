package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

const (
	defaultRedirectDelay = 1 * time.Second
	defaultReloginDelay  = 2 * time.Second

	// Both dashboards resolve to the same destination regardless of role.
	redirectDestination = "/dashboard"
)

// User-facing status messages, one per workflow stage.
const (
	msgFormIncomplete    = "please complete both fields"
	msgValidating        = "verifying credentials..."
	msgLoginSucceeded    = "login successful, redirecting..."
	msgProvisioning      = "user not found, creating an account automatically..."
	msgProvisioned       = "account created, signing in..."
	msgWelcome           = "welcome, redirecting to the dashboard..."
	msgLoginFailed       = "invalid credentials"
	msgIncompleteLogin   = "login response was incomplete"
	msgSecondLoginFailed = "could not sign in after creating the account"
	msgProvisionFailed   = "could not create the account automatically"
	msgConnectionError   = "could not reach the server, check that it is running"
)

// SessionNegotiator owns the login -> auto-register -> re-login workflow.
// Only one negotiation runs at a time; a submit that overlaps a pending
// delayed stage fails fast with domain.ErrNegotiationInFlight.
type SessionNegotiator struct {
	auth  ports.AuthBackend
	store ports.SessionStore

	redirectDelay time.Duration
	reloginDelay  time.Duration

	inFlight atomic.Bool
	log      zerolog.Logger
}

func NewSessionNegotiator(auth ports.AuthBackend, store ports.SessionStore, redirectDelay, reloginDelay time.Duration, log zerolog.Logger) *SessionNegotiator {
	if redirectDelay <= 0 {
		redirectDelay = defaultRedirectDelay
	}
	if reloginDelay <= 0 {
		reloginDelay = defaultReloginDelay
	}
	return &SessionNegotiator{
		auth:          auth,
		store:         store,
		redirectDelay: redirectDelay,
		reloginDelay:  reloginDelay,
		log:           log,
	}
}

// Negotiate runs the workflow to completion and returns the terminal outcome.
// Terminal failure states are results, not errors; an error is returned only
// for gateway-side faults (double submit, cancelled context, store failure).
// On every terminal failure the stored session is left untouched and the
// credentials are discarded with the stack frame.
func (n *SessionNegotiator) Negotiate(ctx context.Context, creds domain.Credentials) (*ports.NegotiationResult, error) {
	if !n.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrNegotiationInFlight
	}
	defer n.inFlight.Store(false)

	rec := newTransitionRecorder(n.log)

	creds = creds.Trimmed()
	if !creds.Complete() {
		return rec.finish(domain.StateFormError, msgFormIncomplete), nil
	}

	rec.to(domain.StateValidating, msgValidating)

	login, err := n.auth.Login(ctx, creds.Email, creds.Password)
	switch {
	case err == nil:
		return n.complete(ctx, rec, login, msgLoginSucceeded)
	case unauthorized(err):
		return n.provision(ctx, rec, creds)
	default:
		return n.terminalFailure(rec, domain.StateLoginFailed, err, msgLoginFailed), nil
	}
}

// provision creates an account for the unrecognized credentials, then issues
// exactly one second login attempt with the original credentials.
func (n *SessionNegotiator) provision(ctx context.Context, rec *transitionRecorder, creds domain.Credentials) (*ports.NegotiationResult, error) {
	rec.to(domain.StateProvisioning, msgProvisioning)

	// The auto-provisioning path can never create an employee account.
	err := n.auth.Register(ctx, creds.Email, creds.Password, creds.DerivedUsername(), domain.RoleCustomer)
	if err != nil {
		return n.terminalFailure(rec, domain.StateProvisioningFailed, err, msgProvisionFailed), nil
	}

	rec.to(domain.StateProvisioningSucceeded, msgProvisioned)
	n.log.Info().Str("username", creds.DerivedUsername()).Msg("account auto-provisioned")

	if err := n.wait(ctx, n.reloginDelay); err != nil {
		return nil, err
	}

	login, err := n.auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return n.terminalFailure(rec, domain.StateLoginFailed, err, msgSecondLoginFailed), nil
	}
	return n.complete(ctx, rec, login, msgWelcome)
}

// complete persists the session and, after the redirect delay, hands back the
// redirect destination. The session is stored before the delay starts.
func (n *SessionNegotiator) complete(ctx context.Context, rec *transitionRecorder, login *ports.LoginResult, msg string) (*ports.NegotiationResult, error) {
	sess := domain.Session{
		AccessToken: login.AccessToken,
		Role:        login.Role,
		Username:    login.Username,
	}
	if !sess.Valid() {
		n.log.Warn().Str("role", login.Role).Msg("refusing to persist incomplete session")
		return rec.finish(domain.StateLoginFailed, msgIncompleteLogin), nil
	}

	rec.to(domain.StateLoginSucceeded, msg)

	if err := n.store.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	if err := n.wait(ctx, n.redirectDelay); err != nil {
		return nil, err
	}

	res := rec.finish(domain.StateRedirecting, msgWelcome)
	res.RedirectTo = redirectDestination
	res.Session = &sess

	n.log.Info().Str("username", sess.Username).Str("role", sess.Role).Msg("session established")
	return res, nil
}

// terminalFailure maps a backend error to its terminal state, surfacing the
// backend's detail when present and a generic message otherwise. Transport
// failures always resolve to ConnectionError.
func (n *SessionNegotiator) terminalFailure(rec *transitionRecorder, state domain.NegotiationState, err error, generic string) *ports.NegotiationResult {
	var be *domain.BackendError
	if errors.As(err, &be) {
		msg := be.Detail
		if msg == "" {
			msg = generic
		}
		return rec.finish(state, msg)
	}

	n.log.Warn().Err(err).Msg("negotiation transport failure")
	return rec.finish(domain.StateConnectionError, msgConnectionError)
}

// wait blocks for the staged delay, cancellable through ctx.
func (n *SessionNegotiator) wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func unauthorized(err error) bool {
	var be *domain.BackendError
	return errors.As(err, &be) && be.Unauthorized()
}

// transitionRecorder accumulates the ordered status updates of one
// negotiation and checks them against the domain transition map.
type transitionRecorder struct {
	state   domain.NegotiationState
	updates []domain.StatusUpdate
	log     zerolog.Logger
}

func newTransitionRecorder(log zerolog.Logger) *transitionRecorder {
	return &transitionRecorder{state: domain.StateIdle, log: log}
}

func (r *transitionRecorder) to(next domain.NegotiationState, msg string) {
	if !r.state.CanTransitionTo(next) {
		r.log.Error().
			Str("from", string(r.state)).
			Str("to", string(next)).
			Msg("negotiation transition outside state machine")
	}
	r.state = next
	r.updates = append(r.updates, domain.StatusUpdate{State: next, Message: msg})
}

func (r *transitionRecorder) finish(state domain.NegotiationState, msg string) *ports.NegotiationResult {
	r.to(state, msg)
	return &ports.NegotiationResult{
		State:       state,
		Message:     msg,
		Transitions: r.updates,
	}
}
