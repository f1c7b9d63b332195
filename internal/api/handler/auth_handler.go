package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andesmarket/storefront-gateway/internal/api/metrics"
	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// AuthHandler handles HTTP requests for the login workflow and session
// lifecycle.
type AuthHandler struct {
	negotiator ports.SessionNegotiator
	store      ports.SessionStore
}

func NewAuthHandler(negotiator ports.SessionNegotiator, store ports.SessionStore) *AuthHandler {
	return &AuthHandler{negotiator: negotiator, store: store}
}

// --- Request / Response types ---

// loginRequest carries raw form input. Field presence is judged by the
// negotiator after trimming, not by validation tags, so that empty fields
// surface as a form error instead of a bind rejection.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResponse struct {
	State       string                `json:"state"`
	Message     string                `json:"message"`
	RedirectTo  string                `json:"redirect_to,omitempty"`
	Session     *sessionResponse      `json:"session,omitempty"`
	Transitions []domain.StatusUpdate `json:"transitions"`
}

// Login runs the full login negotiation, auto-provisioning included.
//
// @Summary      Authenticate, provisioning an account when needed
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginResponse
// @Failure      401   {object}  loginResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  loginResponse
// @Failure      502   {object}  loginResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	result, err := h.negotiator.Negotiate(c.Request().Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNegotiationInFlight) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return err
	}

	recordNegotiation(result)

	resp := loginResponse{
		State:       string(result.State),
		Message:     result.Message,
		RedirectTo:  result.RedirectTo,
		Transitions: result.Transitions,
	}
	// The access token stays server-side; only identity is echoed back.
	if result.Session != nil {
		resp.Session = &sessionResponse{
			Username: result.Session.Username,
			Role:     result.Session.Role,
		}
	}

	return c.JSON(negotiationStatus(result.State), resp)
}

// Logout destroys the stored session.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Failure      500  {object}  map[string]string
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.store.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session returns the identity of the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Username: sess.Username,
		Role:     sess.Role,
	})
}

// negotiationStatus maps a terminal negotiation state to an HTTP status.
func negotiationStatus(state domain.NegotiationState) int {
	switch state {
	case domain.StateRedirecting:
		return http.StatusOK
	case domain.StateFormError:
		return http.StatusBadRequest
	case domain.StateLoginFailed:
		return http.StatusUnauthorized
	case domain.StateProvisioningFailed:
		return http.StatusUnprocessableEntity
	case domain.StateConnectionError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func recordNegotiation(result *ports.NegotiationResult) {
	metrics.LoginNegotiationsTotal.WithLabelValues(string(result.State)).Inc()

	for _, update := range result.Transitions {
		if update.State == domain.StateProvisioningSucceeded {
			metrics.LoginProvisioningTotal.WithLabelValues("created").Inc()
		}
	}
	if result.State == domain.StateProvisioningFailed {
		metrics.LoginProvisioningTotal.WithLabelValues("failed").Inc()
	}
}
