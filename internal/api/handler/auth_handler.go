package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/secureauth/webclient/internal/api/metrics"
	"github.com/secureauth/webclient/internal/core/domain"
	"github.com/secureauth/webclient/internal/core/ports"
	"github.com/secureauth/webclient/internal/core/service"
)

// AuthHandler owns the three mutating flows: login, register, logout. It is
// the only place that moves gateway results into the session store; the
// gateway itself never touches session state.
type AuthHandler struct {
	gateway   ports.AuthGateway
	sessions  *service.SessionStore
	validator *CredentialValidator
	log       zerolog.Logger
}

func NewAuthHandler(gateway ports.AuthGateway, sessions *service.SessionStore, validator *CredentialValidator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{gateway: gateway, sessions: sessions, validator: validator, log: log}
}

// Login handles POST /login. Validation runs before any network call; a
// request is never dispatched for invalid input. The generation taken before
// the remote call guards against a stale response establishing a session
// after a newer attempt or a logout.
func (h *AuthHandler) Login(c echo.Context) error {
	var in domain.LoginInput
	if err := c.Bind(&in); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return c.Render(http.StatusBadRequest, "entry.html", entryView{Mode: "login", Error: "Invalid form submission"})
	}

	if fields := h.validator.Validate(in); fields != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return c.Render(http.StatusBadRequest, "entry.html", entryView{
			Mode:     "login",
			Fields:   fields,
			Username: in.Username,
		})
	}

	gen := h.sessions.BeginAttempt()

	res, err := h.gateway.Login(c.Request().Context(), in.Username, in.Password)
	if err != nil {
		status, result := classifyLoginError(err)
		metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
		h.log.Info().Str("username", in.Username).Str("result", result).Msg("login failed")
		return c.Render(status, "entry.html", entryView{
			Mode:     "login",
			Error:    err.Error(),
			Username: in.Username,
		})
	}

	if !h.sessions.EstablishIfCurrent(c.Request().Context(), gen, res.Token, res.User) {
		metrics.LoginAttemptsTotal.WithLabelValues("stale").Inc()
		return c.Redirect(http.StatusSeeOther, "/")
	}

	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	metrics.SessionsEstablishedTotal.Inc()
	h.log.Info().Str("username", res.User.Username).Msg("login succeeded")
	setFlash(c, "Welcome back! You've successfully logged in.")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Register handles POST /register. When the gateway creates the account but
// no session can be established (no token, or the identity fetch failed),
// the user lands back on the entry view with a notice instead of an error.
func (h *AuthHandler) Register(c echo.Context) error {
	var in domain.RegisterInput
	if err := c.Bind(&in); err != nil {
		metrics.RegisterAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return c.Render(http.StatusBadRequest, "entry.html", entryView{Mode: "register", Error: "Invalid form submission"})
	}

	if fields := h.validator.Validate(in); fields != nil {
		metrics.RegisterAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return c.Render(http.StatusBadRequest, "entry.html", entryView{
			Mode:     "register",
			Fields:   fields,
			Email:    in.Email,
			Username: in.Username,
		})
	}

	gen := h.sessions.BeginAttempt()

	res, err := h.gateway.Register(c.Request().Context(), in.Email, in.Username, in.Password)
	if err != nil {
		status, result := classifyRegisterError(err)
		metrics.RegisterAttemptsTotal.WithLabelValues(result).Inc()
		h.log.Info().Str("username", in.Username).Str("result", result).Msg("registration failed")
		return c.Render(status, "entry.html", entryView{
			Mode:     "register",
			Error:    err.Error(),
			Email:    in.Email,
			Username: in.Username,
		})
	}

	if !res.SessionEstablished() {
		metrics.RegisterAttemptsTotal.WithLabelValues("ok_no_session").Inc()
		h.log.Info().Str("username", in.Username).Msg("account created without session")
		setFlash(c, "Account created! Sign in to continue.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if !h.sessions.EstablishIfCurrent(c.Request().Context(), gen, res.Token, res.User) {
		metrics.RegisterAttemptsTotal.WithLabelValues("stale").Inc()
		return c.Redirect(http.StatusSeeOther, "/")
	}

	metrics.RegisterAttemptsTotal.WithLabelValues("ok").Inc()
	metrics.SessionsEstablishedTotal.Inc()
	h.log.Info().Str("username", res.User.Username).Msg("registration succeeded")
	setFlash(c, "Account created! Your account has been created successfully.")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout handles POST /logout. Clearing is idempotent; logging out twice is
// harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c.Request().Context())
	metrics.SessionsClearedTotal.Inc()
	h.log.Info().Msg("session cleared")
	return c.Redirect(http.StatusSeeOther, "/")
}

func classifyLoginError(err error) (status int, result string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrIdentityFetch):
		return http.StatusBadGateway, "identity_fetch_failed"
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway, "network_failure"
	default:
		return http.StatusInternalServerError, "error"
	}
}

func classifyRegisterError(err error) (status int, result string) {
	switch {
	case errors.Is(err, domain.ErrValidationRejected):
		return http.StatusBadRequest, "rejected"
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway, "network_failure"
	default:
		return http.StatusInternalServerError, "error"
	}
}
