// Package middleware holds the route guard: a two-state gate (open when a
// complete session exists, closed otherwise) derived entirely from the
// session store. The guard keeps no session state of its own; every request
// re-evaluates the gate, and a subscription logs transitions the moment a
// login or logout flips it.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/secureauth/webclient/internal/core/service"
)

// SessionState is the slice of the session store the guard consumes.
type SessionState interface {
	Query() service.Snapshot
	Subscribe(service.Subscriber)
}

// Guard gates navigation between the entry view and the protected views.
type Guard struct {
	sessions SessionState
	log      zerolog.Logger
}

// NewGuard builds the guard and subscribes it to session state changes, so a
// logout is observed the instant it happens rather than on the next
// navigation.
func NewGuard(sessions SessionState, log zerolog.Logger) *Guard {
	g := &Guard{sessions: sessions, log: log}
	sessions.Subscribe(func(authenticated bool) {
		if authenticated {
			g.log.Debug().Msg("route guard: gate open")
		} else {
			g.log.Debug().Msg("route guard: gate closed")
		}
	})
	return g
}

// Protected redirects to the entry view while the gate is closed. The
// protected handler never runs, not even transiently.
func (g *Guard) Protected(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !g.sessions.Query().IsAuthenticated {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return next(c)
	}
}

// Entry redirects authenticated users to the dashboard: an authenticated
// user is never shown the login form.
func (g *Guard) Entry(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if g.sessions.Query().IsAuthenticated {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
		return next(c)
	}
}
