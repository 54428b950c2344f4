package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/secureauth/webclient/internal/core/domain"
	"github.com/secureauth/webclient/internal/core/service"
)

type stubSessions struct {
	authenticated bool
	user          *domain.User
	subscribers   []service.Subscriber
}

func (s *stubSessions) Query() service.Snapshot {
	return service.Snapshot{IsAuthenticated: s.authenticated, User: s.user}
}

func (s *stubSessions) Subscribe(fn service.Subscriber) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *stubSessions) set(authenticated bool) {
	s.authenticated = authenticated
	for _, fn := range s.subscribers {
		fn(authenticated)
	}
}

func request(t *testing.T, e *echo.Echo, path string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestGuard_ProtectedRedirectsWhenGateClosed(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{}
	guard := NewGuard(sessions, zerolog.Nop())

	called := false
	handler := guard.Protected(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	c := request(t, e, "/dashboard")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if called {
		t.Fatalf("protected handler must not run while unauthenticated")
	}
	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestGuard_ProtectedPassesWhenGateOpen(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{authenticated: true, user: &domain.User{Username: "alice"}}
	guard := NewGuard(sessions, zerolog.Nop())

	called := false
	handler := guard.Protected(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	c := request(t, e, "/dashboard")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("protected handler should run while authenticated")
	}
}

func TestGuard_EntryRedirectsWhenGateOpen(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{authenticated: true, user: &domain.User{Username: "alice"}}
	guard := NewGuard(sessions, zerolog.Nop())

	called := false
	handler := guard.Entry(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	c := request(t, e, "/")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if called {
		t.Fatalf("entry handler must not run while authenticated")
	}
	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestGuard_EntryPassesWhenGateClosed(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{}
	guard := NewGuard(sessions, zerolog.Nop())

	called := false
	handler := guard.Entry(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	c := request(t, e, "/")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("entry handler should run while unauthenticated")
	}
}

// The gate is re-derived from session state on every request, so the
// protected view is never rendered while unauthenticated no matter how fast
// the session toggles.
func TestGuard_RapidToggles(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{}
	guard := NewGuard(sessions, zerolog.Nop())

	handler := guard.Protected(func(c echo.Context) error {
		if !sessions.authenticated {
			t.Fatalf("protected view rendered while gate closed")
		}
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 100; i++ {
		sessions.set(i%2 == 0)

		c := request(t, e, "/dashboard")
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		rec := c.Response().Writer.(*httptest.ResponseRecorder)
		if sessions.authenticated && rec.Code != http.StatusOK {
			t.Fatalf("expected 200 while authenticated, got %d", rec.Code)
		}
		if !sessions.authenticated && rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303 while unauthenticated, got %d", rec.Code)
		}
	}
}
