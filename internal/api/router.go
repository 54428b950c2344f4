package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/secureauth/webclient/internal/api/handler"
	"github.com/secureauth/webclient/internal/api/middleware"
	"github.com/secureauth/webclient/internal/core/ports"
	"github.com/secureauth/webclient/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil when the file session backend is in use.
func NewRouter(sessions *service.SessionStore, gw ports.AuthGateway, rdb *redis.Client, authBaseURL string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("secureauth"))

	// --- Dependencies ---
	guard := middleware.NewGuard(sessions, log)
	views := handler.NewViewHandler(sessions, log)
	auth := handler.NewAuthHandler(gw, sessions, handler.NewCredentialValidator(), log)

	// --- Pages ---
	e.GET("/", views.Entry, guard.Entry)
	e.GET("/dashboard", views.Dashboard, guard.Protected)

	// --- Auth flows ---
	e.POST("/login", auth.Login, guard.Entry)
	e.POST("/register", auth.Register, guard.Entry)
	e.POST("/logout", auth.Logout)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(authBaseURL, nil, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// Any unknown path lands on the entry view.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/")
	})

	return e
}
