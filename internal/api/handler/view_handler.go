package handler

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/secureauth/webclient/internal/core/domain"
	"github.com/secureauth/webclient/internal/core/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer satisfies echo.Renderer with the embedded page templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// entryView feeds the entry page: login or register form, a flash notice,
// a form-level error banner, and per-field messages with the submitted
// values preserved.
type entryView struct {
	Mode     string // "login" or "register"
	Flash    string
	Error    string
	Fields   FieldErrors
	Email    string
	Username string
}

type dashboardView struct {
	User        *domain.User
	Flash       string
	TokenExpiry string // empty when the bearer token is not introspectable
}

// ViewHandler renders the two pages. It only reads session state; all
// mutation goes through AuthHandler.
type ViewHandler struct {
	sessions *service.SessionStore
	log      zerolog.Logger
}

func NewViewHandler(sessions *service.SessionStore, log zerolog.Logger) *ViewHandler {
	return &ViewHandler{sessions: sessions, log: log}
}

// Entry handles GET / — the login/register form. The route guard redirects
// authenticated users to /dashboard before this runs.
func (h *ViewHandler) Entry(c echo.Context) error {
	mode := c.QueryParam("mode")
	if mode != "register" {
		mode = "login"
	}
	return c.Render(http.StatusOK, "entry.html", entryView{
		Mode:  mode,
		Flash: popFlash(c),
	})
}

// Dashboard handles GET /dashboard, the account summary. The route guard
// already redirects unauthenticated requests; the check here covers direct
// handler invocation.
func (h *ViewHandler) Dashboard(c echo.Context) error {
	snap := h.sessions.Query()
	if !snap.IsAuthenticated || snap.User == nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "dashboard.html", dashboardView{
		User:        snap.User,
		Flash:       popFlash(c),
		TokenExpiry: tokenExpiry(h.sessions.BearerToken()),
	})
}

// tokenExpiry extracts the exp claim for display when the opaque bearer
// token happens to be a JWT. The signature is deliberately not verified —
// this client holds no key and only decorates the dashboard; the token stays
// opaque everywhere else and is never refreshed.
func tokenExpiry(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	return exp.Time.UTC().Format(time.RFC1123)
}
