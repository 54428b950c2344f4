package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks that the remote auth gateway is reachable and, when the Redis
// session backend is active, that Redis answers a ping.
type ReadinessHandler struct {
	authBaseURL string
	http        *http.Client
	redis       *redis.Client // nil when the file backend is in use
}

func NewReadinessHandler(authBaseURL string, httpClient *http.Client, rdb *redis.Client) *ReadinessHandler {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ReadinessHandler{
		authBaseURL: authBaseURL,
		http:        httpClient,
		redis:       rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// Any HTTP response from the gateway host counts as reachable; only a
	// transport-level failure marks it unhealthy.
	if err := h.pingGateway(ctx); err != nil {
		deps["auth_gateway"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["auth_gateway"] = dependencyStatus{Status: "ok"}
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

func (h *ReadinessHandler) pingGateway(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.authBaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}
