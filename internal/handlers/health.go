package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Counter reports the number of live workspaces.
type Counter interface {
	Len() int
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	workspaces Counter
}

func NewHealthHandler(workspaces Counter) *HealthHandler {
	return &HealthHandler{workspaces: workspaces}
}

type healthResponse struct {
	Status     string `json:"status"`
	Workspaces int    `json:"workspaces"`
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Workspaces: h.workspaces.Len()})
}
