package health

import (
	"github.com/hayas1/closet/server/bsql"
	"github.com/hayas1/closet/server/response"

	"github.com/labstack/echo/v4"
)

// Handler handles health check requests
type Handler struct {
	db *bsql.DB
}

// NewHandler creates a new Handler
func NewHandler(db *bsql.DB) *Handler {
	return &Handler{db: db}
}

// Health reports process liveness without touching any dependency.
func (h *Handler) Health(c echo.Context) error {
	return response.Success(c, echo.Map{"status": "ok"})
}

// RichHealth reads the health table to prove the database round trip.
func (h *Handler) RichHealth(c echo.Context) error {
	var status string
	err := h.db.QueryRow(`SELECT status FROM health LIMIT 1`).Scan(&status)
	if err != nil {
		return response.InternalServerError(c, "no health record in database", err)
	}
	return response.Success(c, echo.Map{"status": status})
}
