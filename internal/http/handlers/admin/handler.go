package admin

import "github.com/anta-store/anta-api/internal/provider"

// Handler serves the dashboard API.
type Handler struct {
	*provider.Container
}

// New creates the dashboard handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
