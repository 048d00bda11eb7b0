package public

import "github.com/anta-store/anta-api/internal/provider"

// Handler serves the storefront-facing API.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
