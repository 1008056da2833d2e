package http

import (
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/service"
)

// Handler serves the /auth and /users endpoints.
type Handler struct {
	auth *service.AuthService
}

func NewHandler(auth *service.AuthService) *Handler {
	return &Handler{auth: auth}
}
