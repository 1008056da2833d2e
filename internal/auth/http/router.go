package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/middleware"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/token"
)

// Register attaches the auth and user-management routes. /auth is public;
// /users is admin-only.
func (h *Handler) Register(r gin.IRouter, tokens *token.Manager) {
	auth := r.Group("/auth")
	auth.POST("/signin", h.signIn)
	auth.POST("/signup", h.signUp)

	users := r.Group("/users")
	users.Use(middleware.RequireAuth(tokens), middleware.RequireRole(domain.RoleAdmin))
	users.GET("", h.listUsers)
	users.POST("", h.createUser)
	users.DELETE("/:id", h.deleteUser)
}
