package http

import (
	"github.com/gin-gonic/gin"

	authdomain "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/middleware"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/token"
)

// Register attaches the emergency routes. Everything requires a valid
// session; deletion is admin-only, creation is client/admin.
func (h *Handler) Register(r gin.IRouter, tokens *token.Manager) {
	em := r.Group("/emergency")
	em.Use(middleware.RequireAuth(tokens))

	em.GET("", h.list)
	em.POST("", middleware.RequireRole(authdomain.RoleClient, authdomain.RoleAdmin), h.create)
	em.GET("/stream", h.stream)
	em.GET("/:id", h.get)
	em.PATCH("/:id", h.update)
	em.DELETE("/:id", middleware.RequireRole(authdomain.RoleAdmin), h.delete)

	geo := r.Group("/geocode")
	geo.Use(middleware.RequireAuth(tokens))
	geo.GET("/reverse", h.reverseGeocode)
}
