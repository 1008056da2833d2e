package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/middleware"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/domain"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/service"
)

func caller(c *gin.Context) service.Caller {
	return service.Caller{
		ID:   middleware.CallerID(c),
		Role: middleware.CallerRole(c),
	}
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	r, err := h.dispatch.Create(c.Request.Context(), caller(c), &req)
	if err != nil {
		status, msg := requestError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"emergencyRequest": r})
}

func (h *Handler) list(c *gin.Context) {
	filter := domain.Filter{
		ClientID:    c.Query("client_id"),
		ResponderID: c.Query("responder_id"),
		Status:      c.Query("status"),
	}

	requests, err := h.dispatch.List(c.Request.Context(), caller(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) get(c *gin.Context) {
	r, err := h.dispatch.Get(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		status, msg := requestError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"emergencyRequest": r})
}

func (h *Handler) update(c *gin.Context) {
	var upd domain.UpdateRequest
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	r, err := h.dispatch.Update(c.Request.Context(), caller(c), c.Param("id"), &upd)
	if err != nil {
		status, msg := requestError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"emergencyRequest": r})
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.dispatch.Delete(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		status, msg := requestError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Emergency request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) reverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}

	city := h.geocoder.ReverseCity(c.Request.Context(), lat, lng)
	c.JSON(http.StatusOK, gin.H{"city": city})
}

func requestError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound, "Emergency request not found"
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, domain.ErrInvalidType):
		return http.StatusBadRequest, "Invalid emergency type"
	case errors.Is(err, domain.ErrInvalidPriority):
		return http.StatusBadRequest, "Invalid priority"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid status"
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return http.StatusBadRequest, "Location coordinates must be numeric"
	case errors.Is(err, domain.ErrResponderRequired):
		return http.StatusBadRequest, "responder_id is required to accept a request"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "Illegal status transition"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Not allowed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
