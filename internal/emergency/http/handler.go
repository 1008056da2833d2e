package http

import (
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/service"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/events"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/geocode"
)

// Handler serves the /emergency endpoints and the event stream.
type Handler struct {
	dispatch *service.DispatchService
	bus      events.Bus
	geocoder *geocode.Client
}

func NewHandler(dispatch *service.DispatchService, bus events.Bus, geocoder *geocode.Client) *Handler {
	return &Handler{dispatch: dispatch, bus: bus, geocoder: geocoder}
}
