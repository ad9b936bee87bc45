package handler

import (
	"net/http"

	"society/internal/delivery/api/response"
	domainerrors "society/internal/domain/errors"
	"society/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	EventUC usecase.EventUsecase
}

// EventHandler serves event listings, the nearby search and the admin CRUD.
type EventHandler struct {
	eventUC usecase.EventUsecase
}

// NewEventHandler is the constructor for EventHandler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		eventUC: params.EventUC,
	}
}

// ListEvents handles GET /api/v1/events?country_code&event_type&location_id&upcoming_only
func (h *EventHandler) ListEvents(c echo.Context) error {
	eventType, err := queryEventType(c)
	if err != nil {
		return err
	}
	locationID, err := queryInt64(c, "location_id")
	if err != nil {
		return err
	}
	upcomingOnly, err := queryBool(c, "upcoming_only", true)
	if err != nil {
		return err
	}

	events, err := h.eventUC.ListEvents(c.Request().Context(), usecase.EventQuery{
		CountryCode:  c.QueryParam("country_code"),
		EventType:    eventType,
		LocationID:   locationID,
		UpcomingOnly: upcomingOnly,
	})
	if err != nil {
		return err
	}

	return response.List(c, toEventOuts(events))
}

// FindNearbyEvents handles GET /api/v1/events/nearby?lat&lng&km&event_type&upcoming_only
func (h *EventHandler) FindNearbyEvents(c echo.Context) error {
	lat, err := queryFloat(c, "lat", true)
	if err != nil {
		return err
	}
	lng, err := queryFloat(c, "lng", true)
	if err != nil {
		return err
	}
	km, err := queryFloat(c, "km", false)
	if err != nil {
		return err
	}
	if c.QueryParam("km") != "" && km <= 0 {
		return domainerrors.Validation("km must be positive")
	}
	eventType, err := queryEventType(c)
	if err != nil {
		return err
	}
	upcomingOnly, err := queryBool(c, "upcoming_only", true)
	if err != nil {
		return err
	}

	events, err := h.eventUC.FindNearbyEvents(c.Request().Context(), usecase.NearbyQuery{
		Lat:          lat,
		Lng:          lng,
		RadiusKm:     km,
		EventType:    eventType,
		UpcomingOnly: upcomingOnly,
	})
	if err != nil {
		return err
	}

	return response.List(c, toNearbyEventOuts(events))
}

// GetEvent handles GET /admin/events/:id
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.eventUC.GetEvent(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toEventOut(event))
}

// CreateEvent handles POST /admin/events
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req usecase.EventInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.eventUC.CreateEvent(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toEventOut(event))
}

// UpdateEvent handles PUT /admin/events/:id
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req usecase.EventInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.eventUC.UpdateEvent(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toEventOut(event))
}

// DeleteEvent handles DELETE /admin/events/:id
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventUC.DeleteEvent(c.Request().Context(), id); err != nil {
		return err
	}

	return response.NoContent(c)
}
