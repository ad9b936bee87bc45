package handler

import (
	"net/http"

	"society/internal/delivery/api/response"
	"society/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
}

// LocationHandler serves the public location listing and its admin CRUD.
type LocationHandler struct {
	locationUC usecase.LocationUsecase
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
	}
}

// ListLocations handles GET /api/v1/locations?country_code&category&q
func (h *LocationHandler) ListLocations(c echo.Context) error {
	category, err := queryCategory(c)
	if err != nil {
		return err
	}

	locations, err := h.locationUC.ListLocations(c.Request().Context(), usecase.LocationQuery{
		CountryCode:  c.QueryParam("country_code"),
		Category:     category,
		NameContains: c.QueryParam("q"),
	})
	if err != nil {
		return err
	}

	return response.List(c, toLocationOuts(locations))
}

// GetLocation handles GET /admin/locations/:id
func (h *LocationHandler) GetLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	location, err := h.locationUC.GetLocation(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toLocationOut(location))
}

// CreateLocation handles POST /admin/locations
func (h *LocationHandler) CreateLocation(c echo.Context) error {
	var req usecase.LocationInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	location, err := h.locationUC.CreateLocation(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toLocationOut(location))
}

// UpdateLocation handles PUT /admin/locations/:id
func (h *LocationHandler) UpdateLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req usecase.LocationInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	location, err := h.locationUC.UpdateLocation(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toLocationOut(location))
}

// DeleteLocation handles DELETE /admin/locations/:id. Events of the location go with it.
func (h *LocationHandler) DeleteLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.locationUC.DeleteLocation(c.Request().Context(), id); err != nil {
		return err
	}

	return response.NoContent(c)
}
