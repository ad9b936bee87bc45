package handler

import (
	"context"
	"net/http"

	"society/internal/delivery/api/response"
	"society/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MemberHandlerParams holds dependencies for MemberHandler, injected by Fx.
type MemberHandlerParams struct {
	fx.In

	MemberUC usecase.MemberUsecase
}

// MemberHandler serves member profiles.
type MemberHandler struct {
	memberUC usecase.MemberUsecase
}

// NewMemberHandler is the constructor for MemberHandler
func NewMemberHandler(params MemberHandlerParams) *MemberHandler {
	return &MemberHandler{
		memberUC: params.MemberUC,
	}
}

// GetProfile handles GET /api/v1/member_profiles/:id
func (h *MemberHandler) GetProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.memberUC.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toMemberProfileOut(profile))
}

// CreateProfile handles POST /admin/member_profiles
func (h *MemberHandler) CreateProfile(c echo.Context) error {
	var req usecase.CreateProfileInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.memberUC.CreateProfile(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toMemberProfileOut(profile))
}

// SaveEvent handles PUT /admin/member_profiles/:id/saved_events/:event_id
func (h *MemberHandler) SaveEvent(c echo.Context) error {
	return h.changeSaved(c, h.memberUC.SaveEvent)
}

// UnsaveEvent handles DELETE /admin/member_profiles/:id/saved_events/:event_id
func (h *MemberHandler) UnsaveEvent(c echo.Context) error {
	return h.changeSaved(c, h.memberUC.UnsaveEvent)
}

func (h *MemberHandler) changeSaved(c echo.Context, apply func(ctx context.Context, profileID, eventID int64) error) error {
	profileID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "event_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := apply(ctx, profileID, eventID); err != nil {
		return err
	}

	profile, err := h.memberUC.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toMemberProfileOut(profile))
}
