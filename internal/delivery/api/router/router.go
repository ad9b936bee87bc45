// Package router registers the HTTP routes of the API.
package router

import (
	"society/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler   *handler.HealthHandler
	LocationHandler *handler.LocationHandler
	EventHandler    *handler.EventHandler
	MemberHandler   *handler.MemberHandler
	ImportHandler   *handler.ImportHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler   *handler.HealthHandler
	locationHandler *handler.LocationHandler
	eventHandler    *handler.EventHandler
	memberHandler   *handler.MemberHandler
	importHandler   *handler.ImportHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:   params.HealthHandler,
		locationHandler: params.LocationHandler,
		eventHandler:    params.EventHandler,
		memberHandler:   params.MemberHandler,
		importHandler:   params.ImportHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)

	apiV1 := e.Group("/api/v1")
	{
		apiV1.GET("/locations", r.locationHandler.ListLocations)
		apiV1.GET("/events", r.eventHandler.ListEvents)
		apiV1.GET("/events/nearby", r.eventHandler.FindNearbyEvents)
		apiV1.GET("/member_profiles/:id", r.memberHandler.GetProfile)
	}

	// Authentication is handled in front of the service.
	admin := e.Group("/admin")

	locations := admin.Group("/locations")
	{
		locations.POST("", r.locationHandler.CreateLocation)
		locations.GET("/:id", r.locationHandler.GetLocation)
		locations.PUT("/:id", r.locationHandler.UpdateLocation)
		locations.DELETE("/:id", r.locationHandler.DeleteLocation)
	}

	events := admin.Group("/events")
	{
		events.POST("", r.eventHandler.CreateEvent)
		events.GET("/:id", r.eventHandler.GetEvent)
		events.PUT("/:id", r.eventHandler.UpdateEvent)
		events.DELETE("/:id", r.eventHandler.DeleteEvent)
	}

	profiles := admin.Group("/member_profiles")
	{
		profiles.POST("", r.memberHandler.CreateProfile)
		profiles.PUT("/:id/saved_events/:event_id", r.memberHandler.SaveEvent)
		profiles.DELETE("/:id/saved_events/:event_id", r.memberHandler.UnsaveEvent)
	}

	imports := admin.Group("/import")
	{
		imports.POST("/locations", r.importHandler.ImportLocations)
		imports.POST("/events", r.importHandler.ImportEvents)
	}
}
