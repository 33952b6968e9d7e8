// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"releaf/internal/delivery/http/middleware"
	"releaf/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ActivityHandler    *handler.ActivityHandler
	MissionHandler     *handler.MissionHandler
	LeaderboardHandler *handler.LeaderboardHandler
	ProfileHandler     *handler.ProfileHandler
	MapFeedHandler     *handler.MapFeedHandler
	AuthHandler        *handler.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Development sign-in; production clients bring hosted identity tokens
	e.POST("/auth/login", r.params.AuthHandler.Login)

	// Activity routes; reads and reports work signed out
	activities := e.Group("/activities")
	activities.Use(auth.OptionalAuthenticate)
	{
		activities.GET("", r.params.ActivityHandler.List)
		activities.GET("/stats", r.params.ActivityHandler.Stats)
		activities.POST("/trees", r.params.ActivityHandler.PlantTree)
		activities.POST("/garbage", r.params.ActivityHandler.ReportGarbage)
		activities.POST("/garbage/:id/cleanup", r.params.ActivityHandler.CleanupGarbage)
	}

	// Bulk removal of own records requires a session; full wipes are a
	// teacher affordance
	activities.DELETE("/:collection/mine", r.params.ActivityHandler.RemoveMine, auth.Authenticate)
	activities.DELETE("/:collection", r.params.ActivityHandler.RemoveAll, auth.Authenticate, auth.RequireTeacher)

	// Mission routes
	missions := e.Group("/missions")
	{
		missions.POST("", r.params.MissionHandler.Create, auth.Authenticate, auth.RequireTeacher)
		missions.POST("/:id/accept", r.params.MissionHandler.Accept, auth.Authenticate)
		missions.POST("/:id/complete", r.params.MissionHandler.Complete, auth.Authenticate, auth.RequireTeacher)
		missions.POST("/:id/expire", r.params.MissionHandler.Expire, auth.Authenticate, auth.RequireTeacher)
		missions.GET("/:id/qr", r.params.MissionHandler.QR)
	}

	// Read-only feeds
	e.GET("/leaderboard", r.params.LeaderboardHandler.Get)
	e.GET("/map/features", r.params.MapFeedHandler.Features)

	// Device profile settings
	profile := e.Group("/profile")
	{
		profile.GET("/settings", r.params.ProfileHandler.GetSettings)
		profile.PUT("/settings", r.params.ProfileHandler.UpdateSettings)
	}
}
