package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thereayou/drop/internal/handlers"
)

type Endpoints struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Messages *handlers.MessageHandler
	Wall     *handlers.WallHandler
	Health   *handlers.HealthHandler
	Required gin.HandlerFunc
	Optional gin.HandlerFunc
}

func APIEndpoints(r *gin.Engine, e Endpoints) {
	r.GET("/health", e.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", e.Auth.Register)
		auth.POST("/login", e.Auth.Login)
		auth.POST("/logout", e.Required, e.Auth.Logout)
		auth.GET("/me", e.Required, e.Users.GetMe)
	}

	api := r.Group("/api")
	{
		api.GET("/init-db", e.Health.InitDB)
		api.GET("/debug/connectivity", e.Health.Connectivity)
		api.GET("/wall", e.Optional, e.Wall.GetWall)

		// читать стену можно всем, писать только после входа
		api.GET("/messages", e.Messages.ListMessages)
		api.POST("/messages", e.Required, e.Messages.CreateMessage)
		api.PATCH("/messages/:id", e.Required, e.Messages.UpdateMessage)
		api.PUT("/messages/:id/position", e.Required, e.Messages.UpdateMessagePosition)
		api.DELETE("/messages/:id", e.Required, e.Messages.DeleteMessage)
	}
}
