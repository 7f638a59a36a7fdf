package main

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vvaraldi/Infraction-Orford/pkg/console"
	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	"github.com/vvaraldi/Infraction-Orford/services/admin-api/apihandlers"
)

func main() {
	identityProvider := identity.NewLocalProvider(patrollerDBService)
	reviewConsole := console.NewConsole(infractionDBService, patrollerDBService, identityProvider)

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.PatrollerJWTConfig.SignKey,
		conf.PatrollerJWTConfig.ExpiresIn,
		patrollerDBService,
		identityProvider,
		reviewConsole,
	)
	v1APIHandlers.AddAdminAuthAPI(v1Root)
	v1APIHandlers.AddInfractionManagementAPI(v1Root)
	v1APIHandlers.AddPatrollerManagementAPI(v1Root)

	// Start the server
	slog.Info("Starting Admin API on port " + conf.GinConfig.Port)
	if err := router.Run(":" + conf.GinConfig.Port); err != nil {
		slog.Error("Exited Admin API", slog.String("error", err.Error()))
		return
	}
}
