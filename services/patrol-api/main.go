package main

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	"github.com/vvaraldi/Infraction-Orford/services/patrol-api/apihandlers"
)

func main() {
	files, err := initFilestore()
	if err != nil {
		slog.Error("Error setting up the filestore", slog.String("error", err.Error()))
		return
	}

	identityProvider := identity.NewLocalProvider(patrollerDBService)

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

	if conf.FilestoreConfig.Backend == FILESTORE_BACKEND_LOCAL {
		router.Static("/files", conf.FilestoreConfig.LocalPath)
	}

	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.PatrollerJWTConfig.SignKey,
		conf.PatrollerJWTConfig.ExpiresIn,
		infractionDBService,
		patrollerDBService,
		identityProvider,
		files,
	)
	v1APIHandlers.AddPatrolAuthAPI(v1Root)
	v1APIHandlers.AddReportsAPI(v1Root)
	v1APIHandlers.AddReferenceAPI(v1Root)

	// Start the server
	slog.Info("Starting Patrol API on port " + conf.GinConfig.Port)
	if err := router.Run(":" + conf.GinConfig.Port); err != nil {
		slog.Error("Exited Patrol API", slog.String("error", err.Error()))
		return
	}
}
