package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Manoj-V07/Gadgetory/config"
	"github.com/Manoj-V07/Gadgetory/events"
	"github.com/Manoj-V07/Gadgetory/logger"
	"github.com/Manoj-V07/Gadgetory/routes"
	"github.com/Manoj-V07/Gadgetory/store/mongodb"
)

func main() {
	log := logger.NewLogger()
	log.Info("Starting Gadgetory API")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		return
	}

	log.Info("Connecting to MongoDB", "uri", cfg.Mongo.URI, "db", cfg.Mongo.DB)
	s, err := mongodb.NewStore(cfg.Mongo.URI, cfg.Mongo.DB, log)
	if err != nil {
		log.Error("Failed to connect to MongoDB", "error", err)
		return
	}
	defer s.Close()

	publisher := events.Connect(cfg.NATS.URL, log)
	defer publisher.Close()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Products:  s,
		Carts:     s,
		Orders:    s,
		Publisher: publisher,
		JWTSecret: cfg.JWT.Secret,
	})

	log.Info("Server running", "port", cfg.HTTP.Port)
	if err := r.Run(":" + cfg.HTTP.Port); err != nil {
		log.Error("Failed to start server", "error", err)
	}
}
