package main

import (
	"fmt"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/config"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/handlers"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/logger"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/middleware"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/models"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql db handle")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	if err := db.AutoMigrate(&models.User{}, &models.Prediction{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	authService := services.NewAuthService(cfg.JWT)
	predictor := services.NewPredictorService(services.NewOpenAIClient(cfg.OpenAI))

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	handlers.SetupRoutes(router, db, authService, predictor)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("starting server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
