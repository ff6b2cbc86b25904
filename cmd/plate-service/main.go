package main

import (
	"fmt"
	"os"

	"plate-service/internal/auth"
	"plate-service/internal/client"
	"plate-service/internal/config"
	"plate-service/internal/db"
	httphandler "plate-service/internal/http"
	"plate-service/internal/http/middleware"
	"plate-service/internal/logger"
	"plate-service/internal/recognizer"
	"plate-service/internal/repository"
	"plate-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	rec, err := recognizer.New(recognizer.Config{
		ConfidenceThreshold:    cfg.Recognizer.ConfidenceThreshold,
		LowConfidenceThreshold: cfg.Recognizer.LowConfidenceThreshold,
		IncludeLowConfidence:   cfg.Recognizer.IncludeLowConfidence,
		CustomPattern:          cfg.Recognizer.CustomPattern,
		MergeWindow:            cfg.Recognizer.MergeWindow,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("invalid recognizer configuration")
	}

	recognitionRepo := repository.NewRecognitionRepository(database)
	ocrClient := client.NewOCRClient(cfg)
	recognitionService := service.NewRecognitionService(rec, recognitionRepo, ocrClient)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(recognitionService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting plate service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
