package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/moodloop/backend/internal/config"
	"github.com/moodloop/backend/internal/handlers"
	"github.com/moodloop/backend/internal/logger"
	"github.com/moodloop/backend/internal/middleware"
	"github.com/moodloop/backend/internal/repository"
	"github.com/moodloop/backend/internal/service"
	"github.com/moodloop/backend/pkg/kvstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	logger.SetDefault(logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	}))
	log := logger.Default()

	log.Info("starting moodloop API server",
		logger.String("env", cfg.Server.Env),
	)

	// Initialize storage; a data dir selects durable file-backed storage,
	// otherwise everything lives in memory.
	var store kvstore.Store
	if cfg.Storage.Dir != "" {
		fileStore, err := kvstore.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return fmt.Errorf("failed to open data directory: %w", err)
		}
		store = fileStore
		log.Info("using file-backed storage", logger.String("dir", cfg.Storage.Dir))
	} else {
		store = kvstore.NewMemoryStore()
		log.Info("using in-memory storage")
	}

	// Initialize repositories
	entryRepo := repository.NewMoodEntryRepository(store)
	contactRepo := repository.NewPartnerContactRepository(store)

	// Initialize services
	partnerService := service.NewPartnerService(entryRepo, contactRepo, store)
	entryService := service.NewEntryService(entryRepo, store, partnerService)
	advisorService := service.NewAdvisorService(entryRepo, contactRepo, store, cfg.Advisor.Cooldown())

	// Initialize handlers
	entryHandler := handlers.NewEntryHandler(entryService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes; everything below requires a device identifier
	v1 := router.Group("/api/v1")
	v1.Use(middleware.DeviceID())
	{
		// Mood entry routes
		v1.GET("/entries", entryHandler.GetEntries)
		v1.POST("/entries", entryHandler.CreateEntry)
		v1.DELETE("/entries/:id", entryHandler.DeleteEntry)

		// Advisor routes
		v1.GET("/advisor", advisorHandler.GetItems)
		v1.POST("/advisor/feedback", advisorHandler.RecordFeedback)

		// Partner sharing routes
		partner := v1.Group("/partner")
		{
			partner.GET("/postcard", partnerHandler.GetPostcard)
			partner.GET("/digest", partnerHandler.GetDigest)
			partner.GET("/summary", partnerHandler.GetSummary)
			partner.GET("/contact", partnerHandler.GetContact)
			partner.PUT("/contact", partnerHandler.UpdateContact)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
