package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legalease-platform/internal/ai"
	"legalease-platform/internal/classifier"
	"legalease-platform/internal/config"
	"legalease-platform/internal/extract"
	"legalease-platform/internal/logger"
	"legalease-platform/internal/ocr"
	"legalease-platform/internal/store"
	"legalease-platform/middleware"
	"legalease-platform/routes"
	"legalease-platform/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Connect to MongoDB (user accounts only; documents live in the JSON store)
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	// Build the analysis pipeline
	cls, err := classifier.LoadFromFile(cfg.KeywordsFile)
	if err != nil {
		log.Fatal("Failed to load classifier keywords:", err)
	}

	bridge := ocr.NewBridge(cfg.PythonBin, cfg.OCRScript, logger.Logger, ocr.WithTimeout(cfg.OCRTimeout))
	extractor := extract.New(bridge)

	pipelines := ai.NewPipelineCache(ai.GeminiFactory(cfg.GeminiAPIKey, cfg.GeminiTier), ai.WithCallTimeout(cfg.ModelTimeout))
	defer pipelines.Close()

	repo := store.NewJSONFileStore(cfg.DocumentsFile)
	analysisSvc := services.NewAnalysisService(extractor, cls, pipelines, repo)

	// Background sweep of orphaned uploads
	cleanupSvc := services.NewCleanupService(cfg.UploadDir, repo, cfg.CleanupInterval)
	go cleanupSvc.Start()
	defer cleanupSvc.Stop()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	// Multipart overhead on top of the document size cap
	router.Use(middleware.RequestSizeLimit(cfg.MaxFileSize + 1<<20))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)

	// Setup routes
	routes.SetupAuthRoutes(router, cfg, mongoClient)
	routes.SetupDocumentRoutes(router, cfg, analysisSvc, authMiddleware)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
