package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndrewDonelson/dance-card-orchestrator/config"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/handlers"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/services"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/services/ai"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/worker"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/youtube"
	"github.com/gin-gonic/gin"
)

func main() {
	fmt.Println("Dance Card Orchestrator")

	// Load configuration
	cfg := config.LoadConfig()
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Server port: %d", cfg.ServerPort)

	// Initialize database
	if err := database.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.ExecSchema(cfg.SchemaPath); err != nil {
		log.Printf("Warning: Failed to apply schema: %v", err)
	}

	// Create repositories
	songRepo := database.NewSongRepository(database.DB)
	lyricsRepo := database.NewLyricsRepository(database.DB)
	routineRepo := database.NewRoutineRepository(database.DB)
	requestRepo := database.NewRequestRepository(database.DB)
	queueRepo := database.NewQueueRepository(database.DB)
	moveRepo := database.NewMoveRepository(database.DB)

	// Seed the move catalog
	if err := moveRepo.Seed(); err != nil {
		log.Printf("Warning: Failed to seed move catalog: %v", err)
	}

	// Create progress broadcaster for live updates
	broadcaster := services.NewProgressBroadcaster()

	// Shared collaborators
	downloader := youtube.NewDownloader(cfg.CachePath)
	aiClient := ai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)

	// Create handlers
	songHandler := handlers.NewSongHandler(songRepo, lyricsRepo, routineRepo)
	lyricsHandler := handlers.NewLyricsHandler(songRepo, lyricsRepo)
	routineHandler := handlers.NewRoutineHandler(songRepo, lyricsRepo, routineRepo, aiClient)
	requestHandler := handlers.NewRequestHandler(requestRepo, songRepo)
	queueHandler := handlers.NewQueueHandler(queueRepo)
	progressHandler := handlers.NewProgressHandler(broadcaster)
	waveformHandler := handlers.NewWaveformHandler(downloader)
	moveHandler := handlers.NewMoveHandler(moveRepo)

	// Create and start queue worker
	processor := worker.NewProcessor(songRepo, lyricsRepo, routineRepo, broadcaster, cfg)
	queueWorker := worker.NewWorker(queueRepo, broadcaster, processor, 5*time.Second)
	go queueWorker.Start()
	log.Println("Queue worker started (polling every 5 seconds)")

	// Create Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(handlers.CORS())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dance-card-orchestrator",
		})
	})

	// Public API
	api := router.Group("/api")
	{
		api.GET("/library", songHandler.GetLibrary)
		api.GET("/songs", songHandler.GetLibrary)
		api.GET("/songs/:video_id", songHandler.GetByVideoID)
		api.GET("/songs/:video_id/lyrics", lyricsHandler.Get)
		api.GET("/songs/:video_id/routines", routineHandler.GetAll)
		api.GET("/songs/:video_id/waveform", waveformHandler.Get)
		api.GET("/moves", moveHandler.GetAll)
		api.GET("/moves/:move_id", moveHandler.GetByID)
		api.POST("/requests", requestHandler.Submit)
	}

	// Admin API, guarded by a shared password header
	admin := router.Group("/api/admin", handlers.AdminAuth(cfg.AdminPassword))
	{
		admin.GET("/songs", songHandler.GetAll)
		admin.PATCH("/song/:video_id", songHandler.Update)
		admin.POST("/song/:video_id/publish", songHandler.Publish)
		admin.POST("/song/:video_id/unpublish", songHandler.Unpublish)
		admin.DELETE("/song/:video_id", songHandler.Delete)

		admin.PUT("/song/:video_id/lyrics", lyricsHandler.Update)
		admin.POST("/song/:video_id/timestamps", lyricsHandler.UpdateTimestamps)

		admin.POST("/song/:video_id/routines", routineHandler.Create)
		admin.POST("/song/:video_id/regenerate", routineHandler.Regenerate)
		admin.PUT("/routines/:routine_id", routineHandler.Update)
		admin.DELETE("/routines/:routine_id", routineHandler.Delete)
		admin.POST("/routines/:routine_id/default", routineHandler.SetDefault)

		admin.GET("/requests", requestHandler.GetAll)
		admin.PATCH("/request/:request_id", requestHandler.UpdateStatus)

		admin.POST("/process", queueHandler.Process)
		admin.GET("/queue", queueHandler.GetAll)
		admin.GET("/queue/:id", queueHandler.GetByID)
		admin.POST("/queue/:id/retry", queueHandler.Retry)
		admin.DELETE("/queue/:id", queueHandler.Delete)
	}

	// Progress streaming endpoints (SSE)
	progress := router.Group("/api/progress")
	{
		progress.GET("/stream", progressHandler.StreamProgress)
		progress.GET("/stream/:id", progressHandler.StreamQueueProgress)
		progress.GET("/stats", progressHandler.GetStats)
	}

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	// Stop worker
	queueWorker.Stop()

	// Close database
	database.Close()

	log.Println("Shutdown complete")
}
