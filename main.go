package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivehub/config"
	"drivehub/controllers"
	"drivehub/database"
	"drivehub/jobs"
	"drivehub/repository"
	"drivehub/routes"
	"drivehub/services"
	"drivehub/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	app, err := NewApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// Application represents the main application structure
type Application struct {
	config       *config.Config
	server       *http.Server
	router       *gin.Engine
	trashCleaner *jobs.TrashCleaner
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	router.GET("/health", healthCheckHandler())

	app := &Application{
		config: cfg,
		router: router,
		server: &http.Server{
			Addr:         cfg.GetServerAddress(),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	return app, nil
}

// Start initializes all components and starts the HTTP server
func (app *Application) Start() error {
	log.Printf("Starting %s v%s in %s mode",
		app.config.AppName,
		app.config.AppVersion,
		app.config.Environment)

	if err := app.initializeDatabase(); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	blobs, err := app.initializeStorage()
	if err != nil {
		log.Fatalf("Storage initialization failed: %v", err)
	}

	app.wireServices(blobs)

	go func() {
		log.Printf("Server starting on %s", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
	return nil
}

// initializeDatabase connects to MongoDB and creates the indexes
func (app *Application) initializeDatabase() error {
	log.Println("Initializing database...")

	if err := database.Connect(app.config.MongoURI, app.config.DBName); err != nil {
		return err
	}
	if err := database.EnsureIndexes(); err != nil {
		return err
	}

	log.Println("Database initialization completed successfully")
	return nil
}

// initializeStorage builds the configured blob store
func (app *Application) initializeStorage() (storage.BlobStore, error) {
	log.Printf("Initializing %s storage...", app.config.StorageProvider)

	return storage.NewBlobStore(app.config.StorageProvider, storage.S3Config{
		Region:    app.config.S3Region,
		Bucket:    app.config.S3Bucket,
		AccessKey: app.config.S3AccessKey,
		SecretKey: app.config.S3SecretKey,
		Endpoint:  app.config.S3Endpoint,
	}, app.config.UploadPath, app.config.AppURL)
}

// wireServices builds the repositories, services, controllers and routes,
// and starts the background jobs.
func (app *Application) wireServices(blobs storage.BlobStore) {
	db := database.GetDatabase()
	nodeRepo := repository.NewMongoNodeRepository(db)
	userRepo := repository.NewMongoUserRepository(db)

	access := services.NewAccessService()
	summarizer := services.NewHuggingFaceSummarizer(app.config.SummaryModelURL, app.config.HuggingFaceAPIKey)
	summaryService := services.NewSummaryService(nodeRepo, blobs, access, summarizer)
	nodeService := services.NewNodeService(nodeRepo, blobs, access, summaryService)
	shareService := services.NewShareService(nodeRepo, userRepo, access)
	trashService := services.NewTrashService(nodeRepo, blobs, access)
	authService := services.NewAuthService(userRepo)

	routes.SetupRoutes(app.router, &routes.Dependencies{
		Auth:  controllers.NewAuthController(authService),
		Files: controllers.NewFileController(nodeService, shareService, trashService, summaryService),
		Trash: controllers.NewTrashController(trashService),
		Users: userRepo,
	})
	log.Println("Routes configured successfully")

	app.trashCleaner = jobs.NewTrashCleaner(trashService, app.config.TrashRetention, app.config.TrashCleanupInterval)
	app.trashCleaner.Start()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutdown signal received...")
	app.shutdown()
}

// shutdown gracefully shuts down the application
func (app *Application) shutdown() {
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if app.trashCleaner != nil {
		app.trashCleaner.Stop()
	}

	if err := app.server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := database.Disconnect(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server shutdown complete")
}

// Health check handler for monitoring
func healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"service":   "drivehub",
			"version":   config.GetConfig().AppVersion,
			"timestamp": time.Now().Unix(),
		}
		if err := database.Ping(); err != nil {
			health["status"] = "degraded"
			health["database"] = err.Error()
		}
		c.JSON(http.StatusOK, health)
	}
}
