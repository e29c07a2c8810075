package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medialink/core/config"
	"medialink/core/database"
	"medialink/core/loader"
	"medialink/core/logger"
	"medialink/core/middleware/auth"
	"medialink/core/middleware/rayid"
	"medialink/core/storage"

	"medialink/feature/dispatch"
	"medialink/feature/fields"
	fieldmodels "medialink/feature/fields/models"
	"medialink/feature/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "medialink/docs/swagger"
)

// @title Medialink API
// @version 1.0
// @description API for linked-media fields and multipart upload proxying.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the medialink server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the field store
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to field store database", zap.Error(err))
		}
		if err := fieldmodels.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate field store schema", zap.Error(err))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// Verify bucket access at boot. A failure here is almost always a
		// credentials or endpoint problem; warn instead of aborting so the
		// operator can fix config while the service runs.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if exists, err := store.BucketExists(ctx, cfg.Storage.Bucket); err != nil {
			logg.Warn("Bucket access check failed", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		} else if !exists {
			logg.Warn("Configured bucket does not exist", zap.String("bucket", cfg.Storage.Bucket))
		}
		cancel()

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 6. Initialize Features
		mgr := loader.NewManager()

		signExpiry := time.Duration(cfg.Storage.SignExpirySeconds) * time.Second
		uploadsFeature := uploads.NewFeature(store, cfg.Storage.Bucket, logg, signExpiry)
		fieldsFeature := fields.NewFeature(store, cfg.Storage.Bucket, logg, db)

		mgr.Register(uploadsFeature)
		mgr.Register(fieldsFeature)
		mgr.Register(dispatch.NewFeature(uploadsFeature.Service(), fieldsFeature.Service(), logg))

		// Middleware Registration
		// RayID first so everything downstream is traceable
		app.Use(rayid.New())

		// Request logging with Zap + RayID
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth protects everything past this point
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
