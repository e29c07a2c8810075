package uploads

import (
	"time"

	"medialink/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Uploads feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, signExpiry time.Duration) *Feature {
	svc := NewService(client, bucket, logger, signExpiry)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for cross-feature wiring.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "uploads"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
