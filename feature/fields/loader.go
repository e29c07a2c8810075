package fields

import (
	"medialink/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Fields feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Feature {
	svc := NewService(client, bucket, logger, db)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for cross-feature wiring.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "fields"
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
