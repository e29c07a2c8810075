package dispatch

import (
	"medialink/feature/fields"
	"medialink/feature/uploads"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new Dispatch feature on top of the uploads and
// fields services.
func NewFeature(uploadsSvc *uploads.Service, fieldsSvc *fields.Service, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(uploadsSvc, fieldsSvc, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "dispatch"
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
