package uploads

import (
	"errors"

	"medialink/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the upload proxy.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the upload routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/uploads")
	group.Post("/", h.HandleCreateUpload)
	group.Get("/", h.HandleListUploads)
	group.Post("/complete", h.HandleCompleteUpload)
	group.Post("/abort", h.HandleAbortUpload)
	group.Post("/sign", h.HandleSignPart)
	app.Delete("/objects", h.HandleDeleteObject)
}

// fail translates a service error into a JSON error response. Validation
// failures map to 400, everything else to 500.
func fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, ErrMissingField) {
		status = fiber.StatusBadRequest
	} else {
		l.Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleCreateUpload starts a multipart upload session.
// @Summary Create Multipart Upload
// @Description Starts a multipart upload session for a key and returns its upload ID.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body CreateUploadRequest true "Upload parameters"
// @Success 200 {object} CreateUploadResult "Upload session"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /uploads [post]
func (h *Handler) HandleCreateUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CreateUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.CreateUpload(c.Context(), req)
	if err != nil {
		return fail(c, l, "Create upload failed", err)
	}
	return c.JSON(result)
}

// HandleListUploads lists in-progress multipart uploads.
// @Summary List Multipart Uploads
// @Description Lists the in-progress multipart uploads for the configured bucket.
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} ListUploadsResult "In-progress uploads"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /uploads [get]
func (h *Handler) HandleListUploads(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.ListUploads(c.Context())
	if err != nil {
		return fail(c, l, "List uploads failed", err)
	}
	return c.JSON(result)
}

// HandleCompleteUpload combines uploaded parts into the final object.
// @Summary Complete Multipart Upload
// @Description Combines the uploaded parts of a session into the final object.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body CompleteUploadRequest true "Completion parameters"
// @Success 200 {object} CompleteUploadResult "Final object"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /uploads/complete [post]
func (h *Handler) HandleCompleteUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CompleteUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.CompleteUpload(c.Context(), req)
	if err != nil {
		return fail(c, l, "Complete upload failed", err)
	}
	return c.JSON(result)
}

// HandleAbortUpload aborts an in-progress multipart upload.
// @Summary Abort Multipart Upload
// @Description Aborts an in-progress multipart upload, discarding its parts.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body AbortUploadRequest true "Abort parameters"
// @Success 200 {object} AbortUploadResult "Abort confirmation"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /uploads/abort [post]
func (h *Handler) HandleAbortUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req AbortUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.AbortUpload(c.Context(), req)
	if err != nil {
		return fail(c, l, "Abort upload failed", err)
	}
	return c.JSON(result)
}

// HandleSignPart returns a presigned URL for one upload part.
// @Summary Sign Upload Part
// @Description Computes a time-limited presigned URL for uploading one part directly to the store.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body SignPartRequest true "Sign parameters"
// @Success 200 {object} SignPartResult "Presigned URL"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /uploads/sign [post]
func (h *Handler) HandleSignPart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SignPartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.SignPart(c.Context(), req)
	if err != nil {
		return fail(c, l, "Sign part failed", err)
	}
	return c.JSON(result)
}

// HandleDeleteObject removes an object from the bucket.
// @Summary Delete Object
// @Description Deletes one object from the configured bucket.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body DeleteObjectRequest true "Delete parameters"
// @Success 200 {object} DeleteObjectResult "Delete confirmation"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /objects [delete]
func (h *Handler) HandleDeleteObject(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DeleteObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.DeleteObject(c.Context(), req)
	if err != nil {
		return fail(c, l, "Delete object failed", err)
	}
	return c.JSON(result)
}
