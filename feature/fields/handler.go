package fields

import (
	"medialink/core/logger"
	"medialink/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for linked-media fields.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the fields routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/fields")
	group.Get("/:fieldKey/posts/:postID", h.HandleGetLinkedItems)
	group.Put("/", h.HandleUpdateField)
	group.Post("/relink", h.HandleRelink)
}

// UpdateFieldRequest is the body of a field-update request. The value is
// written verbatim; post_id is tolerated as a number or a string.
type UpdateFieldRequest struct {
	Key    string   `json:"key"`
	Value  []string `json:"value"`
	PostID any      `json:"post_id"`
}

// RelinkRequest is the body of a relink request.
type RelinkRequest struct {
	Key     string `json:"key"`
	PostID  any    `json:"post_id"`
	BaseKey string `json:"base_key"`
}

// HandleGetLinkedItems returns the storage items linked to a field.
// @Summary Get Linked Items
// @Description Returns the object keys linked to a field, wrapped with the configured bucket. Pass verify=true to check each object against the store.
// @Tags fields
// @Accept json
// @Produce json
// @Param fieldKey path string true "Field key"
// @Param postID path int true "Post ID"
// @Param verify query boolean false "Verify each item against the bucket"
// @Success 200 {object} map[string]interface{} "Linked items"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fields/{fieldKey}/posts/{postID} [get]
func (h *Handler) HandleGetLinkedItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fieldKey := c.Params("fieldKey")
	postID, err := c.ParamsInt("postID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "post ID must be an integer"})
	}

	if c.Query("verify") == "true" {
		items, err := h.service.VerifyLinkedItems(c.Context(), fieldKey, int64(postID))
		if err != nil {
			l.Error("Linked item verification failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"items": items})
	}

	items, err := h.service.GetLinkedItems(c.Context(), fieldKey, int64(postID))
	if err != nil {
		l.Error("Linked item read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleUpdateField writes a field's key list verbatim.
// @Summary Update Field
// @Description Overwrites the stored key list for a field with the given value.
// @Tags fields
// @Accept json
// @Produce json
// @Param request body UpdateFieldRequest true "Field update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fields [put]
func (h *Handler) HandleUpdateField(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
	}

	postID := int64(utils.ToInt(req.PostID))
	if err := h.service.UpdateField(c.Context(), req.Key, postID, req.Value); err != nil {
		l.Error("Field update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRelink resyncs a field's key list from a bucket prefix listing.
// @Summary Relink Field
// @Description Lists the bucket under base_key, drops the folder placeholder, and overwrites the field with the listed keys.
// @Tags fields
// @Accept json
// @Produce json
// @Param request body RelinkRequest true "Relink request"
// @Success 200 {array} string "Resulting keys"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fields/relink [post]
func (h *Handler) HandleRelink(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RelinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
	}

	postID := int64(utils.ToInt(req.PostID))
	keys, err := h.service.Relink(c.Context(), req.Key, postID, req.BaseKey)
	if err != nil {
		l.Error("Relink failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(keys)
}
