package dispatch

import (
	"errors"
	"fmt"

	"medialink/core/logger"
	"medialink/core/utils"
	"medialink/feature/fields"
	"medialink/feature/uploads"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Command names accepted by the dispatcher. The upload commands mirror the
// store SDK's operation names so existing upload clients keep working.
const (
	CmdCreateMultipartUpload   = "createMultipartUpload"
	CmdAbortMultipartUpload    = "abortMultipartUpload"
	CmdCompleteMultipartUpload = "completeMultipartUpload"
	CmdListMultipartUploads    = "listMultipartUploads"
	CmdSignUploadPart          = "signUploadPart"
	CmdDeleteObject            = "deleteObject"
	CmdUpdateField             = "updateField"
	CmdRelink                  = "relink"
)

// ErrUnknownCommand signals a command name outside the dispatch table.
var ErrUnknownCommand = errors.New("unknown command")

// Handler maps a command name to an uploads or fields operation.
type Handler struct {
	uploads *uploads.Service
	fields  *fields.Service
	logger  *zap.Logger
}

// NewHandler creates a new dispatch handler.
func NewHandler(uploadsSvc *uploads.Service, fieldsSvc *fields.Service, logger *zap.Logger) *Handler {
	return &Handler{uploads: uploadsSvc, fields: fieldsSvc, logger: logger}
}

// RegisterRoutes registers the dispatch route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/command", h.HandleCommand)
}

// HandleCommand dispatches on the command query parameter. The command
// name is the only validation performed here; each operation validates its
// own body. An unknown command fails before any storage or field access.
// @Summary Dispatch Command
// @Description Runs one named operation: the multipart-upload lifecycle commands, updateField, or relink. JSON body per command.
// @Tags dispatch
// @Accept json
// @Produce json
// @Param command query string true "Command name"
// @Success 200 {object} interface{} "Command result"
// @Failure 400 {object} map[string]string "Unknown command or invalid body"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /command [post]
func (h *Handler) HandleCommand(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	command := c.Query("command")

	switch command {
	case CmdCreateMultipartUpload:
		var req uploads.CreateUploadRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		result, err := h.uploads.CreateUpload(c.Context(), req)
		return respond(c, l, command, result, err)

	case CmdAbortMultipartUpload:
		var req uploads.AbortUploadRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		result, err := h.uploads.AbortUpload(c.Context(), req)
		return respond(c, l, command, result, err)

	case CmdCompleteMultipartUpload:
		var req uploads.CompleteUploadRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		result, err := h.uploads.CompleteUpload(c.Context(), req)
		return respond(c, l, command, result, err)

	case CmdListMultipartUploads:
		result, err := h.uploads.ListUploads(c.Context())
		return respond(c, l, command, result, err)

	case CmdSignUploadPart:
		var req uploads.SignPartRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		result, err := h.uploads.SignPart(c.Context(), req)
		return respond(c, l, command, result, err)

	case CmdDeleteObject:
		var req uploads.DeleteObjectRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		result, err := h.uploads.DeleteObject(c.Context(), req)
		return respond(c, l, command, result, err)

	case CmdUpdateField:
		var req fields.UpdateFieldRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		if req.Key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
		}
		postID := int64(utils.ToInt(req.PostID))
		if err := h.fields.UpdateField(c.Context(), req.Key, postID, req.Value); err != nil {
			l.Error("Command failed", zap.String("command", command), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(fiber.StatusNoContent)

	case CmdRelink:
		var req fields.RelinkRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		if req.Key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
		}
		postID := int64(utils.ToInt(req.PostID))
		keys, err := h.fields.Relink(c.Context(), req.Key, postID, req.BaseKey)
		if err != nil {
			l.Error("Command failed", zap.String("command", command), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(keys)

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("%s: %q", ErrUnknownCommand, command),
		})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
}

// respond serializes a (result, error) pair from an uploads operation.
func respond[T any](c *fiber.Ctx, l *zap.Logger, command string, result *T, err error) error {
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, uploads.ErrMissingField) {
			status = fiber.StatusBadRequest
		} else {
			l.Error("Command failed", zap.String("command", command), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
