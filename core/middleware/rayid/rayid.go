package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray ID in requests and responses.
const Header = "X-Ray-Id"

// New returns a middleware that assigns a ray ID to every request.
// An incoming X-Ray-Id header is honored so upstream proxies can
// correlate; otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
