package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const actorHeader = "X-Actor-Id"
const actorLocal = "actor"

// Actor copies the X-Actor-Id header into request locals. Absent headers leave the actor blank.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(actorLocal, strings.TrimSpace(c.Get(actorHeader)))
		return c.Next()
	}
}

// ActorFrom returns the actor captured by Actor, or "" when none was sent.
func ActorFrom(c *fiber.Ctx) string {
	if a, ok := c.Locals(actorLocal).(string); ok {
		return a
	}
	return ""
}
