package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds CORS configuration (suffix + dev password).
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

const (
	corsAllowMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, dev-password, X-Actor-Id, X-Trace-Id"
)

// CORS allows origins ending with AllowedSuffix, localhost origins, and requests carrying the
// dev-password header. Preflights from allowed origins are answered with 204.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		// Same-origin requests and tools send no Origin.
		if origin == "" {
			return c.Next()
		}
		if !originAllowed(cfg, c, origin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error": fiber.Map{
					"message":    "Not allowed by CORS",
					"statusCode": 403,
					"details":    fiber.Map{},
				},
			})
		}
		c.Set("Access-Control-Allow-Origin", origin)
		c.Set("Access-Control-Allow-Credentials", "true")
		c.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Set("Access-Control-Allow-Methods", corsAllowMethods)
		c.Set("Access-Control-Expose-Headers", "X-Trace-Id, Content-Disposition")
		c.Vary("Origin")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func originAllowed(cfg CORSConfig, c *fiber.Ctx, origin string) bool {
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
		return true
	}
	if cfg.AllowedSuffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(cfg.AllowedSuffix)) {
		return true
	}
	return cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword
}
