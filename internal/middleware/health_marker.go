package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys read by the health service and cleared by /reset.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"
)

const errorLogSize = 50

// HealthMarker records request stats in Redis (skip /, /health*, favicon).
// A nil client turns it into a pass-through.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if rdb == nil || path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		lastReq := map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		}
		b, _ := json.Marshal(lastReq)
		ctx := context.Background()
		_, _ = rdb.Set(ctx, KeyLastReq, b, 0).Result()
		_, _ = rdb.Incr(ctx, KeyReqTotal).Result()

		err := c.Next()

		ms := time.Since(start).Milliseconds()
		_, _ = rdb.Incr(ctx, KeyResCount).Result()
		_, _ = rdb.IncrByFloat(ctx, KeyResTime, float64(ms)).Result()
		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		if status >= 500 {
			_, _ = rdb.Incr(ctx, KeyReqErrors).Result()
			entry := map[string]interface{}{
				"time":     time.Now(),
				"method":   c.Method(),
				"path":     c.OriginalURL(),
				"status":   status,
				"trace_id": GetTraceID(c),
			}
			if err != nil {
				entry["error"] = err.Error()
			}
			e, _ := json.Marshal(entry)
			_, _ = rdb.LPush(ctx, KeyErrorLog, e).Result()
			_, _ = rdb.LTrim(ctx, KeyErrorLog, 0, errorLogSize-1).Result()
		}
		return err
	}
}
