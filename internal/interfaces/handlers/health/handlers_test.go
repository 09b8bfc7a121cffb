package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"leaseos-backend/internal/infrastructure/database/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthHandlers(t *testing.T) *Handlers {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Handlers{
		Rdb:            rdb,
		DB:             dbtest.Open(t),
		HealthAdminKey: "test-admin-key",
	}
}

func TestReset_Unauthorized(t *testing.T) {
	h := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, "Unauthorized", out["error"].(map[string]interface{})["message"])

	resp2, err := app.Test(httptest.NewRequest("GET", "/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp2.StatusCode)
}

func TestReset_Success(t *testing.T) {
	h := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/reset", h.Reset)

	ctx := context.Background()
	require.NoError(t, h.Rdb.Set(ctx, "health:global:req_total", "5", 0).Err())
	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=test-admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = h.Rdb.Get(ctx, "health:global:req_total").Result()
	assert.Error(t, err)
	_, err = h.Rdb.Get(ctx, "health:global:start_time").Result()
	assert.NoError(t, err)
}

func TestReset_NoRedis(t *testing.T) {
	h := &Handlers{HealthAdminKey: "k"}
	app := fiber.New()
	app.Get("/reset", h.Reset)
	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=k", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestJSON_ReturnsStructure(t *testing.T) {
	h := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "leaseos-api", out["service"])
	assert.Equal(t, "ok", out["status"])
	assert.Contains(t, out, "runtime")
	assert.Contains(t, out, "traffic")
	inv := out["inventory"].(map[string]interface{})
	assert.EqualValues(t, 0, inv["buildings"])
	deps := out["dependencies"].(map[string]interface{})
	assert.Equal(t, "connected", deps["database"].(map[string]interface{})["status"])
	assert.Equal(t, "connected", deps["redis"].(map[string]interface{})["status"])
}

func TestErrors_ReturnsArray(t *testing.T) {
	h := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/errors", h.Errors)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var arr []interface{}
	require.NoError(t, json.Unmarshal(body, &arr))
	assert.Empty(t, arr)

	ctx := context.Background()
	h.Rdb.LPush(ctx, "health:global:error_log", `{"time":"2026-01-01T12:00:00Z","path":"/api/leases","method":"POST","error":"test"}`)
	resp2, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	body2, _ := io.ReadAll(resp2.Body)
	var arr2 []map[string]interface{}
	require.NoError(t, json.Unmarshal(body2, &arr2))
	assert.Len(t, arr2, 1)
	assert.Equal(t, "test", arr2[0]["error"])
}

func TestDashboard_ReturnsHTML(t *testing.T) {
	h := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/", h.Dashboard)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	html := string(body)
	assert.Contains(t, html, "LeaseOS")
	assert.Contains(t, html, "All Systems Operational")
	assert.Contains(t, html, "/health/json")
	assert.Contains(t, html, "/health/errors")
}
