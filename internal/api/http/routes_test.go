package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

func newTestApp() (*fiber.App, *tank.Service) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	svc := tank.NewService(tank.DefaultRig(), "marker_0")
	RegisterRoutes(app, svc)
	return app, svc
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out), string(body))
	}
	return resp.StatusCode, out
}

func TestLatestReading_NotFoundBeforeFirstSnapshot(t *testing.T) {
	app, svc := newTestApp()

	code, _ := get(t, app, "/api/v1/readings/latest")
	assert.Equal(t, http.StatusNotFound, code)

	svc.HandleSnapshot(&tank.Snapshot{WaterFlow: 10.0, WaterLevel: 1.0, Temperature: 20.0})

	code, body := get(t, app, "/api/v1/readings/latest")
	require.Equal(t, http.StatusOK, code)
	reading := body["reading"].(map[string]any)
	assert.Equal(t, 10.0, reading["flowRate"])
	assert.Equal(t, "marker_0", body["marker"])
}

func TestPhysics(t *testing.T) {
	app, svc := newTestApp()
	svc.HandleSnapshot(&tank.Snapshot{WaterFlow: 10.0, WaterLevel: 1.0, Temperature: 20.0})

	code, body := get(t, app, "/api/v1/physics")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body, 5)

	pressure := body[tank.QuantityHydrostaticPressure].(map[string]any)
	assert.InDelta(t, 9810.0, pressure["value"], 1e-9)
	assert.Equal(t, "Pa", pressure["unit"])

	code, body = get(t, app, "/api/v1/physics/reynolds")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Turbulento", body["regime"])

	code, body = get(t, app, "/api/v1/physics/torque")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "unknown quantity: torque", body["message"])
}

func TestPhysics_InfiniteFillTimeIsNull(t *testing.T) {
	app, _ := newTestApp()

	code, body := get(t, app, "/api/v1/physics/fillTime")
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["value"])
	assert.Equal(t, true, body["infinite"])
	assert.Equal(t, "tempo infinito", body["formatted"])
}

func TestHistoryValidation(t *testing.T) {
	app, svc := newTestApp()
	for i := 0; i < 3; i++ {
		svc.HandleSnapshot(&tank.Snapshot{WaterLevel: float64(i) / 10})
	}

	code, _ := get(t, app, "/api/v1/history?metric=pressure")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := get(t, app, "/api/v1/history?metric=level")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "level", body["metric"])
	assert.Len(t, body["points"], 3)

	code, body = get(t, app, "/api/v1/history")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body, 3)
}

func TestDashboardTankAndStatus(t *testing.T) {
	app, svc := newTestApp()

	code, body := get(t, app, "/api/v1/status")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "connecting", body["state"])

	svc.HandleSnapshot(&tank.Snapshot{WaterFlow: 60.0, WaterLevel: 0.5})
	for i := 0; i < 45; i++ {
		svc.Tick()
	}

	code, body = get(t, app, "/api/v1/tank")
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 45.0, body["percentage"], 1e-9)
	band := body["band"].(map[string]any)
	assert.Equal(t, "#22c55e", band["color"])

	code, body = get(t, app, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["hasData"])
	assert.Contains(t, body, "physics")
	assert.Contains(t, body, "sensors")
	assert.Contains(t, body, "fluid")
	status := body["status"].(map[string]any)
	assert.Equal(t, "connected", status["state"])
}
