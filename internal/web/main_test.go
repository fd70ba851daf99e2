package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/defaults"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/gateway"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/store"
)

func newTestService(t *testing.T, boot bool) *Service {
	t.Helper()

	d := defaults.Load(defaults.Map(map[string]string{
		defaults.EnvModelName: "gpt-4",
		defaults.EnvModelList: "gpt-4,gpt-4o",
	}))

	gw := gateway.New(store.NewMemory(), d)
	if boot {
		_, err := gw.Boot(context.Background())
		require.NoError(t, err)
	}

	return New(&config.Config{Title: "test"}, gw)
}

func get(t *testing.T, s *Service, target string) (*http.Response, string) {
	t.Helper()

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestNewPanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { New(nil, gateway.New(store.NewMemory(), defaults.Load(nil))) })
	assert.Panics(t, func() { New(&config.Config{}, nil) })
}

func TestCheckAlive(t *testing.T) {
	s := newTestService(t, true)

	resp, body := get(t, s, CheckAlivePath)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	s.alive.Store(false)

	resp, _ = get(t, s, CheckAlivePath)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestCheckAliveBeforeBoot(t *testing.T) {
	s := newTestService(t, false)

	resp, _ := get(t, s, CheckAlivePath)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRootRedirect(t *testing.T) {
	s := newTestService(t, true)

	resp, _ := get(t, s, "/")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/settings", resp.Header.Get(fiber.HeaderLocation))
}

func TestSettingsPageRenders(t *testing.T) {
	s := newTestService(t, true)

	resp, body := get(t, s, "/settings")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Contains(t, body, `name="temperature"`)
	assert.Contains(t, body, `name="enableInDomain"`)
	assert.Contains(t, body, `<option value="gpt-4o">`)
	assert.Contains(t, body, "Search Strictness")
}

func TestSettingsAPI(t *testing.T) {
	s := newTestService(t, true)

	resp, body := get(t, s, "/api/settings")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"model":"gpt-4"`)
}

func TestMetrics(t *testing.T) {
	s := newTestService(t, true)

	resp, body := get(t, s, MetricsPath)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "advanced_settings_persist_failures_total")
}

func TestStaticFiles(t *testing.T) {
	s := newTestService(t, true)

	resp, body := get(t, s, "/static/css/app.css")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".panel")
}
