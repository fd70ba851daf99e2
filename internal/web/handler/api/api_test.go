package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/gateway"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/store"
)

func testDefaults() settings.Defaults {
	return settings.Defaults{
		Model:            "gpt-4",
		Models:           []string{"gpt-4", "gpt-4o"},
		Temperature:      0.7,
		TopP:             0.95,
		SearchStrictness: 3,
		TopK:             5,
		Bounds: settings.Bounds{
			Temperature:      settings.Range{Low: 0, High: 1},
			TopP:             settings.Range{Low: 0.1, High: 1},
			SearchStrictness: settings.Range{Low: 1, High: 10},
			TopK:             settings.Range{Low: 1, High: 40},
		},
	}
}

func newTestApp(t *testing.T, boot bool) (*fiber.App, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	gw := gateway.New(mem, testDefaults())

	if boot {
		_, err := gw.Boot(context.Background())
		require.NoError(t, err)
	}

	app := fiber.New()
	s := &Service{}
	s.Init(app, &config.Config{}, gw)

	return app, mem
}

func do(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodePayload(t *testing.T, resp *http.Response) Payload {
	t.Helper()

	var p Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))

	return p
}

func TestGet(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp := do(t, app, http.MethodGet, Path, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	p := decodePayload(t, resp)
	assert.Equal(t, "gpt-4", p.Settings.Model)
	assert.InDelta(t, 0.7, p.Settings.Temperature, 1e-9)
	assert.Equal(t, []string{"gpt-4", "gpt-4o"}, p.Models)
	assert.Equal(t, settings.Range{Low: 0.1, High: 1}, p.Settings.Bounds.TopP)

	require.Len(t, p.Fields, 6)

	byKey := map[string]Field{}
	for _, f := range p.Fields {
		byKey[f.Key] = f
	}

	temp := byKey["temperature"]
	assert.Equal(t, "float", temp.Kind)
	assert.InDelta(t, 0.01, temp.Step, 1e-9)
	require.NotNil(t, temp.Low)
	require.NotNil(t, temp.High)
	assert.InDelta(t, 0, *temp.Low, 1e-9)
	assert.InDelta(t, 1, *temp.High, 1e-9)

	topK := byKey["topK"]
	assert.Equal(t, "int", topK.Kind)
	assert.InDelta(t, 1, topK.Step, 1e-9)

	model := byKey["model"]
	assert.Nil(t, model.Low)
	assert.Zero(t, model.Step)
}

func TestGetNotReady(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp := do(t, app, http.MethodGet, Path, "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestPut(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		body  string
		check func(t *testing.T, v settings.View)
	}{
		{
			name: "temperature",
			key:  "temperature",
			body: `{"value":0.2}`,
			check: func(t *testing.T, v settings.View) {
				assert.InDelta(t, 0.2, v.Temperature, 1e-9)
			},
		},
		{
			name: "out of bounds is kept",
			key:  "topK",
			body: `{"value":99}`,
			check: func(t *testing.T, v settings.View) {
				assert.Equal(t, 99, v.TopK)
			},
		},
		{
			name: "numeric string",
			key:  "searchStrictness",
			body: `{"value":"7"}`,
			check: func(t *testing.T, v settings.View) {
				assert.Equal(t, 7, v.SearchStrictness)
			},
		},
		{
			name: "non numeric becomes zero",
			key:  "topP",
			body: `{"value":"abc"}`,
			check: func(t *testing.T, v settings.View) {
				assert.InDelta(t, 0, v.TopP, 1e-9)
			},
		},
		{
			name: "bool from string",
			key:  "enableInDomain",
			body: `{"value":"true"}`,
			check: func(t *testing.T, v settings.View) {
				assert.True(t, v.EnableInDomain)
			},
		},
		{
			name: "false",
			key:  "enableInDomain",
			body: `{"value":false}`,
			check: func(t *testing.T, v settings.View) {
				assert.False(t, v.EnableInDomain)
			},
		},
		{
			name: "unlisted model",
			key:  "model",
			body: `{"value":"my-deployment"}`,
			check: func(t *testing.T, v settings.View) {
				assert.Equal(t, "my-deployment", v.Model)
			},
		},
		{
			name: "empty model keeps current",
			key:  "model",
			body: `{"value":""}`,
			check: func(t *testing.T, v settings.View) {
				assert.Equal(t, "gpt-4", v.Model)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, mem := newTestApp(t, true)

			resp := do(t, app, http.MethodPut, Path+"/"+tc.key, tc.body)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			p := decodePayload(t, resp)
			tc.check(t, p.Settings)

			blob, ok := mem.Read(context.Background())
			require.True(t, ok, "edit is written through")
			assert.Equal(t, settings.SchemaCurrent, blob.Schema())
		})
	}
}

func TestPutRejected(t *testing.T) {
	testCases := []struct {
		name   string
		boot   bool
		key    string
		body   string
		status int
	}{
		{name: "unknown key", boot: true, key: "frequencyPenalty", body: `{"value":1}`, status: fiber.StatusBadRequest},
		{name: "missing value", boot: true, key: "topK", body: `{}`, status: fiber.StatusBadRequest},
		{name: "broken body", boot: true, key: "topK", body: `{"value":`, status: fiber.StatusBadRequest},
		{name: "not booted", boot: false, key: "topK", body: `{"value":3}`, status: fiber.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, mem := newTestApp(t, tc.boot)

			resp := do(t, app, http.MethodPut, Path+"/"+tc.key, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)

			var e ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
			assert.False(t, e.Success)
			assert.NotEmpty(t, e.Message)

			_, written := mem.Read(context.Background())
			assert.False(t, written)
		})
	}
}
