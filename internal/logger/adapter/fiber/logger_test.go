package fiber_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/logger"
	adapter "github.com/folio-cms/folio/internal/logger/adapter/fiber"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		targetPath string
		cfg        logger.Log
		want       *accessLine
	}{
		{
			name:       "get root",
			targetPath: "/",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "multiple slashes keep the raw path",
			targetPath: "//test",
			want: &accessLine{
				Status: fiber.StatusNotFound,
				URI:    "//test",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "Cannot GET //test",
			},
		},
		{
			name:       "query string is logged",
			targetPath: "/?test=123",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "handler error is logged with its status",
			targetPath: "/fail",
			want: &accessLine{
				Status: fiber.StatusTeapot,
				URI:    "/fail",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "short and stout",
			},
		},
		{
			name:       "check alive is skipped when disabled",
			targetPath: "/healthz",
			cfg:        logger.Log{DisableCheckAlive: true},
		},
		{
			name:       "check alive is logged by default",
			targetPath: "/healthz",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/healthz", Method: fiber.MethodGet, Host: "example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			app := fiber.New()
			app.Use(adapter.New(adapter.Config{Config: tt.cfg, Output: &buf}))
			app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendString("hello test") })
			app.Get("/healthz", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })
			app.Get("/fail", func(*fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.targetPath, nil))
			require.NoError(t, err)

			defer resp.Body.Close()

			if tt.want == nil {
				assert.Empty(t, buf.String())
				return
			}

			var got accessLine
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Error, got.Error)
			assert.Equal(t, "0.0.0.0", got.IP)
			assert.NotEmpty(t, resp.Header.Get("X-Performance"))
		})
	}
}

func TestNewDefaultConfigHasNoOutput(t *testing.T) {
	app := fiber.New()
	app.Use(adapter.New())
	app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
