package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"param-binder/internal/config"
)

func TestModule(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Schema = filepath.Join("..", "examples", "maps.yaml")
	cfg.HTTP.Addr = ""

	var app *fiber.App

	fxApp := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(cfg, zap.NewNop()),
		Module,
		fx.Populate(&app),
	)
	defer fxApp.RequireStart().RequireStop()

	res, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/bind/MapBindingTests?mapStringLong[a]=1&timeout=2s&mapLongDate[x]=1/1/2010", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var body struct {
		Root   string         `json:"root"`
		Values map[string]any `json:"values"`
		Errors []struct {
			Code string `json:"code"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "MapBindingTests", body.Root)
	assert.Equal(t, map[string]any{"a": float64(1)}, body.Values["mapStringLong"])
	assert.Equal(t, "2s", body.Values["timeout"])
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "conversion_failed", body.Errors[0].Code)
}

func TestModuleFailsOnBadSchema(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Schema = filepath.Join(t.TempDir(), "missing.yaml")

	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, zap.NewNop()),
		Module,
	)
	require.Error(t, fxApp.Err())
}
