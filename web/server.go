package web

import (
	"context"

	fiberzap "github.com/gofiber/contrib/v3/zap"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"param-binder/bean"
	"param-binder/binding"
	"param-binder/diagnostic"
	"param-binder/internal/config"
	"param-binder/typegraph"
)

// Module serves POST/GET /bind/:root. It needs a *config.Config and a
// *zap.Logger from the enclosing application.
var Module = fx.Module("web",
	fx.Provide(
		NewBinder,
		NewApp,
	),
	fx.Invoke(
		Routes,
		RegisterApp,
	),
)

// BindResponse is the body of a successful /bind answer.
type BindResponse struct {
	Root    string                  `json:"root"`
	Values  any                     `json:"values"`
	Skipped []string                `json:"skipped,omitempty"`
	Errors  []diagnostic.Diagnostic `json:"errors,omitempty"`
}

// NewBinder loads the configured schema and creates the binder.
func NewBinder(cfg *config.Config, logger *zap.Logger) (*binding.Binder, error) {
	graph, err := typegraph.Load(cfg.Schema)
	if err != nil {
		return nil, err
	}

	bcfg, err := cfg.Binding.BinderConfig(logger)
	if err != nil {
		return nil, err
	}

	return binding.New(graph, bcfg)
}

// NewApp creates the fiber app with request logging.
func NewApp(cfg *config.Config, logger *zap.Logger) (*fiber.App, error) {
	limit, err := cfg.HTTP.BodyLimitBytes()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:     "param-binder",
		ReadTimeout: cfg.HTTP.ReadTimeout,
		BodyLimit:   limit,
	})

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger,
	}))

	return app, nil
}

// Routes mounts the bind endpoint.
func Routes(app *fiber.App, b *binding.Binder, cfg *config.Config, logger *zap.Logger) {
	mw := New(b, Config{
		FailOnError: cfg.HTTP.FailOnError,
		LocalsKey:   cfg.HTTP.ResultLocals,
		Logger:      logger,
	})

	app.All("/bind/:root", mw, func(c fiber.Ctx) error {
		res, ok := Result(c, cfg.HTTP.ResultLocals)
		if !ok {
			return fiber.ErrInternalServerError
		}

		return c.JSON(BindResponse{
			Root:    res.Root.Type().String(),
			Values:  bean.Export(res.Root),
			Skipped: res.Skipped,
			Errors:  res.Diagnostics.Errors,
		})
	})
}

// RegisterApp starts and stops the server with the fx lifecycle. Nothing is
// started when no address is configured.
func RegisterApp(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, logger *zap.Logger) {
	if cfg.HTTP.Addr == "" {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))

				if err := app.Listen(cfg.HTTP.Addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					logger.Error("failed to start fiber app", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
