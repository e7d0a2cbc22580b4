package web

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"param-binder/binding"
	"param-binder/diagnostic"
)

// DefaultLocalsKey is the request local the Result is stored under.
const DefaultLocalsKey = "binding"

// Config configures the middleware.
type Config struct {
	// Root is the root class to bind onto. When empty the ":root" route
	// parameter is used.
	Root string
	// FailOnError answers 400 with the diagnostics instead of calling the
	// next handler when any parameter failed.
	FailOnError bool
	// LocalsKey overrides DefaultLocalsKey.
	LocalsKey string
	Logger    *zap.Logger
}

// ErrorResponse is the body of a 400 answer.
type ErrorResponse struct {
	Root   string                  `json:"root"`
	Errors []diagnostic.Diagnostic `json:"errors"`
}

// New returns a middleware binding every request parameter onto a new
// instance of the root class.
func New(b *binding.Binder, cfg Config) fiber.Handler {
	if cfg.LocalsKey == "" {
		cfg.LocalsKey = DefaultLocalsKey
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c fiber.Ctx) error {
		root := cfg.Root
		if root == "" {
			root = c.Params("root")
		}

		res, err := b.BindNew(root, Params(c))
		if err != nil {
			cfg.Logger.Debug("cannot bind request", zap.String("root", root), zap.Error(err))
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		c.Locals(cfg.LocalsKey, res)

		if cfg.FailOnError && !res.OK() {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Root:   root,
				Errors: res.Diagnostics.Errors,
			})
		}

		return c.Next()
	}
}

// Result returns the Result stored by the middleware.
func Result(c fiber.Ctx, key string) (*binding.Result, bool) {
	if key == "" {
		key = DefaultLocalsKey
	}

	res, ok := c.Locals(key).(*binding.Result)

	return res, ok
}

// Params collects query, urlencoded form and multipart form values, in that
// order.
func Params(c fiber.Ctx) url.Values {
	values := url.Values{}

	add := func(k, v []byte) {
		values.Add(string(k), string(v))
	}

	c.Request().URI().QueryArgs().VisitAll(add)
	c.Request().PostArgs().VisitAll(add)

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if form, err := c.MultipartForm(); err == nil {
			for k, vs := range form.Value {
				values[k] = append(values[k], vs...)
			}
		}
	}

	return values
}
