package binding

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"param-binder/coerce"
	"param-binder/primitive"
)

// DefaultMaxIndex bounds list indices so that a single parameter cannot make
// a list grow without limit.
const DefaultMaxIndex = 1000

// DefaultIgnored names request parameters that carry framework state rather
// than bean properties.
var DefaultIgnored = []string{"_sourcePage", "_eventName"}

// Config holds the binder configuration.
type Config struct {
	// Logger receives per-parameter debug logs. Defaults to a no-op logger.
	Logger *zap.Logger
	// Registry holds the converters. Defaults to coerce.DefaultRegistry(Primitive).
	Registry *coerce.Registry
	// Primitive configures the default converters when Registry is nil.
	Primitive primitive.Options
	// Validator checks property validate tags. Defaults to validator.New().
	Validator *validator.Validate
	// MaxIndex is the largest accepted list index. Zero means
	// DefaultMaxIndex, a negative value removes the limit.
	MaxIndex int
	// MaxValueSize rejects longer values in bytes (0 = unlimited).
	MaxValueSize int
	// Ignore lists parameter names that are never bound. Nil means
	// DefaultIgnored.
	Ignore []string
}

// DefaultConfig returns the default binder configuration.
func DefaultConfig() Config {
	return Config{
		Logger:    zap.NewNop(),
		Primitive: primitive.DefaultOptions(),
		Validator: validator.New(),
		MaxIndex:  DefaultMaxIndex,
		Ignore:    DefaultIgnored,
	}
}
