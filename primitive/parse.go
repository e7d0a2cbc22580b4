package primitive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrCategoryDisabled is returned when the input form needed for a kind is
// switched off in Options.Categories.
var ErrCategoryDisabled = errors.New("conversion category disabled")

// DefaultLayouts are tried in order when parsing time.Time values.
var DefaultLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// Options configures Parse.
type Options struct {
	Categories CategoryEnum
	Layouts    []string
	Location   *time.Location
}

// DefaultOptions enables every category with DefaultLayouts in UTC.
func DefaultOptions() Options {
	return Options{
		Categories: CategoryAll,
		Layouts:    DefaultLayouts,
		Location:   time.UTC,
	}
}

// Parse converts a trimmed string into a Go value of the given kind. The
// returned value always satisfies kind.Accepts.
func Parse(kind KindEnum, input string, opts Options) (any, error) {
	switch {
	case kind == KindString:
		return input, nil
	case kind.IsSigned():
		return parseSigned(kind, input, opts)
	case kind.IsUnsigned():
		return parseUnsigned(kind, input, opts)
	case kind.IsFloat():
		return parseFloat(kind, input, opts)
	}

	switch kind {
	case KindBool:
		return parseBool(input, opts)
	case KindTime:
		return parseTime(input, opts)
	case KindDuration:
		return parseDuration(input, opts)
	case KindUUID:
		id, err := uuid.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", input, err)
		}

		return id, nil
	default:
		return nil, fmt.Errorf("kind %v cannot be parsed from text", kind)
	}
}

func parseSigned(kind KindEnum, input string, opts Options) (any, error) {
	if !opts.Categories.Has(CategoryTextNumber) {
		return nil, fmt.Errorf("%s from text: %w", kind.TypeName(), ErrCategoryDisabled)
	}

	n, err := strconv.ParseInt(input, 10, kind.Bits())
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", kind.TypeName(), input, err)
	}

	switch kind {
	case KindInt8:
		return int8(n), nil
	case KindInt16:
		return int16(n), nil
	case KindInt32:
		return int32(n), nil
	case KindInt64:
		return n, nil
	default:
		return int(n), nil
	}
}

func parseUnsigned(kind KindEnum, input string, opts Options) (any, error) {
	if !opts.Categories.Has(CategoryTextNumber) {
		return nil, fmt.Errorf("%s from text: %w", kind.TypeName(), ErrCategoryDisabled)
	}

	n, err := strconv.ParseUint(input, 10, kind.Bits())
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", kind.TypeName(), input, err)
	}

	switch kind {
	case KindUint8:
		return uint8(n), nil
	case KindUint16:
		return uint16(n), nil
	case KindUint32:
		return uint32(n), nil
	case KindUint64:
		return n, nil
	default:
		return uint(n), nil
	}
}

func parseFloat(kind KindEnum, input string, opts Options) (any, error) {
	if !opts.Categories.Has(CategoryTextNumber) {
		return nil, fmt.Errorf("%s from text: %w", kind.TypeName(), ErrCategoryDisabled)
	}

	f, err := strconv.ParseFloat(input, kind.Bits())
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", kind.TypeName(), input, err)
	}

	if kind == KindFloat32 {
		return float32(f), nil
	}

	return f, nil
}

func parseBool(input string, opts Options) (any, error) {
	switch strings.ToLower(input) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if opts.Categories.Has(CategoryTextualBool) {
		switch strings.ToLower(input) {
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off":
			return false, nil
		}
	}

	if opts.Categories.Has(CategoryNumericBool) {
		switch input {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	}

	return nil, fmt.Errorf("invalid bool %q", input)
}

func parseTime(input string, opts Options) (any, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	if opts.Categories.Has(CategoryDatetime) {
		layouts := opts.Layouts
		if len(layouts) == 0 {
			layouts = DefaultLayouts
		}

		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, input, loc); err == nil {
				return t, nil
			}
		}
	}

	if opts.Categories.Has(CategoryTimestamp) {
		if sec, err := strconv.ParseInt(input, 10, 64); err == nil {
			return time.Unix(sec, 0).In(loc), nil
		}
	}

	return nil, fmt.Errorf("invalid date %q", input)
}

func parseDuration(input string, opts Options) (any, error) {
	if opts.Categories.Has(CategoryDuration) {
		if d, err := time.ParseDuration(input); err == nil {
			return d, nil
		}
	}

	if opts.Categories.Has(CategoryNanoseconds) {
		if n, err := strconv.ParseInt(input, 10, 64); err == nil {
			return time.Duration(n), nil
		}
	}

	if opts.Categories.Has(CategorySeconds) {
		if f, err := strconv.ParseFloat(input, 64); err == nil {
			return time.Duration(f * float64(time.Second)), nil
		}
	}

	return nil, fmt.Errorf("invalid duration %q", input)
}
