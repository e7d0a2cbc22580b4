package primitive

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindUUID

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// names maps type names as written in schema type expressions to kinds.
var names = map[string]KindEnum{
	"int":           KindInt,
	"int8":          KindInt8,
	"int16":         KindInt16,
	"int32":         KindInt32,
	"rune":          KindInt32,
	"int64":         KindInt64,
	"uint":          KindUint,
	"uint8":         KindUint8,
	"byte":          KindUint8,
	"uint16":        KindUint16,
	"uint32":        KindUint32,
	"uint64":        KindUint64,
	"float32":       KindFloat32,
	"float64":       KindFloat64,
	"bool":          KindBool,
	"string":        KindString,
	"time.Time":     KindTime,
	"time.Duration": KindDuration,
	"uuid.UUID":     KindUUID,
}

var typeNames = [...]string{
	KindInt:      "int",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint:     "uint",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindBool:     "bool",
	KindString:   "string",
	KindTime:     "time.Time",
	KindDuration: "time.Duration",
	KindUUID:     "uuid.UUID",
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	case KindFloat32:
		return 32
	case KindFloat64:
		return 64
	}
}

// TypeName returns the canonical schema name of the kind, e.g. "time.Time".
func (k KindEnum) TypeName() string {
	if !k.IsValid() {
		return ""
	}

	return typeNames[k]
}

// FromName returns the kind for a schema type name, or 0 if the name is not
// a primitive type.
func FromName(name string) KindEnum {
	return names[name]
}

// Names returns every type name FromName recognizes, aliases included,
// sorted.
func Names() []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}

	slices.Sort(out)

	return out
}

// FromValue returns the kind of a Go value produced by Parse, or 0.
func FromValue(v any) KindEnum {
	switch v.(type) {
	default:
		return 0
	case int:
		return KindInt
	case int8:
		return KindInt8
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case uint:
		return KindUint
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case bool:
		return KindBool
	case string:
		return KindString
	case time.Time:
		return KindTime
	case time.Duration:
		return KindDuration
	case uuid.UUID:
		return KindUUID
	}
}

// Accepts reports whether v is a Go value of exactly this kind.
func (k KindEnum) Accepts(v any) bool {
	return k.IsValid() && FromValue(v) == k
}
