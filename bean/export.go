package bean

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Export converts a bean graph into plain maps and slices suitable for YAML
// or JSON encoding. Map keys are rendered as strings, unset list positions
// stay nil.
func Export(v any) any {
	switch x := v.(type) {
	case *Object:
		out := make(map[string]any, len(x.values))
		for name, value := range x.values {
			out[name] = Export(value)
		}

		return out
	case *List:
		out := make([]any, len(x.items))
		for i, item := range x.items {
			out[i] = Export(item)
		}

		return out
	case *Map:
		out := make(map[string]any, len(x.keys))
		for _, k := range x.keys {
			out[keyString(k)] = Export(x.values[k])
		}

		return out
	case time.Duration:
		return x.String()
	case uuid.UUID:
		return x.String()
	default:
		return v
	}
}

func keyString(k any) string {
	switch x := k.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
