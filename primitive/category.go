package primitive

import (
	"fmt"
	"strings"
)

// CategoryEnum selects which textual forms Parse accepts for a kind.
type CategoryEnum int

const (
	CategoryTextNumber  CategoryEnum = 1 << iota // "42", "-7", "1.5": textual number representation
	CategoryTextualBool                          // yes, no, on, off, y, n in addition to true/false
	CategoryNumericBool                          // 0, 1 representation of boolean values
	CategoryDatetime                             // layouts from Options.Layouts -> time.Time
	CategoryTimestamp                            // integer Unix seconds -> time.Time
	CategoryDuration                             // "2h45m" -> time.Duration
	CategoryNanoseconds                          // integer nanoseconds -> time.Duration
	CategorySeconds                              // float seconds -> time.Duration

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

var categoryNames = map[string]CategoryEnum{
	"text_number":  CategoryTextNumber,
	"textual_bool": CategoryTextualBool,
	"numeric_bool": CategoryNumericBool,
	"datetime":     CategoryDatetime,
	"timestamp":    CategoryTimestamp,
	"duration":     CategoryDuration,
	"nanoseconds":  CategoryNanoseconds,
	"seconds":      CategorySeconds,
	"all":          CategoryAll,
}

// Has reports whether every category in other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

// ParseCategories combines category names such as "textual_bool" or "all".
// An empty list yields CategoryAll.
func ParseCategories(list []string) (CategoryEnum, error) {
	if len(list) == 0 {
		return CategoryAll, nil
	}

	var out CategoryEnum

	for _, name := range list {
		c, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return CategoryNone, fmt.Errorf("unknown conversion category %q", name)
		}

		out |= c
	}

	return out, nil
}
