// Package coerce turns request parameter strings into typed values.
//
// Converters are looked up in a Registry by the exact type string first
// ("map[string]int64", "Box[int]") and then by the raw type name ("Box",
// "int64"). Strings need no converter. Slice and array targets without a
// converter of their own are converted element by element into a bean.List.
package coerce
