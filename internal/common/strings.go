package common

// UnknownStr is the String() result for enum values outside their range.
const UnknownStr = "unknown"
