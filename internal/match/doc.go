// Package match ranks known property names by similarity to an unknown one,
// so that "property not found" diagnostics can offer "did you mean" hints.
//
// Key functions:
//   - Normalize: folds case and drops separators before comparison
//   - Distance: Levenshtein edit distance over runes
//   - Rank / Suggest: score and order candidate names
package match
