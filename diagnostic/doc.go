// Package diagnostic provides structured, non-fatal errors and warnings for
// schema validation and bind passes.
//
// Key capabilities:
//   - Per-parameter binding errors with the rejected input
//   - Target type and reason code for error renderers
//   - "did you mean" suggestions for unknown property names
//   - Merging diagnostics from several passes
package diagnostic
