// Package diagnostic provides structured errors, warnings and notes for
// configuration validation and fixture checks.
//
// Key capabilities:
//   - Broken and cyclic reference reports located by collection and path
//   - "did you mean" suggestions for missing keys
//   - Combining every error into a single error value
package diagnostic
