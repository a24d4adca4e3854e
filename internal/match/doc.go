// Package match ranks fixture keys by similarity so that lookups of a
// missing key can suggest what the caller probably meant.
//
// Key functions:
//   - NormalizeIdent: folds case and drops separators
//   - Levenshtein: computes edit distance between keys
//   - Suggest: returns the closest candidate keys above a similarity floor
package match
