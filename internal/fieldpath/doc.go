// Package fieldpath parses the dotted paths used to address fixture values.
//
// # Path Syntax
//
// Paths support:
//   - Simple keys: "password"
//   - Dotted keys: "Common.password"
//   - Array items: "array[0]", "users[1].name"
//
// Segments are separated by "." with no escaping, so keys that contain a
// literal dot cannot be addressed. A segment that does not have the exact
// form name[digits] is a plain key, "a[x]" included. The empty path has no
// segments and addresses the current node itself.
package fieldpath
