// Package fixture navigates loaded test-data collections by dotted path.
//
// A Provider is an immutable handle on one node of a collection. Get descends
// by path and returns a new Provider; Value materializes the leaf in scope as
// a string.
//
// # Paths
//
// Paths are dot separated keys, optionally indexed: "Common.password",
// "users[0].name". Keys containing a literal dot cannot be addressed. The
// empty path addresses the node in scope.
//
// # References
//
// A leaf object of the form
//
//	{"value": {"collection": "DataBlocks", "path": "Common.password"}}
//
// points into another collection. Get follows references met in the middle
// of a path, Value follows the reference in scope, and Reference follows it
// explicitly. A chain of references that returns to the node it started from
// fails with ErrCyclicReference; a chain longer than the configured depth
// fails with ErrReferenceDepthExceeded.
//
// # Generators
//
// A Generator attached with WithGenerator or ApplyGenerator rewrites every
// value materialized by Value. It receives the logical path of the value,
// which lets it memoise per path in a cache it owns.
//
// # Errors
//
// Every failure is an *Error unwrapping to one of the Err* kinds.
package fixture
