// Package node provides the uniform in-memory document every collection is
// parsed into, whatever its backing format.
//
// A Node is one of:
//   - an object: ordered string keys mapped to nodes, keys unique per object
//   - an array: ordered sequence of nodes
//   - a scalar: string, number, bool or null
//
// Numbers keep their source text so that "1.50" read from a fixture file is
// served back as "1.50". String returns the canonical serialization (compact
// JSON, keys in document order); Equal is the matching structural comparison.
package node
