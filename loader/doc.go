// Package loader composes fixture loaders.
//
// Cached memoises parsed documents so every collection is parsed once per
// run. Chain routes each collection name to the first loader holding it,
// which lets a spreadsheet reference a JSON collection and the other way
// around.
//
// Format loaders live in the subpackages: memory, filesystem, properties,
// spreadsheet and sqlite.
package loader
