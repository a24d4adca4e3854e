// Package tree builds documents from flat key/value sources.
//
// Properties files and spreadsheet rows address values with dotted keys;
// Builder turns them into the nested objects and arrays the fixture engine
// navigates.
package tree
