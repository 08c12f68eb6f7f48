// Package semequal is a semantic structural comparator for JSON-like
// documents. It's intended for tests: assert that a computed document is
// equivalent to an expected fixture, & when it isn't, explain exactly where
// and how the two diverge
//
// Comparing serialized text line by line breaks as soon as an encoder
// reorders object keys or changes whitespace. semequal instead compares
// document trees:
//
//   - objects are equal when they hold the same keys with equal values, in any order
//   - arrays are equal when they hold equal elements in the same order
//   - numbers are equal when they have the same value, so 1 and 1.0 match
//   - strings & booleans must match exactly, no date or case normalization is done
//
// Instead of operating on interface{} values, semequal builds its own tree of
// *Node values, which keep object keys in document order for rendering and
// numbers as decimal literals so no precision is lost. Trees come from
// ParseJSON, ParseYAML or FromValue
//
// Comparison is fail-fast: Compare returns the first difference it finds as a
// *Failure. Render turns a failure into a report holding both documents
// pretty-printed alongside a description of the difference.
//
// Paths use dotted / bracketed notation from the document root, eg.
// a.b[2].c. An ExclusionSet lists paths to skip; a path matches only when it
// is exactly equal to the path of a node, subtree included
package semequal
