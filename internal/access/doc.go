// Package access decides which views a caller may open.
//
// A Gate is built once from a Table that sorts view identifiers into four
// disjoint classes. Requests for views that are not listed anywhere are
// denied. The gate is read-only after construction and safe for concurrent
// use.
package access
