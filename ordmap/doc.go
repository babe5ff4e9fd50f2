// Package ordmap implements an insertion-ordered, string-keyed map of int
// values.
//
// Entries are kept in a doubly-linked list in the order their keys were first
// put, with a side index from key to entry. Putting an existing key updates
// its value in place and never moves it. Keys are copied into owned storage by
// a KeyBuffer, and every construction point reserves its bytes from an
// Allocator so that storage exhaustion surfaces as an AllocationError instead
// of tearing the map down.
//
// A map is not safe for concurrent use.
package ordmap
