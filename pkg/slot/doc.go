// Package slot provides an index-stable arena with slot reuse.
//
// # Overview
//
// A [Table] maps small integer handles to values. Handles are indices into a
// growable slice of slots; removing a value leaves a tombstone ("hole") in
// place so that every other handle keeps pointing at the same value. The next
// insertion reuses the lowest free handle before the table grows.
//
// Two sizes describe a table:
//
//   - [Table.Bound]: one past the highest handle ever issued (live or not)
//   - [Table.Len]: the number of live values
//
// Len is always less than or equal to Bound. Bound only shrinks through
// [Table.Clear] and [Table.TrimTo].
//
// # Handle Aliasing
//
// Slots carry an occupancy bit but no generation counter. A handle that was
// removed and later reissued refers to the new value; callers must not keep
// handles across removals and expect them to keep their identity.
//
// # Concurrency
//
// Tables are not safe for concurrent use. Callers serialize access.
package slot
