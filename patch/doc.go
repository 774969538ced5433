// Package patch turns the difference between two document trees into an
// ordered list of edit operations.
//
// [Diff] is a pure function from (pristine, current) to operations: no
// I/O, no shared state, and deterministic output. Replaying the returned
// operations strictly in order against the pristine document produces the
// current one.
//
// # Ordering
//
// Every operation's indices must be valid against the document state that
// exists immediately before that operation runs, even though deletes and
// inserts shift every later offset. The engine therefore processes change
// blocks in reverse document order, tagging each processed block with a
// monotonically increasing change group, so that groups applied in
// ascending order always edit regions whose offsets earlier groups have
// not disturbed. Within one group operations follow a four-tier priority:
// paragraph-style updates on still-present ranges first, then deletes by
// descending start, then inserts by ascending target, then everything
// else (including style and fill operations on freshly inserted content,
// ordered by ascending target position). Remaining ties fall back to a
// generation counter threaded through the emitter.
//
// # Structural rules
//
// A segment's final structural newline is immutable and a segment can
// never lose its last paragraph: deletes that would reach the final
// newline are shifted or truncated to spare it, deletes that would empty
// an already-empty segment are dropped, and appending past a trailing
// paragraph with a stale named style first resets that style so the new
// content does not inherit it.
package patch
