// Package preview renders a coarse, human-readable report of the
// differences between two documents.
//
// The report works on flattened plain text, one line per paragraph, and
// groups changes into [Hunk] values. It exists for humans reviewing a
// pending synchronization; it carries no offsets and must never be used
// to drive replay. Replay is the patch package's job.
package preview
