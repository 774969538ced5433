// Package ops defines the edit operations the patch engine emits and their
// serialization to the remote document API's batch-update wire format.
//
// An [Operation] is a flat internal record: a kind, target indices, a
// payload, and the ordering metadata (change group, post-insert flag,
// generation counter) the engine sorts by. [Serialize] maps each operation
// to exactly one [Request], the JSON-shaped union object the remote API
// consumes. Serialization is stateless and total: an unrecognized kind is a
// programming error and fails with [ErrUnknownOperation] rather than being
// dropped.
//
// Operations whose segment does not exist until an earlier request in the
// same list has executed (a header created by createHeader, for example)
// carry ForwardSegment; a batch coordinator must split the list at such
// points and substitute the resolved identifier before replay.
package ops
