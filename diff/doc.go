// Package diff aligns the element sequences of two document sections.
//
// Alignment is coarse by design: each element is reduced to a signature
// fingerprint ([Signature]) and the two signature sequences are run through
// a longest-common-subsequence diff, yielding ordered change [Block] values
// classified as equal, insert, delete, or replace runs.
//
// An equal block only guarantees signature equality. Callers that need to
// know whether two paired elements are truly identical (style-only
// differences, nested cell content) must re-check with [Match], the deep
// equality predicate. [Identical] applies the same predicate pairwise over
// two whole sections as a fast path for emitting nothing at all.
package diff
