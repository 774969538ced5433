// Package model provides the canonical in-memory representation of a
// rich-text document used for diffing.
//
// Both the pristine (last fetched) and the current (locally edited) copy of
// a document are expressed as a [Document] before any comparison happens.
// The model is a plain value tree: diffing never mutates it, and a tree is
// built, diffed, and discarded within a single pass.
//
// # Document Structure
//
// A [Document] holds an ordered list of [Section] values. Each section is an
// independently addressed segment of the live document: the body, a header,
// a footer, or a footnote. Section content is an ordered list of [Element]
// values; the concrete types are:
//
//   - [Paragraph] - a run sequence with a named style and optional bullet
//   - [Table] - a dense grid of [TableCell]
//   - [SpecialElement] - standalone structural units (page break, etc.)
//
// # UTF-16 Length Calculus
//
// The remote document API addresses content by absolute UTF-16 code-unit
// offsets, so every element knows its own length in those units, computed
// by [UTF16Len] and the Length methods. A paragraph always contributes its
// text plus one trailing structural newline; an empty paragraph is exactly
// one unit. Atomic marker runs (images, page breaks, mentions) are one unit
// regardless of any placeholder text.
//
// Segment addressing starts at index 1 for the body (index 0 is an
// immutable leading section break) and at index 0 for every other segment
// kind. [Section.Ranges] walks the content and attaches absolute start/end
// offsets to each top-level element; [Section.CheckIndexFidelity] verifies
// the computed end against an asserted one supplied by the codec that built
// the tree.
package model
