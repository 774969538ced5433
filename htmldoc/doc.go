// Package htmldoc parses HTML into the canonical document model.
//
// The reader handles the common document subset of HTML: headings,
// paragraphs, ordered and unordered lists with nesting, tables with
// row and column spans, preformatted blocks, blockquotes, inline
// styling (bold, italic, underline, strikethrough, code, links) and
// images. Input in a non-UTF-8 encoding is converted automatically.
// The result is a body-only [model.Document] suitable for diffing
// against a pristine tree.
package htmldoc
