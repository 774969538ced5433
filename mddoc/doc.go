// Package mddoc parses Markdown into the canonical document model.
//
// The codec understands GitHub Flavored Markdown: headings, emphasis,
// inline code, strikethrough, links, images, ordered and unordered lists
// with nesting, tables, and thematic breaks. The result is a body-only
// [model.Document] suitable for diffing against a pristine tree.
package mddoc
