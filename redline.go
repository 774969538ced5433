// Package redline diffs two rich-text document trees and synthesizes the
// ordered batch-update operations that transform one into the other.
//
// Basic usage:
//
//	operations, err := redline.Compare(pristine, current).Operations()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	requests, err := redline.Compare(pristine, current).
//	    TabID("t.0").
//	    ExcludeHeaders().
//	    ExcludeFooters().
//	    Requests()
//
// For advanced use cases, the lower-level model, diff, patch, and ops
// packages are also available.
package redline

import (
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ops"
	"github.com/tsawler/redline/patch"
	"github.com/tsawler/redline/preview"
)

// Compare pairs a pristine document with its edited counterpart and
// returns a Comparison for fluent configuration.
//
// Example:
//
//	operations, err := redline.Compare(pristine, current).Operations()
func Compare(pristine, current *model.Document) *Comparison {
	return &Comparison{
		pristine: pristine,
		current:  current,
		options:  defaultOptions(),
	}
}

// Comparison provides a fluent interface for diffing two documents.
// Each configuration method returns a new Comparison instance, making it
// safe for concurrent use and allowing method chaining.
type Comparison struct {
	pristine *model.Document
	current  *model.Document

	// Configuration
	options CompareOptions
}

// clone creates a copy of the Comparison with a copy of its options.
// This ensures immutability - each chain method returns a new instance.
func (c *Comparison) clone() *Comparison {
	return &Comparison{
		pristine: c.pristine,
		current:  c.current,
		options:  c.options.clone(),
	}
}

// TabID targets every emitted operation at the given document tab.
// An empty id falls back to the tab recorded on the documents.
func (c *Comparison) TabID(id string) *Comparison {
	nc := c.clone()
	nc.options.tabID = id
	return nc
}

// ExcludeHeaders leaves header segments out of the comparison.
func (c *Comparison) ExcludeHeaders() *Comparison {
	nc := c.clone()
	nc.options.excludeHeaders = true
	return nc
}

// ExcludeFooters leaves footer segments out of the comparison.
func (c *Comparison) ExcludeFooters() *Comparison {
	nc := c.clone()
	nc.options.excludeFooters = true
	return nc
}

// ExcludeFootnotes leaves footnote segments out of the comparison.
func (c *Comparison) ExcludeFootnotes() *Comparison {
	nc := c.clone()
	nc.options.excludeFootnotes = true
	return nc
}

// Operations runs the diff and returns the ordered operation list.
// Replaying the operations in order against the pristine document yields
// the current document.
func (c *Comparison) Operations() ([]ops.Operation, error) {
	return patch.DiffOptions(c.pristine, c.current, patch.Options{
		TabID:         c.options.tabID,
		SkipHeaders:   c.options.excludeHeaders,
		SkipFooters:   c.options.excludeFooters,
		SkipFootnotes: c.options.excludeFootnotes,
	})
}

// Requests runs the diff and serializes the result to wire-format batch
// update request objects.
func (c *Comparison) Requests() ([]ops.Request, error) {
	list, err := c.Operations()
	if err != nil {
		return nil, err
	}
	return ops.Serialize(list)
}

// Changed reports whether the two documents differ at all.
func (c *Comparison) Changed() (bool, error) {
	list, err := c.Operations()
	if err != nil {
		return false, err
	}
	return len(list) > 0, nil
}

// Preview renders a human-readable change report. The report is for
// humans only; it carries no offsets and cannot drive replay.
func (c *Comparison) Preview() string {
	return preview.Render(preview.Changes(c.pristine, c.current))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	operations := redline.Must(redline.Compare(pristine, current).Operations())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
