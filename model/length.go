package model

import (
	"errors"
	"fmt"
)

// Fidelity errors.
var (
	// ErrIndexFidelity indicates that a section's computed length does not
	// match the end index asserted by the codec that produced the tree.
	// Offsets derived from such a tree would corrupt the remote document,
	// so diffing fails loudly instead.
	ErrIndexFidelity = errors.New("model: computed segment end does not match asserted end index")
)

// UTF16Len returns the length of s in UTF-16 code units: code points above
// 0xFFFF need a surrogate pair and contribute two units, everything else
// contributes one. This must stay bit-exact with the remote API's own
// indexing.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Ranged is a section-level element annotated with its absolute start and
// end offsets within its segment. End is exclusive.
type Ranged struct {
	Element Element
	Start   int
	End     int
}

// Ranges walks the section's content once, accumulating lengths from the
// section's starting offset, and returns each element with its absolute
// range. This is the memoized length pass the differ runs against.
func (s *Section) Ranges() []Ranged {
	out := make([]Ranged, 0, len(s.Content))
	idx := s.StartIndex()
	for _, el := range s.Content {
		n := el.Length()
		out = append(out, Ranged{Element: el, Start: idx, End: idx + n})
		idx += n
	}
	return out
}

// CheckIndexFidelity verifies the computed end-of-segment offset against
// the asserted EndIndex, if one was supplied. A mismatch indicates an
// upstream codec bug.
func (s *Section) CheckIndexFidelity() error {
	if s.EndIndex == 0 {
		return nil
	}
	if got := s.End(); got != s.EndIndex {
		return fmt.Errorf("%w: %s segment %q computed %d, asserted %d",
			ErrIndexFidelity, s.Kind, s.ID, got, s.EndIndex)
	}
	return nil
}

// Validate runs fidelity checks over every section of the document.
func (d *Document) Validate() error {
	for _, s := range d.Sections {
		if err := s.CheckIndexFidelity(); err != nil {
			return err
		}
	}
	return nil
}
