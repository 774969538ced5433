package diff

import (
	"github.com/tsawler/redline/model"
)

// Unit is one UTF-16 code unit of paragraph content with the style bundle
// that applies to it. Surrogate pairs produce two units sharing a style;
// an atomic marker produces exactly one unit.
type Unit struct {
	Style  model.TextStyle
	Marker *model.Marker
}

// FlattenRuns reduces a paragraph's run list to per-code-unit style
// bundles, erasing run boundaries. Two paragraphs with identical flattened
// forms render identically no matter how their runs are split.
func FlattenRuns(p *model.Paragraph) []Unit {
	units := make([]Unit, 0, p.Length()-1)
	for _, r := range p.Runs {
		n := r.Length()
		for i := 0; i < n; i++ {
			units = append(units, Unit{Style: r.Style, Marker: r.Marker})
		}
	}
	return units
}

// MarkersMatch reports whether two markers agree in kind and attributes.
// Either side may be nil.
func MarkersMatch(a, b *model.Marker) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind != b.Kind {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) {
		return false
	}
	for k, v := range a.Attrs {
		if b.Attrs[k] != v {
			return false
		}
	}
	return true
}

// unitsMatch compares two flattened paragraphs position by position.
func unitsMatch(a, b []Unit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Style.Equal(b[i].Style) || !MarkersMatch(a[i].Marker, b[i].Marker) {
			return false
		}
	}
	return true
}

// Match is the deep equality predicate: element kind, style attributes
// excluding volatile keys (list ids), text, and nested cell content must
// all agree. It is used both by the identical-section fast path and by the
// engine's re-check of signature-equal pairs.
func Match(a, b model.Element) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch ae := a.(type) {
	case *model.Paragraph:
		be := b.(*model.Paragraph)
		if ae.Text() != be.Text() {
			return false
		}
		if !ae.Style.Equal(be.Style) || !ae.Bullet.Equal(be.Bullet) {
			return false
		}
		if ae.StyleClass != be.StyleClass {
			return false
		}
		return unitsMatch(FlattenRuns(ae), FlattenRuns(be))
	case *model.Table:
		be := b.(*model.Table)
		if ae.RowCount() != be.RowCount() || ae.ColCount() != be.ColCount() {
			return false
		}
		for i := range ae.Rows {
			for j := range ae.Rows[i] {
				if !cellsMatch(&ae.Rows[i][j], &be.Rows[i][j]) {
					return false
				}
			}
		}
		return true
	case *model.SpecialElement:
		be := b.(*model.SpecialElement)
		if ae.Kind != be.Kind {
			return false
		}
		if len(ae.Attrs) != len(be.Attrs) {
			return false
		}
		for k, v := range ae.Attrs {
			if be.Attrs[k] != v {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func cellsMatch(a, b *model.TableCell) bool {
	if a.RowSpan != b.RowSpan || a.ColSpan != b.ColSpan || a.StyleClass != b.StyleClass {
		return false
	}
	if len(a.Content) != len(b.Content) {
		return false
	}
	for i := range a.Content {
		if !Match(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

// Identical reports deep pairwise equality of two element sequences; it is
// the fast path that lets a section emit zero operations.
func Identical(pristine, current []model.Element) bool {
	if len(pristine) != len(current) {
		return false
	}
	for i := range pristine {
		if !Match(pristine[i], current[i]) {
			return false
		}
	}
	return true
}
