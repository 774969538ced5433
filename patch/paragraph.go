package patch

import (
	"github.com/tsawler/redline/diff"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ops"
)

// diffParagraph emits the edits turning the pristine paragraph pp,
// occupying pr, into cp. Paragraph-level attributes always patch in
// place. Run styles patch in place only when the run structure aligns
// exactly; any text or run-shape change rewrites the paragraph content
// wholesale, keeping its structural newline.
func (e *emitter) diffParagraph(pr model.Ranged, pp, cp *model.Paragraph) {
	g := e.group()
	e.emitParagraphAttrs(pp, cp, pr.Start, pr.End, g, false)

	if runsAlignable(pp, cp) {
		cursor := pr.Start
		for i, r := range pp.Runs {
			n := r.Length()
			if !r.Style.Equal(cp.Runs[i].Style) {
				style := cp.Runs[i].Style
				e.emit(ops.Operation{
					Kind:        ops.KindUpdateTextStyle,
					StartIndex:  cursor,
					EndIndex:    cursor + n,
					TextStyle:   &style,
					Fields:      ops.TextStyleFields(r.Style, cp.Runs[i].Style),
					ChangeGroup: g,
					PostInsert:  true,
				})
			}
			cursor += n
		}
		return
	}

	e.replaceParagraphContent(pr, cp, g)
}

// replaceParagraphContent clears the paragraph's content, keeping its
// structural newline, and rebuilds it from cp's runs.
func (e *emitter) replaceParagraphContent(pr model.Ranged, cp *model.Paragraph, g int) {
	e.emitDelete(pr.Start, pr.End-1, g)
	text := cp.Text()
	if text != "" {
		e.emit(ops.Operation{
			Kind:        ops.KindInsertText,
			Index:       pr.Start,
			Text:        text,
			ChangeGroup: g,
		})
	}
	cursor := pr.Start
	for _, r := range cp.Runs {
		n := r.Length()
		if !r.Style.IsZero() {
			style := r.Style
			e.emit(ops.Operation{
				Kind:        ops.KindUpdateTextStyle,
				StartIndex:  cursor,
				EndIndex:    cursor + n,
				TextStyle:   &style,
				Fields:      ops.TextStyleFieldsSet(style),
				ChangeGroup: g,
				PostInsert:  true,
			})
		}
		cursor += n
	}
}

// runsAlignable reports whether two paragraphs share the same run shape:
// equal run counts, identical text per run, matching markers per run.
// Only then can style differences patch run by run in place.
func runsAlignable(pp, cp *model.Paragraph) bool {
	if len(pp.Runs) != len(cp.Runs) {
		return false
	}
	for i := range pp.Runs {
		if pp.Runs[i].Text != cp.Runs[i].Text {
			return false
		}
		if !diff.MarkersMatch(pp.Runs[i].Marker, cp.Runs[i].Marker) {
			return false
		}
	}
	return true
}
