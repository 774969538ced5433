package patch

import (
	"github.com/tsawler/redline/diff"
	"github.com/tsawler/redline/model"
)

// diffTable compares two tables occupying the same grid position. A
// dimension or span change forces a full rewrite of the table; otherwise
// each changed cell is handled on its own, walking the grid in reverse
// row-major order so that edits never disturb the offsets of cells still
// to be processed.
func (e *emitter) diffTable(pr model.Ranged, pt, ct *model.Table) error {
	if !gridsAlign(pt, ct) {
		e.replaceTable(pr, ct)
		return nil
	}

	ranges := pt.CellRanges(pr.Start)
	for i := len(ranges) - 1; i >= 0; i-- {
		cr := ranges[i]
		cc := ct.GetCell(cr.Cell.Row, cr.Cell.Col)
		if err := e.diffCell(cr, cc); err != nil {
			return err
		}
	}
	return nil
}

// diffCell compares one cell's content against its current counterpart.
func (e *emitter) diffCell(cr model.CellRange, cc *model.TableCell) error {
	pc := cr.Cell.Content
	if contentMatches(pc, cc.Content) {
		return nil
	}

	if len(pc) == len(cc.Content) && typesAlign(pc, cc.Content) {
		// Pair elements at their in-cell offsets and recurse, back to
		// front so earlier offsets stay valid.
		offsets := make([]int, len(pc)+1)
		offsets[0] = cr.ContentStart
		for i, el := range pc {
			offsets[i+1] = offsets[i] + el.Length()
		}
		for i := len(pc) - 1; i >= 0; i-- {
			if diff.Match(pc[i], cc.Content[i]) {
				continue
			}
			ranged := model.Ranged{Element: pc[i], Start: offsets[i], End: offsets[i+1]}
			cur := model.Ranged{Element: cc.Content[i], Start: offsets[i], End: offsets[i+1]}
			if err := e.diffPair(ranged, cur); err != nil {
				return err
			}
		}
		return nil
	}

	// Element counts or kinds diverge: clear the cell down to its final
	// structural newline and rebuild from the current content.
	g := e.group()
	e.emitDelete(cr.ContentStart, cr.ContentEnd-1, g)
	e.insertElements(cc.Content, cr.ContentStart, g, modeOmitFinalNewline, false)
	return nil
}

// replaceTable deletes the pristine table wholesale and inserts the
// current one at the same anchor.
func (e *emitter) replaceTable(pr model.Ranged, ct *model.Table) {
	g := e.group()
	spans := e.deleteSpans([]model.Ranged{pr})
	for _, sp := range spans {
		e.emitDelete(sp.start, sp.end, g)
	}
	els := []model.Element{ct}
	switch {
	case pr.End >= e.segEnd && e.tailShift([]model.Ranged{pr}) != 0:
		e.queueTrailingReset()
		e.insertElements(els, pr.Start-1, g, modePrefixNewline, false)
	case pr.End >= e.segEnd:
		e.queueTrailingReset()
		e.insertElements(els, pr.Start, g, modeOmitFinalNewline, false)
	default:
		e.insertElements(els, pr.Start, g, modeNormal, false)
	}
}

// gridsAlign reports whether two tables share dimensions, spans and cell
// style classes, the preconditions for cell-by-cell diffing.
func gridsAlign(pt, ct *model.Table) bool {
	if pt.RowCount() != ct.RowCount() || pt.ColCount() != ct.ColCount() {
		return false
	}
	for r := 0; r < pt.RowCount(); r++ {
		for c := 0; c < pt.ColCount(); c++ {
			p, q := pt.GetCell(r, c), ct.GetCell(r, c)
			if p.RowSpan != q.RowSpan || p.ColSpan != q.ColSpan || p.StyleClass != q.StyleClass {
				return false
			}
		}
	}
	return true
}

func contentMatches(a, b []model.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !diff.Match(a[i], b[i]) {
			return false
		}
	}
	return true
}

func typesAlign(a, b []model.Element) bool {
	for i := range a {
		if a[i].Type() != b[i].Type() {
			return false
		}
	}
	return true
}
