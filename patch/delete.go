package patch

import (
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ops"
)

type span struct {
	start, end int
}

// deleteSpans plans the delete ranges for a contiguous run of pristine
// elements, in reverse document order (the order they must be emitted in).
//
// A run that reaches the segment's final structural newline cannot take it:
// when an element survives before the run, every range shifts back one
// unit so the run consumes the preceding paragraph's newline and leaves
// the final one in place; when the run starts at the very beginning of the
// segment, the last range is instead truncated just before the final
// newline (emitDelete clamps it), leaving the segment its one mandatory
// empty paragraph.
func (e *emitter) deleteSpans(els []model.Ranged) []span {
	if len(els) == 0 {
		return nil
	}
	shift := e.tailShift(els)
	spans := make([]span, 0, len(els))
	for i := len(els) - 1; i >= 0; i-- {
		spans = append(spans, span{els[i].Start + shift, els[i].End + shift})
	}
	return spans
}

// tailShift is -1 when a run of doomed elements reaches the segment's
// final newline and the surviving element before the run is a paragraph
// whose newline can be consumed in its place, 0 otherwise. A table or
// break before the run has no newline to give; the final delete is
// truncated instead.
func (e *emitter) tailShift(els []model.Ranged) int {
	if len(els) == 0 || els[len(els)-1].End < e.segEnd || els[0].Start <= e.segStart {
		return 0
	}
	if !e.prevIsParagraph(els[0].Start) {
		return 0
	}
	return -1
}

// prevIsParagraph reports whether the pristine element ending exactly at
// start is a paragraph.
func (e *emitter) prevIsParagraph(start int) bool {
	for _, r := range e.pristine {
		if r.End == start {
			_, ok := r.Element.(*model.Paragraph)
			return ok
		}
	}
	return false
}

// emitDelete emits one content-range delete, clamped to the segment's
// editable region. A range that collapses after clamping is dropped
// entirely, never emitted.
func (e *emitter) emitDelete(start, end, g int) {
	if end > e.segEnd-1 {
		end = e.segEnd - 1
	}
	if start < e.segStart {
		start = e.segStart
	}
	if start >= end {
		return
	}
	e.emit(ops.Operation{
		Kind:        ops.KindDeleteContentRange,
		StartIndex:  start,
		EndIndex:    end,
		ChangeGroup: g,
	})
}
