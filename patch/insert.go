package patch

import (
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ops"
)

// insertMode controls how paragraph newlines are synthesized for a block
// of inserted elements.
type insertMode int

const (
	// modeNormal suffixes every paragraph with its newline; used when the
	// block lands before surviving pristine content.
	modeNormal insertMode = iota
	// modePrefixNewline targets the position just before the segment's
	// final immutable newline; separators are prefixed instead of
	// suffixed, and the pristine newline terminates the last element.
	modePrefixNewline
	// modeOmitFinalNewline suffixes newlines except on the last
	// paragraph, whose terminator is a surviving structural newline
	// (whole-cell replace, whole-segment replace).
	modeOmitFinalNewline
)

// insertElements materializes els.
//
// When post is false the elements are new top-level content: every insert
// operation nominally targets the single anchor insertAt, emitted in
// reverse logical order so that sequential application produces the
// logical order. When post is true the elements fill a structure (a table)
// created by an earlier insert in the same group: each operation targets
// its element's real final position and the whole set applies in
// ascending position order, so every fill lands after the content below
// it is already in place.
//
// Either way, style operations target final positions: each element's
// styles are offset by the cumulative length of the elements that
// logically precede it in the block.
func (e *emitter) insertElements(els []model.Element, insertAt, g int, mode insertMode, post bool) {
	if mode == modePrefixNewline {
		e.insertPrefixed(els, insertAt, g)
		return
	}

	prefix := make([]int, len(els)+1)
	for i, el := range els {
		prefix[i+1] = prefix[i] + el.Length()
	}

	if post {
		for i := 0; i < len(els); i++ {
			base := insertAt + prefix[i]
			e.insertOne(els[i], base, base, i == len(els)-1 && mode == modeOmitFinalNewline, g, true)
		}
		return
	}
	for i := len(els) - 1; i >= 0; i-- {
		e.insertOne(els[i], insertAt, insertAt+prefix[i], i == len(els)-1 && mode == modeOmitFinalNewline, g, false)
	}
}

// insertPrefixed handles an append at the segment's tail: insertAt sits
// just before the final immutable newline, which will terminate the last
// inserted element. A separator newline precedes each element whose
// predecessor is a paragraph (the pristine trailing paragraph counts);
// tables and breaks delimit themselves, so nothing follows them.
func (e *emitter) insertPrefixed(els []model.Element, insertAt, g int) {
	type chunk struct {
		sep  bool
		off  int
		size int
	}
	chunks := make([]chunk, len(els))
	off := 0
	prevParagraph := true
	for i, el := range els {
		c := chunk{sep: prevParagraph, off: off}
		c.size = el.Length()
		if _, ok := el.(*model.Paragraph); ok {
			c.size--
			prevParagraph = true
		} else {
			prevParagraph = false
		}
		if c.sep {
			c.size++
		}
		chunks[i] = c
		off += c.size
	}

	for i := len(els) - 1; i >= 0; i-- {
		c := chunks[i]
		base := insertAt + c.off
		if c.sep {
			base++
		}
		switch t := els[i].(type) {
		case *model.Paragraph:
			text := t.Text()
			if c.sep {
				text = "\n" + text
			}
			if text != "" {
				e.emit(ops.Operation{
					Kind:        ops.KindInsertText,
					Index:       insertAt,
					Text:        text,
					ChangeGroup: g,
				})
			}
			e.styleRuns(t, base, g)
			e.emitParagraphAttrs(&model.Paragraph{}, t, base, base+t.Length(), g, true)
		case *model.Table:
			e.emitTableSkeleton(t, insertAt, base, g, false)
			if c.sep {
				e.emit(ops.Operation{
					Kind:        ops.KindInsertText,
					Index:       insertAt,
					Text:        "\n",
					ChangeGroup: g,
				})
			}
		case *model.SpecialElement:
			e.insertSpecial(t, insertAt, g, false)
			if c.sep {
				e.emit(ops.Operation{
					Kind:        ops.KindInsertText,
					Index:       insertAt,
					Text:        "\n",
					ChangeGroup: g,
				})
			}
		}
	}
}

// insertOne emits the operations for a single element: opIndex is where
// the insert operation points, base the element's nominal final start.
func (e *emitter) insertOne(el model.Element, opIndex, base int, omitNewline bool, g int, post bool) {
	switch t := el.(type) {
	case *model.Paragraph:
		e.insertParagraph(t, opIndex, base, omitNewline, g, post)
	case *model.Table:
		e.emitTableSkeleton(t, opIndex, base, g, post)
	case *model.SpecialElement:
		e.insertSpecial(t, opIndex, g, post)
	}
}

func (e *emitter) insertParagraph(p *model.Paragraph, opIndex, base int, omitNewline bool, g int, post bool) {
	text := p.Text()
	if !omitNewline {
		text += "\n"
	}
	if text != "" {
		e.emit(ops.Operation{
			Kind:        ops.KindInsertText,
			Index:       opIndex,
			Text:        text,
			ChangeGroup: g,
			PostInsert:  post,
		})
	}
	e.styleRuns(p, base, g)
	e.emitParagraphAttrs(&model.Paragraph{}, p, base, base+p.Length(), g, true)
}

// styleRuns reapplies run styles over freshly inserted text, offset from
// the paragraph's final content start.
func (e *emitter) styleRuns(p *model.Paragraph, contentBase, g int) {
	cursor := contentBase
	for _, r := range p.Runs {
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

func (e *emitter) emitTableSkeleton(t *model.Table, opIndex, base, g int, post bool) {
	e.emit(ops.Operation{
		Kind:        ops.KindInsertTable,
		Index:       opIndex,
		Rows:        t.RowCount(),
		Cols:        t.ColCount(),
		ChangeGroup: g,
		PostInsert:  post,
	})

	// Fill cells front to back at their final positions; every fill is
	// post-insert and the ascending-position tier order guarantees the
	// content below each fill exists when it applies.
	for _, cr := range t.CellRanges(base) {
		if cellIsEmpty(cr.Cell) {
			continue
		}
		e.insertElements(cr.Cell.Content, cr.ContentStart, g, modeOmitFinalNewline, true)
	}
}

func (e *emitter) insertSpecial(s *model.SpecialElement, opIndex, g int, post bool) {
	switch s.Kind {
	case model.SpecialPageBreak:
		e.emit(ops.Operation{
			Kind:        ops.KindInsertPageBreak,
			Index:       opIndex,
			ChangeGroup: g,
			PostInsert:  post,
		})
	case model.SpecialSectionBreak:
		e.emit(ops.Operation{
			Kind:        ops.KindInsertSectionBreak,
			Index:       opIndex,
			SectionType: s.Attrs["sectionType"],
			ChangeGroup: g,
			PostInsert:  post,
		})
	default:
		// No dedicated request exists; a single placeholder unit keeps
		// the length calculus exact.
		e.emit(ops.Operation{
			Kind:        ops.KindInsertText,
			Index:       opIndex,
			Text:        model.MarkerPlaceholder,
			ChangeGroup: g,
			PostInsert:  post,
		})
	}
}

// emitParagraphAttrs emits the paragraph-level differences between p and
// c over the given range: named/alignment/indent style, then bullet
// membership. post marks operations on freshly inserted content.
func (e *emitter) emitParagraphAttrs(p, c *model.Paragraph, start, end, g int, post bool) {
	if !p.Style.Equal(c.Style) {
		style := c.Style
		e.emit(ops.Operation{
			Kind:           ops.KindUpdateParagraphStyle,
			StartIndex:     start,
			EndIndex:       end,
			ParagraphStyle: &style,
			Fields:         ops.ParagraphStyleFields(p.Style, c.Style),
			ChangeGroup:    g,
			PostInsert:     post,
		})
	}
	if p.Bullet.Equal(c.Bullet) {
		return
	}
	// Bullet operations act on whole paragraphs, so a range touching the
	// paragraph start suffices. On existing content they apply after the
	// group's text edits, where the pristine end may no longer be inside
	// the paragraph; the one-unit range always is.
	bEnd := end
	if !post {
		bEnd = start + 1
	}
	if c.Bullet == nil {
		e.emit(ops.Operation{
			Kind:        ops.KindDeleteParagraphBullets,
			StartIndex:  start,
			EndIndex:    bEnd,
			ChangeGroup: g,
			PostInsert:  true,
		})
		return
	}
	bullet := *c.Bullet
	e.emit(ops.Operation{
		Kind:        ops.KindCreateParagraphBullets,
		StartIndex:  start,
		EndIndex:    bEnd,
		Bullet:      &bullet,
		ChangeGroup: g,
		PostInsert:  true,
	})
	if c.Bullet.Nesting > 0 && c.Style.IndentStartPt == nil {
		indent := bulletIndent(c.Bullet.Nesting)
		e.emit(ops.Operation{
			Kind:           ops.KindUpdateParagraphStyle,
			StartIndex:     start,
			EndIndex:       bEnd,
			ParagraphStyle: &indent,
			Fields:         []string{"indentStart", "indentFirstLine"},
			ChangeGroup:    g,
			PostInsert:     true,
		})
	}
}

// bulletIndent derives the indentation for a nested bullet: 36pt per
// level past the standard bullet indent, first line hanging 18pt.
func bulletIndent(nesting int) model.ParagraphStyle {
	start := float64(36 * (nesting + 1))
	return model.ParagraphStyle{
		IndentStartPt:     model.Float(start),
		IndentFirstLinePt: model.Float(start - 18),
	}
}

func cellIsEmpty(c *model.TableCell) bool {
	if len(c.Content) != 1 {
		return false
	}
	p, ok := c.Content[0].(*model.Paragraph)
	return ok && len(p.Runs) == 0 && p.Style.IsDefault() && p.Bullet == nil
}
