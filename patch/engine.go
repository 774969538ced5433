package patch

import (
	"errors"
	"fmt"

	"github.com/tsawler/redline/diff"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ops"
)

// Engine errors.
var (
	// ErrMalformedInput indicates a document tree the engine cannot diff:
	// a nil document, a missing body, or a failed index-fidelity check.
	// This is an upstream codec bug and is never silently worked around.
	ErrMalformedInput = errors.New("patch: malformed input document")

	// ErrStructuralViolation indicates a change the structural rules
	// cannot reconcile. Surfaced to the caller, never retried.
	ErrStructuralViolation = errors.New("patch: structural violation")
)

// Reserved change groups that sort before every block-assigned group.
const (
	groupCreateSegment = -2
	groupTrailingReset = -1
)

// Options adjusts what Diff compares.
type Options struct {
	// TabID overrides the tab identifier stamped on every operation.
	// Empty means use the current document's.
	TabID string

	// Skip flags exclude whole segment kinds from the comparison.
	SkipHeaders   bool
	SkipFooters   bool
	SkipFootnotes bool
}

// Diff compares two documents and returns the ordered operation list that
// transforms pristine into current when replayed in order.
func Diff(pristine, current *model.Document) ([]ops.Operation, error) {
	return DiffOptions(pristine, current, Options{})
}

// DiffOptions is Diff with explicit options.
func DiffOptions(pristine, current *model.Document, opts Options) ([]ops.Operation, error) {
	if pristine == nil || current == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMalformedInput)
	}
	if current.Body() == nil {
		return nil, fmt.Errorf("%w: current document has no body section", ErrMalformedInput)
	}
	if err := pristine.Validate(); err != nil {
		return nil, fmt.Errorf("patch: pristine document: %w", err)
	}
	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("patch: current document: %w", err)
	}

	tabID := opts.TabID
	if tabID == "" {
		tabID = current.TabID
	}
	if tabID == "" {
		tabID = pristine.TabID
	}

	var out []ops.Operation

	// Current sections in document order; the body leads by convention.
	for _, cs := range current.Sections {
		if skipKind(cs.Kind, opts) {
			continue
		}
		ps := pristine.FindSection(cs.Kind, cs.ID)
		e := newEmitter(cs.ID, tabID, ps == nil && cs.Kind != model.SectionBody)
		if err := e.diffSection(ps, cs); err != nil {
			return nil, err
		}
		out = append(out, e.finish()...)
	}

	// Pristine sections with no current counterpart are removed, last.
	for _, ps := range pristine.Sections {
		if skipKind(ps.Kind, opts) {
			continue
		}
		if current.FindSection(ps.Kind, ps.ID) != nil {
			continue
		}
		e := newEmitter(ps.ID, tabID, false)
		e.deleteSegment(ps)
		out = append(out, e.finish()...)
	}

	return out, nil
}

func skipKind(kind model.SectionKind, opts Options) bool {
	switch kind {
	case model.SectionHeader:
		return opts.SkipHeaders
	case model.SectionFooter:
		return opts.SkipFooters
	case model.SectionFootnote:
		return opts.SkipFootnotes
	default:
		return false
	}
}

// emitter accumulates one section's operations. The change-group and
// generation counters are fields here rather than package state so a diff
// pass carries no hidden globals.
type emitter struct {
	segID   string
	tabID   string
	forward bool

	list      []ops.Operation
	nextGroup int
	nextSeq   int

	segStart int
	segEnd   int
	pristine []model.Ranged

	// resetTrailing, when set, is the pristine trailing paragraph whose
	// stale named style must be reset before any other operation runs.
	resetTrailing *model.Ranged
}

func newEmitter(segID, tabID string, forward bool) *emitter {
	return &emitter{segID: segID, tabID: tabID, forward: forward}
}

func (e *emitter) group() int {
	g := e.nextGroup
	e.nextGroup++
	return g
}

func (e *emitter) emit(op ops.Operation) {
	op.SegmentID = e.segID
	op.TabID = e.tabID
	op.ForwardSegment = e.forward
	op.Seq = e.nextSeq
	e.nextSeq++
	e.list = append(e.list, op)
}

// finish applies the final total order and returns the section's list.
func (e *emitter) finish() []ops.Operation {
	sortOperations(e.list)
	return e.list
}

func (e *emitter) diffSection(ps, cs *model.Section) error {
	if ps == nil {
		// A freshly created segment holds a single empty paragraph; diff
		// the current content against that.
		e.emitCreateSegment(cs)
		ps = &model.Section{Kind: cs.Kind, ID: cs.ID, Content: []model.Element{&model.Paragraph{}}}
	}
	e.segStart, e.segEnd = ps.StartIndex(), ps.End()
	e.pristine = ps.Ranges()

	if len(cs.Content) == 0 {
		return fmt.Errorf("%w: %s segment %q has no content; a segment keeps at least one paragraph",
			ErrStructuralViolation, cs.Kind, cs.ID)
	}
	if diff.Identical(ps.Content, cs.Content) {
		return nil
	}

	blocks := diff.Blocks(e.pristine, cs.Ranges(), ps.End())

	// Bottom-up: the last block in the document gets the lowest change
	// group, so replay edits the tail before any offsets above it move.
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		switch b.Kind {
		case diff.BlockEqual:
			// Signature equality only; re-check each pair deeply.
			for j := len(b.Pristine) - 1; j >= 0; j-- {
				if !diff.Match(b.Pristine[j].Element, b.Current[j].Element) {
					if err := e.diffPair(b.Pristine[j], b.Current[j]); err != nil {
						return err
					}
				}
			}

		case diff.BlockDelete:
			for _, sp := range e.deleteSpans(b.Pristine) {
				e.emitDelete(sp.start, sp.end, e.group())
			}

		case diff.BlockInsert:
			e.emitInsertBlock(elementsOf(b.Current), b.Anchor)

		case diff.BlockReplace:
			if err := e.emitReplaceBlock(b); err != nil {
				return err
			}
		}
	}

	if e.resetTrailing != nil {
		reset := model.ParagraphStyle{Named: model.StyleNormalText}
		e.emit(ops.Operation{
			Kind:           ops.KindUpdateParagraphStyle,
			StartIndex:     e.resetTrailing.Start,
			EndIndex:       e.resetTrailing.End,
			ParagraphStyle: &reset,
			Fields:         []string{"namedStyleType"},
			ChangeGroup:    groupTrailingReset,
		})
	}
	return nil
}

// diffPair handles one signature-matched (or pairwise-replaced) element
// pair that failed the deep check. Each pair owns its change group.
func (e *emitter) diffPair(pr, cr model.Ranged) error {
	switch pe := pr.Element.(type) {
	case *model.Paragraph:
		e.diffParagraph(pr, pe, cr.Element.(*model.Paragraph))
		return nil
	case *model.Table:
		return e.diffTable(pr, pe, cr.Element.(*model.Table))
	case *model.SpecialElement:
		g := e.group()
		e.emitDelete(pr.Start, pr.End, g)
		e.insertElements([]model.Element{cr.Element}, pr.Start, g, modeNormal, false)
		return nil
	default:
		return fmt.Errorf("%w: unsupported element type %T", ErrStructuralViolation, pr.Element)
	}
}

func (e *emitter) emitReplaceBlock(b diff.Block) error {
	if pairwiseCompatible(b) {
		for j := len(b.Pristine) - 1; j >= 0; j-- {
			if !diff.Match(b.Pristine[j].Element, b.Current[j].Element) {
				if err := e.diffPair(b.Pristine[j], b.Current[j]); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// Fallback: delete every pristine element, insert every current one
	// at the block anchor, all within one change group.
	g := e.group()
	for _, sp := range e.deleteSpans(b.Pristine) {
		e.emitDelete(sp.start, sp.end, g)
	}
	els := elementsOf(b.Current)
	reachesEnd := b.Pristine[len(b.Pristine)-1].End >= e.segEnd
	switch {
	case reachesEnd && e.tailShift(b.Pristine) != 0:
		// The deletes were shifted back one unit to spare the final
		// newline; new content restores the boundary newline itself.
		// The spared newline keeps the pristine trailing paragraph's
		// style, so the reset applies here too.
		e.queueTrailingReset()
		e.insertElements(els, b.Anchor-1, g, modePrefixNewline, false)
	case reachesEnd:
		e.queueTrailingReset()
		e.insertElements(els, b.Anchor, g, modeOmitFinalNewline, false)
	default:
		e.insertElements(els, b.Anchor, g, modeNormal, false)
	}
	return nil
}

// emitInsertBlock handles a pure insert run: one anchor, one change group,
// elements emitted in reverse logical order at that anchor.
func (e *emitter) emitInsertBlock(els []model.Element, anchor int) {
	g := e.group()
	if anchor >= e.segEnd {
		// Appending at the very end: target the position just before the
		// segment's final immutable newline and prefix rather than
		// suffix each paragraph's newline.
		e.queueTrailingReset()
		e.insertElements(els, e.segEnd-1, g, modePrefixNewline, false)
		return
	}
	e.insertElements(els, anchor, g, modeNormal, false)
}

// queueTrailingReset arranges for a reset-to-default of the pristine
// trailing paragraph's named style, so content inserted at the segment
// tail does not inherit a stale heading from the surviving structural
// newline. It runs in a change group lower than all others.
func (e *emitter) queueTrailingReset() {
	if e.resetTrailing != nil || len(e.pristine) == 0 {
		return
	}
	last := e.pristine[len(e.pristine)-1]
	p, ok := last.Element.(*model.Paragraph)
	if !ok || p.Style.Named == model.StyleNormalText {
		return
	}
	e.resetTrailing = &last
}

func (e *emitter) emitCreateSegment(cs *model.Section) {
	var kind ops.Kind
	switch cs.Kind {
	case model.SectionHeader:
		kind = ops.KindCreateHeader
	case model.SectionFooter:
		kind = ops.KindCreateFooter
	case model.SectionFootnote:
		kind = ops.KindCreateFootnote
	default:
		return
	}
	e.emit(ops.Operation{Kind: kind, ChangeGroup: groupCreateSegment})
}

// deleteSegment emits the removal of a pristine segment absent from the
// current document. Footnotes disappear with their body reference, so
// they emit nothing here.
func (e *emitter) deleteSegment(ps *model.Section) {
	switch ps.Kind {
	case model.SectionHeader:
		e.emit(ops.Operation{Kind: ops.KindDeleteHeader, ChangeGroup: 0})
	case model.SectionFooter:
		e.emit(ops.Operation{Kind: ops.KindDeleteFooter, ChangeGroup: 0})
	}
}

func pairwiseCompatible(b diff.Block) bool {
	if len(b.Pristine) != len(b.Current) {
		return false
	}
	for i := range b.Pristine {
		if b.Pristine[i].Element.Type() != b.Current[i].Element.Type() {
			return false
		}
	}
	return true
}

func elementsOf(ranged []model.Ranged) []model.Element {
	out := make([]model.Element, len(ranged))
	for i, r := range ranged {
		out[i] = r.Element
	}
	return out
}
