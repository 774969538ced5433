package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/tsawler/redline/model"
)

// BlockKind classifies a contiguous run of the alignment.
type BlockKind int

const (
	// BlockEqual pairs signature-equal elements; callers must still
	// re-check each pair with Match.
	BlockEqual BlockKind = iota
	BlockInsert
	BlockDelete
	BlockReplace
)

func (bk BlockKind) String() string {
	switch bk {
	case BlockEqual:
		return "Equal"
	case BlockInsert:
		return "Insert"
	case BlockDelete:
		return "Delete"
	case BlockReplace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// Block is one run of the edit script with the original elements and their
// absolute index ranges attached. Equal blocks carry both sides pairwise;
// delete blocks only Pristine; insert blocks only Current plus the Anchor
// (the pristine offset where the new content begins); replace blocks carry
// both sides and use Pristine[0].Start as their anchor.
type Block struct {
	Kind     BlockKind
	Pristine []model.Ranged
	Current  []model.Ranged
	Anchor   int
}

// Blocks aligns the two element sequences of one section.
//
// Each element is interned as a rune keyed by its signature and the rune
// sequences are diffed with diffmatchpatch, which yields a deterministic
// longest-common-subsequence edit script favoring maximal matched spans
// with earlier elements matched first. Adjacent delete/insert runs fuse
// into replace blocks. pristineEnd is the section's end-of-segment offset,
// used as the anchor for content appended past the last pristine element.
func Blocks(pristine, current []model.Ranged, pristineEnd int) []Block {
	in := newInterner()
	ra := make([]rune, len(pristine))
	for i, el := range pristine {
		ra[i] = in.intern(Signature(el.Element))
	}
	rb := make([]rune, len(current))
	for i, el := range current {
		rb[i] = in.intern(Signature(el.Element))
	}

	dmp := diffmatchpatch.New()
	// The default 1s deadline lets DiffBisect cut the search short on big
	// sections, making the edit script wall-clock-dependent. The alignment
	// must be a pure function of its inputs, so the deadline is disabled.
	dmp.DiffTimeout = 0
	script := dmp.DiffCleanupMerge(dmp.DiffMainRunes(ra, rb, false))

	var blocks []Block
	ai, bi := 0, 0
	var pendingDel, pendingIns []model.Ranged

	flush := func() {
		if len(pendingDel) == 0 && len(pendingIns) == 0 {
			return
		}
		switch {
		case len(pendingDel) > 0 && len(pendingIns) > 0:
			blocks = append(blocks, Block{
				Kind:     BlockReplace,
				Pristine: pendingDel,
				Current:  pendingIns,
				Anchor:   pendingDel[0].Start,
			})
		case len(pendingDel) > 0:
			blocks = append(blocks, Block{Kind: BlockDelete, Pristine: pendingDel})
		default:
			anchor := pristineEnd
			if ai < len(pristine) {
				anchor = pristine[ai].Start
			}
			blocks = append(blocks, Block{Kind: BlockInsert, Current: pendingIns, Anchor: anchor})
		}
		pendingDel, pendingIns = nil, nil
	}

	for _, d := range script {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			blocks = append(blocks, Block{
				Kind:     BlockEqual,
				Pristine: pristine[ai : ai+n],
				Current:  current[bi : bi+n],
			})
			ai += n
			bi += n
		case diffmatchpatch.DiffDelete:
			pendingDel = append(pendingDel, pristine[ai:ai+n]...)
			ai += n
		case diffmatchpatch.DiffInsert:
			pendingIns = append(pendingIns, current[bi:bi+n]...)
			bi += n
		}
	}
	flush()

	return blocks
}

// interner assigns stable runes to signature strings in first-seen order.
// Runes start at 1 and skip the surrogate range so every assigned value is
// a valid code point.
type interner struct {
	table map[string]rune
	next  rune
}

func newInterner() *interner {
	return &interner{table: make(map[string]rune), next: 1}
}

func (in *interner) intern(sig string) rune {
	if r, ok := in.table[sig]; ok {
		return r
	}
	r := in.next
	in.next++
	if in.next == 0xD800 {
		in.next = 0xE000
	}
	in.table[sig] = r
	return r
}
