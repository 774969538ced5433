package patch

import (
	"sort"

	"github.com/tsawler/redline/ops"
)

// sortOperations arranges the emitted list into replay order. Change
// groups apply in ascending order, which walks the document bottom-up
// (later groups were assigned to earlier document positions). Within a
// group, operations fall into four tiers:
//
//  1. paragraph style updates on existing content, ascending, while
//     pristine coordinates still hold
//  2. deletions, descending, so each delete's pristine coordinates
//     survive the deletes below it
//  3. insertions of new content, ascending, building the replacement
//     front to back
//  4. everything else (restyling, bullets, structure fills), ascending by
//     target position, landing on content that now exists
//
// Ties inside a tier preserve emission order via the Seq stamp.
func sortOperations(list []ops.Operation) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.ChangeGroup != b.ChangeGroup {
			return a.ChangeGroup < b.ChangeGroup
		}
		ta, tb := tier(a), tier(b)
		if ta != tb {
			return ta < tb
		}
		switch ta {
		case 2:
			if a.StartIndex != b.StartIndex {
				return a.StartIndex > b.StartIndex
			}
		default:
			pa, pb := opPos(a), opPos(b)
			if pa != pb {
				return pa < pb
			}
		}
		return a.Seq < b.Seq
	})
}

func tier(op ops.Operation) int {
	switch {
	case op.Kind == ops.KindUpdateParagraphStyle && !op.PostInsert:
		return 1
	case op.Kind == ops.KindDeleteContentRange:
		return 2
	case isInsert(op.Kind) && !op.PostInsert:
		return 3
	default:
		return 4
	}
}

func isInsert(k ops.Kind) bool {
	switch k {
	case ops.KindInsertText, ops.KindInsertTable,
		ops.KindInsertPageBreak, ops.KindInsertSectionBreak:
		return true
	}
	return false
}

// opPos is the position an operation acts on: the insertion point for
// inserts, the range start for everything else.
func opPos(op ops.Operation) int {
	if isInsert(op.Kind) {
		return op.Index
	}
	return op.StartIndex
}
