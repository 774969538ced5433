package preview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/tsawler/redline/model"
)

// Op classifies a hunk.
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
	OpReplace
)

// String returns the hunk's report marker.
func (o Op) String() string {
	switch o {
	case OpDelete:
		return "-"
	case OpInsert:
		return "+"
	case OpReplace:
		return "~"
	default:
		return " "
	}
}

// Hunk is one contiguous region of the report. Old holds pristine text,
// New holds current text; equal hunks carry the shared text in both.
type Hunk struct {
	Op  Op
	Old string
	New string
}

// Changes diffs the flattened plain text of two documents line by line
// and groups the result into hunks. An adjacent delete and insert fuse
// into a single replace hunk.
func Changes(pristine, current *model.Document) []Hunk {
	if pristine == nil || current == nil {
		return nil
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(pristine.PlainText(), current.PlainText())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var hunks []Hunk
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			hunks = append(hunks, Hunk{Op: OpEqual, Old: d.Text, New: d.Text})
		case diffmatchpatch.DiffDelete:
			hunks = append(hunks, Hunk{Op: OpDelete, Old: d.Text})
		case diffmatchpatch.DiffInsert:
			if n := len(hunks); n > 0 && hunks[n-1].Op == OpDelete {
				hunks[n-1] = Hunk{Op: OpReplace, Old: hunks[n-1].Old, New: d.Text}
				continue
			}
			hunks = append(hunks, Hunk{Op: OpInsert, New: d.Text})
		}
	}
	return hunks
}

// Render formats hunks as a line-prefixed textual report: unchanged lines
// indent with two spaces, removals with "- ", additions with "+ ".
func Render(hunks []Hunk) string {
	var sb strings.Builder
	for _, h := range hunks {
		switch h.Op {
		case OpEqual:
			writeLines(&sb, "  ", h.Old)
		case OpDelete:
			writeLines(&sb, "- ", h.Old)
		case OpInsert:
			writeLines(&sb, "+ ", h.New)
		case OpReplace:
			writeLines(&sb, "- ", h.Old)
			writeLines(&sb, "+ ", h.New)
		}
	}
	return sb.String()
}

func writeLines(sb *strings.Builder, prefix, text string) {
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}
