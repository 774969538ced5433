package ops

import "github.com/tsawler/redline/model"

// Kind identifies an operation type.
type Kind int

const (
	KindUnknown Kind = iota
	KindDeleteContentRange
	KindInsertText
	KindUpdateTextStyle
	KindUpdateParagraphStyle
	KindCreateParagraphBullets
	KindDeleteParagraphBullets
	KindInsertTable
	KindInsertPageBreak
	KindInsertSectionBreak
	KindCreateFootnote
	KindCreateHeader
	KindCreateFooter
	KindDeleteHeader
	KindDeleteFooter
)

func (k Kind) String() string {
	switch k {
	case KindDeleteContentRange:
		return "deleteContentRange"
	case KindInsertText:
		return "insertText"
	case KindUpdateTextStyle:
		return "updateTextStyle"
	case KindUpdateParagraphStyle:
		return "updateParagraphStyle"
	case KindCreateParagraphBullets:
		return "createParagraphBullets"
	case KindDeleteParagraphBullets:
		return "deleteParagraphBullets"
	case KindInsertTable:
		return "insertTable"
	case KindInsertPageBreak:
		return "insertPageBreak"
	case KindInsertSectionBreak:
		return "insertSectionBreak"
	case KindCreateFootnote:
		return "createFootnote"
	case KindCreateHeader:
		return "createHeader"
	case KindCreateFooter:
		return "createFooter"
	case KindDeleteHeader:
		return "deleteHeader"
	case KindDeleteFooter:
		return "deleteFooter"
	default:
		return "unknown"
	}
}

// Operation is one edit against the remote document. Indices are UTF-16
// code-unit offsets valid at the moment the operation is applied, in the
// order the engine returns.
type Operation struct {
	Kind Kind

	// SegmentID targets a header/footer/footnote segment; empty means the
	// body. TabID targets a non-default document tab. ForwardSegment
	// marks SegmentID as referencing a segment created by an earlier
	// operation in the same list; the batch coordinator resolves it.
	SegmentID      string
	TabID          string
	ForwardSegment bool

	// StartIndex/EndIndex address range operations; Index addresses point
	// operations (inserts).
	StartIndex int
	EndIndex   int
	Index      int

	// Payloads; which fields apply depends on Kind.
	Text           string
	TextStyle      *model.TextStyle
	ParagraphStyle *model.ParagraphStyle
	// Fields is the update field mask: the wire names of exactly the
	// attributes that changed.
	Fields []string
	Bullet *model.Bullet
	Rows   int
	Cols   int
	// SectionType for insertSectionBreak; HeaderFooterType for
	// createHeader/createFooter ("DEFAULT" unless specified).
	SectionType      string
	HeaderFooterType string

	// Ordering metadata. Operations sort by ChangeGroup ascending, then by
	// the four-tier priority, then by Seq, the monotonic generation
	// counter that keeps output deterministic. PostInsert flags style and
	// fill operations that only become valid once the insert creating
	// their target range has executed.
	ChangeGroup int
	PostInsert  bool
	Seq         int
}

// Field mask names, in the fixed canonical order they are emitted in.
var (
	textStyleFieldNames = []string{
		"bold", "italic", "underline", "strikethrough",
		"weightedFontFamily", "fontSize", "foregroundColor", "link",
	}
	paragraphStyleFieldNames = []string{
		"namedStyleType", "alignment", "indentStart", "indentFirstLine",
	}
)

func textStyleField(a, b model.TextStyle, name string) (changed bool) {
	switch name {
	case "bold":
		return !eqB(a.Bold, b.Bold)
	case "italic":
		return !eqB(a.Italic, b.Italic)
	case "underline":
		return !eqB(a.Underline, b.Underline)
	case "strikethrough":
		return !eqB(a.Strikethrough, b.Strikethrough)
	case "weightedFontFamily":
		return !eqS(a.FontFamily, b.FontFamily)
	case "fontSize":
		return !eqF(a.FontSizePt, b.FontSizePt)
	case "foregroundColor":
		return !eqS(a.ForegroundColor, b.ForegroundColor)
	case "link":
		return !eqS(a.LinkURL, b.LinkURL)
	}
	return false
}

// TextStyleFields returns the wire field names on which a and b disagree,
// in canonical order.
func TextStyleFields(a, b model.TextStyle) []string {
	var out []string
	for _, name := range textStyleFieldNames {
		if textStyleField(a, b, name) {
			out = append(out, name)
		}
	}
	return out
}

// TextStyleFieldsSet returns the wire field names set on s, used as the
// mask when applying a style to freshly inserted text.
func TextStyleFieldsSet(s model.TextStyle) []string {
	return TextStyleFields(s, model.TextStyle{})
}

// ParagraphStyleFields returns the wire field names on which a and b
// disagree, in canonical order.
func ParagraphStyleFields(a, b model.ParagraphStyle) []string {
	var out []string
	if a.Named != b.Named {
		out = append(out, "namedStyleType")
	}
	if a.Alignment != b.Alignment {
		out = append(out, "alignment")
	}
	if !eqF(a.IndentStartPt, b.IndentStartPt) {
		out = append(out, "indentStart")
	}
	if !eqF(a.IndentFirstLinePt, b.IndentFirstLinePt) {
		out = append(out, "indentFirstLine")
	}
	return out
}

// ParagraphStyleFieldsSet returns the wire field names set on s (relative
// to the default style), for styling freshly inserted paragraphs.
func ParagraphStyleFieldsSet(s model.ParagraphStyle) []string {
	return ParagraphStyleFields(s, model.ParagraphStyle{})
}

func eqB(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqS(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqF(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
