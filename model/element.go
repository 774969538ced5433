package model

// ElementType identifies the concrete type of a section-level element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeParagraph
	ElementTypeTable
	ElementTypeSpecial
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeTable:
		return "Table"
	case ElementTypeSpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

// Element is the interface for all section-level content.
type Element interface {
	Type() ElementType
	// Length returns the element's contribution to its segment in UTF-16
	// code units, including any structural markers the element owns.
	Length() int
}

// MarkerKind identifies an atomic inline element that occupies exactly one
// UTF-16 code unit and carries no editable text.
type MarkerKind int

const (
	MarkerHorizontalRule MarkerKind = iota + 1
	MarkerPageBreak
	MarkerColumnBreak
	MarkerImage
	MarkerFootnoteRef
	MarkerPerson
	MarkerDate
	MarkerEquation
)

func (mk MarkerKind) String() string {
	switch mk {
	case MarkerHorizontalRule:
		return "HorizontalRule"
	case MarkerPageBreak:
		return "PageBreak"
	case MarkerColumnBreak:
		return "ColumnBreak"
	case MarkerImage:
		return "Image"
	case MarkerFootnoteRef:
		return "FootnoteRef"
	case MarkerPerson:
		return "Person"
	case MarkerDate:
		return "Date"
	case MarkerEquation:
		return "Equation"
	default:
		return "Unknown"
	}
}

// Marker is an atomic inline object embedded in a paragraph. Attrs holds
// marker-specific attributes (image source, mentioned person id, footnote
// segment id) keyed by attribute name.
type Marker struct {
	Kind  MarkerKind
	Attrs map[string]string
}

// MarkerPlaceholder is the single-code-unit rune substituted for an atomic
// marker whenever marker content must be represented as plain text
// (U+FFFC OBJECT REPLACEMENT CHARACTER).
const MarkerPlaceholder = "￼"

// TextRun is a contiguous span of identically styled paragraph content.
// A run is either text (Marker nil) or a single atomic marker (Marker
// non-nil, Text ignored for length purposes).
type TextRun struct {
	Text   string
	Style  TextStyle
	Marker *Marker
}

// Length returns the run's length in UTF-16 code units. Marker runs are
// always exactly one unit.
func (r TextRun) Length() int {
	if r.Marker != nil {
		return 1
	}
	return UTF16Len(r.Text)
}

// PlainText returns the run's text, with markers rendered as
// [MarkerPlaceholder] so that string length in UTF-16 units matches Length.
func (r TextRun) PlainText() string {
	if r.Marker != nil {
		return MarkerPlaceholder
	}
	return r.Text
}

// NamedStyle is a paragraph's named style tag.
type NamedStyle int

const (
	StyleNormalText NamedStyle = iota
	StyleTitle
	StyleSubtitle
	StyleHeading1
	StyleHeading2
	StyleHeading3
	StyleHeading4
	StyleHeading5
	StyleHeading6
)

func (ns NamedStyle) String() string {
	switch ns {
	case StyleNormalText:
		return "NORMAL_TEXT"
	case StyleTitle:
		return "TITLE"
	case StyleSubtitle:
		return "SUBTITLE"
	case StyleHeading1:
		return "HEADING_1"
	case StyleHeading2:
		return "HEADING_2"
	case StyleHeading3:
		return "HEADING_3"
	case StyleHeading4:
		return "HEADING_4"
	case StyleHeading5:
		return "HEADING_5"
	case StyleHeading6:
		return "HEADING_6"
	default:
		return "NORMAL_TEXT"
	}
}

// HeadingStyle returns the named style for a heading level 1-6, clamping
// out-of-range levels.
func HeadingStyle(level int) NamedStyle {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return StyleHeading1 + NamedStyle(level-1)
}

// Alignment is a paragraph's horizontal alignment. AlignUnset means the
// alignment is inherited and never emitted.
type Alignment int

const (
	AlignUnset Alignment = iota
	AlignStart
	AlignCenter
	AlignEnd
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "START"
	case AlignCenter:
		return "CENTER"
	case AlignEnd:
		return "END"
	case AlignJustify:
		return "JUSTIFIED"
	default:
		return "UNSPECIFIED"
	}
}

// TextStyle is the character-level style domain. Every field is optional;
// a nil field means "unset, inherit" and is excluded from comparisons used
// to build update field masks.
type TextStyle struct {
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	FontFamily    *string
	FontSizePt    *float64
	// ForegroundColor is a hex color of the form "#rrggbb".
	ForegroundColor *string
	LinkURL         *string
}

// Equal reports whether two text styles are identical field by field,
// treating unset and set-to-different-value both as inequality.
func (s TextStyle) Equal(o TextStyle) bool {
	return eqBool(s.Bold, o.Bold) &&
		eqBool(s.Italic, o.Italic) &&
		eqBool(s.Underline, o.Underline) &&
		eqBool(s.Strikethrough, o.Strikethrough) &&
		eqString(s.FontFamily, o.FontFamily) &&
		eqFloat(s.FontSizePt, o.FontSizePt) &&
		eqString(s.ForegroundColor, o.ForegroundColor) &&
		eqString(s.LinkURL, o.LinkURL)
}

// IsZero reports whether no field is set.
func (s TextStyle) IsZero() bool {
	return s.Equal(TextStyle{})
}

// ParagraphStyle is the paragraph-level style domain.
type ParagraphStyle struct {
	Named     NamedStyle
	Alignment Alignment
	// Indents in points; nil means unset. Nested bullets set IndentStartPt.
	IndentStartPt     *float64
	IndentFirstLinePt *float64
}

// Equal reports field-by-field equality of two paragraph styles.
func (s ParagraphStyle) Equal(o ParagraphStyle) bool {
	return s.Named == o.Named &&
		s.Alignment == o.Alignment &&
		eqFloat(s.IndentStartPt, o.IndentStartPt) &&
		eqFloat(s.IndentFirstLinePt, o.IndentFirstLinePt)
}

// IsDefault reports whether the style is the zero (normal text) style.
func (s ParagraphStyle) IsDefault() bool {
	return s.Equal(ParagraphStyle{})
}

// Bullet describes a paragraph's list membership. ListID identifies the
// containing list in a specific document instance and is volatile: two
// documents representing the same content use unrelated ids, so ListID is
// excluded from equality.
type Bullet struct {
	ListID  string
	Nesting int
	Ordered bool
}

// Equal compares bullets ignoring the volatile ListID.
func (b *Bullet) Equal(o *Bullet) bool {
	if b == nil || o == nil {
		return b == nil && o == nil
	}
	return b.Nesting == o.Nesting && b.Ordered == o.Ordered
}

// Paragraph is an ordered run sequence terminated by a structural newline.
type Paragraph struct {
	Runs   []TextRun
	Style  ParagraphStyle
	Bullet *Bullet
	// StyleClass is an optional reference into a document style table.
	StyleClass string
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }

// Length returns the paragraph's length: run lengths plus the trailing
// structural newline. An empty paragraph is exactly one unit.
func (p *Paragraph) Length() int {
	n := 1
	for _, r := range p.Runs {
		n += r.Length()
	}
	return n
}

// Text returns the paragraph's plain text without the trailing newline,
// markers rendered as [MarkerPlaceholder].
func (p *Paragraph) Text() string {
	var b []byte
	for _, r := range p.Runs {
		b = append(b, r.PlainText()...)
	}
	return string(b)
}

// SpecialKind identifies a standalone structural element.
type SpecialKind int

const (
	SpecialPageBreak SpecialKind = iota + 1
	SpecialSectionBreak
	SpecialHorizontalRule
)

func (sk SpecialKind) String() string {
	switch sk {
	case SpecialPageBreak:
		return "PageBreak"
	case SpecialSectionBreak:
		return "SectionBreak"
	case SpecialHorizontalRule:
		return "HorizontalRule"
	default:
		return "Unknown"
	}
}

// SpecialElement is a standalone structural unit that is not embedded in a
// paragraph. It contributes a fixed single unit to its segment.
type SpecialElement struct {
	Kind SpecialKind
	// Attrs holds non-volatile attributes (e.g. section type for a
	// section break).
	Attrs map[string]string
}

func (s *SpecialElement) Type() ElementType { return ElementTypeSpecial }
func (s *SpecialElement) Length() int       { return 1 }

func eqBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Bool returns a pointer to b, for building optional style fields.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
