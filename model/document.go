package model

// SectionKind identifies which segment of the live document a section
// addresses.
type SectionKind int

const (
	SectionBody SectionKind = iota
	SectionHeader
	SectionFooter
	SectionFootnote
)

func (sk SectionKind) String() string {
	switch sk {
	case SectionBody:
		return "Body"
	case SectionHeader:
		return "Header"
	case SectionFooter:
		return "Footer"
	case SectionFootnote:
		return "Footnote"
	default:
		return "Unknown"
	}
}

// Section is one independently offset-addressed segment: the body, a
// header, a footer, or a footnote.
type Section struct {
	Kind SectionKind
	// ID is the segment identifier; empty for the body.
	ID      string
	Content []Element
	// EndIndex, when non-zero, is the end-of-segment offset asserted by
	// the codec that built this tree. CheckIndexFidelity compares it
	// against the computed value.
	EndIndex int
}

// StartIndex returns the absolute index where the section's content
// begins. Body content starts at 1 because index 0 holds an immutable
// leading section break; every other segment kind starts at 0.
func (s *Section) StartIndex() int {
	if s.Kind == SectionBody {
		return 1
	}
	return 0
}

// Length returns the summed length of the section's content.
func (s *Section) Length() int {
	n := 0
	for _, el := range s.Content {
		n += el.Length()
	}
	return n
}

// End returns the computed end-of-segment offset.
func (s *Section) End() int {
	return s.StartIndex() + s.Length()
}

// Document is a parsed document tree. It is built once, diffed, and
// discarded; diffing never mutates it.
type Document struct {
	ID         string
	RevisionID string
	Title      string
	// TabID is the document tab the sections belong to; empty for the
	// default tab.
	TabID    string
	Sections []*Section
}

// NewDocument creates a document with an empty body section containing a
// single empty paragraph, the minimum valid document.
func NewDocument() *Document {
	return &Document{
		Sections: []*Section{
			{Kind: SectionBody, Content: []Element{&Paragraph{}}},
		},
	}
}

// Body returns the body section, or nil if the document has none.
func (d *Document) Body() *Section {
	for _, s := range d.Sections {
		if s.Kind == SectionBody {
			return s
		}
	}
	return nil
}

// FindSection returns the section with the given kind and id, or nil.
func (d *Document) FindSection(kind SectionKind, id string) *Section {
	for _, s := range d.Sections {
		if s.Kind == kind && s.ID == id {
			return s
		}
	}
	return nil
}

// PlainText returns the body's text with one line per paragraph, markers
// rendered as [MarkerPlaceholder]. Tables contribute their cell paragraphs
// in row-major order. Intended for preview and test use, not for offsets.
func (d *Document) PlainText() string {
	body := d.Body()
	if body == nil {
		return ""
	}
	var b []byte
	var walk func(els []Element)
	walk = func(els []Element) {
		for _, el := range els {
			switch e := el.(type) {
			case *Paragraph:
				b = append(b, e.Text()...)
				b = append(b, '\n')
			case *Table:
				for i := range e.Rows {
					for j := range e.Rows[i] {
						walk(e.Rows[i][j].Content)
					}
				}
			case *SpecialElement:
				b = append(b, MarkerPlaceholder...)
				b = append(b, '\n')
			}
		}
	}
	walk(body.Content)
	return string(b)
}
