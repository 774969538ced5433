package ops

// Request is the wire-format union consumed by the remote API's batch
// update endpoint. Exactly one field is set per request.
type Request struct {
	DeleteContentRange     *DeleteContentRangeRequest     `json:"deleteContentRange,omitempty"`
	InsertText             *InsertTextRequest             `json:"insertText,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyleRequest   `json:"updateParagraphStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty"`
	DeleteParagraphBullets *DeleteParagraphBulletsRequest `json:"deleteParagraphBullets,omitempty"`
	InsertTable            *InsertTableRequest            `json:"insertTable,omitempty"`
	InsertPageBreak        *InsertPageBreakRequest        `json:"insertPageBreak,omitempty"`
	InsertSectionBreak     *InsertSectionBreakRequest     `json:"insertSectionBreak,omitempty"`
	CreateFootnote         *CreateFootnoteRequest         `json:"createFootnote,omitempty"`
	CreateHeader           *CreateHeaderRequest           `json:"createHeader,omitempty"`
	CreateFooter           *CreateFooterRequest           `json:"createFooter,omitempty"`
	DeleteHeader           *DeleteHeaderRequest           `json:"deleteHeader,omitempty"`
	DeleteFooter           *DeleteFooterRequest           `json:"deleteFooter,omitempty"`
}

// Range addresses a half-open span of a segment.
type Range struct {
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	SegmentID  string `json:"segmentId,omitempty"`
	TabID      string `json:"tabId,omitempty"`
}

// Location addresses a single position in a segment.
type Location struct {
	Index     int    `json:"index"`
	SegmentID string `json:"segmentId,omitempty"`
	TabID     string `json:"tabId,omitempty"`
}

type DeleteContentRangeRequest struct {
	Range Range `json:"range"`
}

type InsertTextRequest struct {
	Text     string   `json:"text"`
	Location Location `json:"location"`
}

type UpdateTextStyleRequest struct {
	Range     Range         `json:"range"`
	TextStyle WireTextStyle `json:"textStyle"`
	Fields    string        `json:"fields"`
}

type UpdateParagraphStyleRequest struct {
	Range          Range              `json:"range"`
	ParagraphStyle WireParagraphStyle `json:"paragraphStyle"`
	Fields         string             `json:"fields"`
}

type CreateParagraphBulletsRequest struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

type DeleteParagraphBulletsRequest struct {
	Range Range `json:"range"`
}

type InsertTableRequest struct {
	Rows     int      `json:"rows"`
	Columns  int      `json:"columns"`
	Location Location `json:"location"`
}

type InsertPageBreakRequest struct {
	Location Location `json:"location"`
}

type InsertSectionBreakRequest struct {
	SectionType string   `json:"sectionType"`
	Location    Location `json:"location"`
}

type CreateFootnoteRequest struct {
	Location Location `json:"location"`
}

type CreateHeaderRequest struct {
	Type string `json:"type"`
}

type CreateFooterRequest struct {
	Type string `json:"type"`
}

type DeleteHeaderRequest struct {
	HeaderID string `json:"headerId"`
}

type DeleteFooterRequest struct {
	FooterID string `json:"footerId"`
}

// WireTextStyle mirrors the remote API's textStyle object.
type WireTextStyle struct {
	Bold               *bool               `json:"bold,omitempty"`
	Italic             *bool               `json:"italic,omitempty"`
	Underline          *bool               `json:"underline,omitempty"`
	Strikethrough      *bool               `json:"strikethrough,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`
	FontSize           *Dimension          `json:"fontSize,omitempty"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor,omitempty"`
	Link               *Link               `json:"link,omitempty"`
}

// WireParagraphStyle mirrors the remote API's paragraphStyle object.
type WireParagraphStyle struct {
	NamedStyleType  string     `json:"namedStyleType,omitempty"`
	Alignment       string     `json:"alignment,omitempty"`
	IndentStart     *Dimension `json:"indentStart,omitempty"`
	IndentFirstLine *Dimension `json:"indentFirstLine,omitempty"`
}

type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

type Link struct {
	URL string `json:"url"`
}

type OptionalColor struct {
	Color *Color `json:"color,omitempty"`
}

type Color struct {
	RGBColor *RGBColor `json:"rgbColor,omitempty"`
}

type RGBColor struct {
	Red   float64 `json:"red,omitempty"`
	Green float64 `json:"green,omitempty"`
	Blue  float64 `json:"blue,omitempty"`
}
