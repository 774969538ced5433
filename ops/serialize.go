package ops

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/redline/model"
)

// Serialization errors.
var (
	// ErrUnknownOperation indicates an operation kind the serializer does
	// not handle. This is a programming error in the engine, never a
	// recoverable runtime condition.
	ErrUnknownOperation = errors.New("ops: unknown operation kind")
)

// Bullet presets used by createParagraphBullets.
const (
	BulletPresetUnordered = "BULLET_DISC_CIRCLE_SQUARE"
	BulletPresetOrdered   = "NUMBERED_DECIMAL_ALPHA_ROMAN"
)

// Serialize maps every operation to its wire-format request, preserving
// order. No operation is ever silently dropped.
func Serialize(list []Operation) ([]Request, error) {
	out := make([]Request, 0, len(list))
	for i, op := range list {
		req, err := serializeOne(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		out = append(out, req)
	}
	return out, nil
}

func serializeOne(op Operation) (Request, error) {
	rng := Range{
		StartIndex: op.StartIndex,
		EndIndex:   op.EndIndex,
		SegmentID:  op.SegmentID,
		TabID:      op.TabID,
	}
	loc := Location{
		Index:     op.Index,
		SegmentID: op.SegmentID,
		TabID:     op.TabID,
	}

	switch op.Kind {
	case KindDeleteContentRange:
		return Request{DeleteContentRange: &DeleteContentRangeRequest{Range: rng}}, nil

	case KindInsertText:
		return Request{InsertText: &InsertTextRequest{Text: op.Text, Location: loc}}, nil

	case KindUpdateTextStyle:
		if op.TextStyle == nil {
			return Request{}, fmt.Errorf("%w: updateTextStyle without a style payload", ErrUnknownOperation)
		}
		return Request{UpdateTextStyle: &UpdateTextStyleRequest{
			Range:     rng,
			TextStyle: wireTextStyle(*op.TextStyle),
			Fields:    strings.Join(op.Fields, ","),
		}}, nil

	case KindUpdateParagraphStyle:
		if op.ParagraphStyle == nil {
			return Request{}, fmt.Errorf("%w: updateParagraphStyle without a style payload", ErrUnknownOperation)
		}
		return Request{UpdateParagraphStyle: &UpdateParagraphStyleRequest{
			Range:          rng,
			ParagraphStyle: wireParagraphStyle(*op.ParagraphStyle),
			Fields:         strings.Join(op.Fields, ","),
		}}, nil

	case KindCreateParagraphBullets:
		preset := BulletPresetUnordered
		if op.Bullet != nil && op.Bullet.Ordered {
			preset = BulletPresetOrdered
		}
		return Request{CreateParagraphBullets: &CreateParagraphBulletsRequest{
			Range:        rng,
			BulletPreset: preset,
		}}, nil

	case KindDeleteParagraphBullets:
		return Request{DeleteParagraphBullets: &DeleteParagraphBulletsRequest{Range: rng}}, nil

	case KindInsertTable:
		return Request{InsertTable: &InsertTableRequest{
			Rows:     op.Rows,
			Columns:  op.Cols,
			Location: loc,
		}}, nil

	case KindInsertPageBreak:
		return Request{InsertPageBreak: &InsertPageBreakRequest{Location: loc}}, nil

	case KindInsertSectionBreak:
		st := op.SectionType
		if st == "" {
			st = "NEXT_PAGE"
		}
		return Request{InsertSectionBreak: &InsertSectionBreakRequest{
			SectionType: st,
			Location:    loc,
		}}, nil

	case KindCreateFootnote:
		return Request{CreateFootnote: &CreateFootnoteRequest{Location: loc}}, nil

	case KindCreateHeader:
		return Request{CreateHeader: &CreateHeaderRequest{Type: headerFooterType(op)}}, nil

	case KindCreateFooter:
		return Request{CreateFooter: &CreateFooterRequest{Type: headerFooterType(op)}}, nil

	case KindDeleteHeader:
		return Request{DeleteHeader: &DeleteHeaderRequest{HeaderID: op.SegmentID}}, nil

	case KindDeleteFooter:
		return Request{DeleteFooter: &DeleteFooterRequest{FooterID: op.SegmentID}}, nil

	default:
		return Request{}, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op.Kind))
	}
}

func headerFooterType(op Operation) string {
	if op.HeaderFooterType != "" {
		return op.HeaderFooterType
	}
	return "DEFAULT"
}

func wireTextStyle(s model.TextStyle) WireTextStyle {
	out := WireTextStyle{
		Bold:          s.Bold,
		Italic:        s.Italic,
		Underline:     s.Underline,
		Strikethrough: s.Strikethrough,
	}
	if s.FontFamily != nil {
		out.WeightedFontFamily = &WeightedFontFamily{FontFamily: *s.FontFamily}
	}
	if s.FontSizePt != nil {
		out.FontSize = &Dimension{Magnitude: *s.FontSizePt, Unit: "PT"}
	}
	if s.ForegroundColor != nil {
		out.ForegroundColor = &OptionalColor{Color: &Color{RGBColor: parseHexColor(*s.ForegroundColor)}}
	}
	if s.LinkURL != nil {
		out.Link = &Link{URL: *s.LinkURL}
	}
	return out
}

func wireParagraphStyle(s model.ParagraphStyle) WireParagraphStyle {
	out := WireParagraphStyle{
		NamedStyleType: s.Named.String(),
	}
	if s.Alignment != model.AlignUnset {
		out.Alignment = s.Alignment.String()
	}
	if s.IndentStartPt != nil {
		out.IndentStart = &Dimension{Magnitude: *s.IndentStartPt, Unit: "PT"}
	}
	if s.IndentFirstLinePt != nil {
		out.IndentFirstLine = &Dimension{Magnitude: *s.IndentFirstLinePt, Unit: "PT"}
	}
	return out
}

// parseHexColor converts "#rrggbb" to normalized RGB components. Malformed
// values produce black rather than failing: color fidelity is cosmetic,
// offsets are not.
func parseHexColor(hex string) *RGBColor {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return &RGBColor{}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return &RGBColor{}
	}
	return &RGBColor{
		Red:   float64(v>>16&0xFF) / 255.0,
		Green: float64(v>>8&0xFF) / 255.0,
		Blue:  float64(v&0xFF) / 255.0,
	}
}
