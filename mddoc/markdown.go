package mddoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tsawler/redline/model"
)

// ErrParse indicates the Markdown source could not be parsed.
var ErrParse = errors.New("mddoc: cannot parse markdown source")

// codeFontFamily styles inline code and code blocks.
const codeFontFamily = "Courier New"

// Parse converts GitHub Flavored Markdown into a body-only document.
// The body's end index is asserted so a later diff validates fidelity.
func Parse(src []byte) (*model.Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))
	if root == nil {
		return nil, ErrParse
	}

	c := &converter{src: src}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		c.block(child, blockCtx{})
	}
	if len(c.content) == 0 {
		c.content = []model.Element{&model.Paragraph{}}
	}

	body := &model.Section{Kind: model.SectionBody, Content: c.content}
	body.EndIndex = body.End()
	return &model.Document{Sections: []*model.Section{body}}, nil
}

// blockCtx carries list and quote context down into nested blocks.
type blockCtx struct {
	bullet *model.Bullet
	quoted bool
}

func (ctx blockCtx) apply(p *model.Paragraph) {
	if ctx.bullet != nil {
		b := *ctx.bullet
		p.Bullet = &b
	}
	if ctx.quoted && p.Style.IndentStartPt == nil {
		p.Style.IndentStartPt = model.Float(36)
	}
}

type converter struct {
	src     []byte
	content []model.Element
	listSeq int
}

func (c *converter) block(n ast.Node, ctx blockCtx) {
	switch t := n.(type) {
	case *ast.Heading:
		p := c.paragraph(t)
		p.Style.Named = model.HeadingStyle(t.Level)
		ctx.apply(p)
		c.content = append(c.content, p)
	case *ast.Paragraph, *ast.TextBlock:
		p := c.paragraph(n)
		ctx.apply(p)
		c.content = append(c.content, p)
	case *ast.ThematicBreak:
		c.content = append(c.content, &model.Paragraph{Runs: []model.TextRun{
			{Marker: &model.Marker{Kind: model.MarkerHorizontalRule}},
		}})
	case *ast.FencedCodeBlock:
		c.codeBlock(t, ctx)
	case *ast.CodeBlock:
		c.codeBlock(t, ctx)
	case *ast.Blockquote:
		ctx.quoted = true
		for child := t.FirstChild(); child != nil; child = child.NextSibling() {
			c.block(child, ctx)
		}
	case *ast.List:
		c.list(t, 0)
	case *east.Table:
		c.table(t)
	case *ast.HTMLBlock:
		// Raw HTML has no model representation.
	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			c.block(child, ctx)
		}
	}
}

func (c *converter) codeBlock(n ast.Node, ctx blockCtx) {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimRight(string(seg.Value(c.src)), "\n"))
	}
	p := &model.Paragraph{Runs: []model.TextRun{{
		Text:  strings.Join(parts, "\v"),
		Style: model.TextStyle{FontFamily: model.String(codeFontFamily)},
	}}}
	ctx.apply(p)
	c.content = append(c.content, p)
}

// list flattens a (possibly nested) list into bulleted paragraphs. Each
// list gets a fresh volatile identifier; nesting depth carries into the
// bullet so the patch engine can emit indentation.
func (c *converter) list(l *ast.List, depth int) {
	c.listSeq++
	bullet := model.Bullet{
		ListID:  fmt.Sprintf("list-%d", c.listSeq),
		Nesting: depth,
		Ordered: l.IsOrdered(),
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				c.list(nested, depth+1)
				continue
			}
			c.block(child, blockCtx{bullet: &bullet})
		}
	}
}

func (c *converter) table(t *east.Table) {
	var rows [][]*model.Paragraph
	for group := t.FirstChild(); group != nil; group = group.NextSibling() {
		switch g := group.(type) {
		case *east.TableHeader:
			rows = append(rows, c.tableRowCells(g, true))
		case *east.TableRow:
			rows = append(rows, c.tableRowCells(g, false))
		}
	}
	if len(rows) == 0 {
		return
	}
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	table := model.NewTable(len(rows), cols)
	for r, cells := range rows {
		for col, p := range cells {
			table.GetCell(r, col).Content = []model.Element{p}
		}
	}
	c.content = append(c.content, table)
}

func (c *converter) tableRowCells(row ast.Node, header bool) []*model.Paragraph {
	var cells []*model.Paragraph
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		base := model.TextStyle{}
		if header {
			base.Bold = model.Bool(true)
		}
		cells = append(cells, &model.Paragraph{Runs: mergeRuns(c.inlines(cell, base))})
	}
	return cells
}

func (c *converter) paragraph(n ast.Node) *model.Paragraph {
	return &model.Paragraph{Runs: mergeRuns(c.inlines(n, model.TextStyle{}))}
}

// inlines walks an inline subtree carrying the accumulated text style.
func (c *converter) inlines(n ast.Node, style model.TextStyle) []model.TextRun {
	var runs []model.TextRun
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			txt := string(v.Segment.Value(c.src))
			if v.SoftLineBreak() {
				txt += " "
			} else if v.HardLineBreak() {
				txt += "\v"
			}
			if txt != "" {
				runs = append(runs, model.TextRun{Text: txt, Style: style})
			}
		case *ast.String:
			if len(v.Value) > 0 {
				runs = append(runs, model.TextRun{Text: string(v.Value), Style: style})
			}
		case *ast.Emphasis:
			s := style
			if v.Level >= 2 {
				s.Bold = model.Bool(true)
			} else {
				s.Italic = model.Bool(true)
			}
			runs = append(runs, c.inlines(v, s)...)
		case *east.Strikethrough:
			s := style
			s.Strikethrough = model.Bool(true)
			runs = append(runs, c.inlines(v, s)...)
		case *ast.CodeSpan:
			s := style
			s.FontFamily = model.String(codeFontFamily)
			if txt := c.plainText(v); txt != "" {
				runs = append(runs, model.TextRun{Text: txt, Style: s})
			}
		case *ast.Link:
			s := style
			s.LinkURL = model.String(string(v.Destination))
			runs = append(runs, c.inlines(v, s)...)
		case *ast.AutoLink:
			s := style
			url := string(v.URL(c.src))
			s.LinkURL = model.String(url)
			runs = append(runs, model.TextRun{Text: url, Style: s})
		case *ast.Image:
			runs = append(runs, model.TextRun{Style: style, Marker: &model.Marker{
				Kind: model.MarkerImage,
				Attrs: map[string]string{
					"src": string(v.Destination),
					"alt": c.plainText(v),
				},
			}})
		case *ast.RawHTML:
			// Dropped, same as block-level raw HTML.
		default:
			runs = append(runs, c.inlines(v, style)...)
		}
	}
	return runs
}

func (c *converter) plainText(n ast.Node) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				sb.Write(t.Segment.Value(c.src))
				continue
			}
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

// mergeRuns joins consecutive non-marker runs that carry the same style,
// keeping the run shape stable regardless of how the parser split text.
func mergeRuns(runs []model.TextRun) []model.TextRun {
	if len(runs) < 2 {
		return runs
	}
	out := runs[:1]
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if r.Marker == nil && last.Marker == nil && last.Style.Equal(r.Style) {
			last.Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}
