package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/redline/model"
)

const codeFontFamily = "Courier New"

// Open parses the HTML file at the given path.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from r. The character encoding is detected from
// the stream and converted to UTF-8 before parsing.
func OpenReader(r io.Reader) (*model.Document, error) {
	cr, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("htmldoc: detecting encoding: %w", err)
	}
	root, err := html.Parse(cr)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parsing: %w", err)
	}

	c := &converter{}
	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	c.blockChildren(body, blockCtx{})
	if len(c.content) == 0 {
		c.content = []model.Element{&model.Paragraph{}}
	}

	section := &model.Section{Kind: model.SectionBody, Content: c.content}
	section.EndIndex = section.End()
	return &model.Document{
		Title:    strings.TrimSpace(textOf(findElement(root, "title"))),
		Sections: []*model.Section{section},
	}, nil
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
	content []model.Element
	listSeq int
}

// blockChildren walks n's children, grouping consecutive inline nodes
// into implicit paragraphs between block-level elements.
func (c *converter) blockChildren(n *html.Node, ctx blockCtx) {
	var pending []*html.Node
	flush := func() {
		if len(pending) == 0 {
			return
		}
		if p := c.inlineParagraph(pending, model.TextStyle{}); p != nil {
			ctx.apply(p)
			c.content = append(c.content, p)
		}
		pending = nil
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && isBlockTag(child.Data) {
			flush()
			c.block(child, ctx)
			continue
		}
		if child.Type == html.TextNode || child.Type == html.ElementNode {
			pending = append(pending, child)
		}
	}
	flush()
}

func (c *converter) block(n *html.Node, ctx blockCtx) {
	if skipTag(n.Data) {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		p := c.inlineParagraph(children(n), model.TextStyle{})
		if p == nil {
			return
		}
		p.Style.Named = model.HeadingStyle(int(n.Data[1] - '0'))
		ctx.apply(p)
		c.content = append(c.content, p)

	case "p":
		p := c.inlineParagraph(children(n), model.TextStyle{})
		if p == nil {
			p = &model.Paragraph{}
		}
		ctx.apply(p)
		c.content = append(c.content, p)

	case "div", "article", "section", "main", "header", "footer",
		"nav", "aside", "figure", "figcaption", "details", "summary":
		if containsBlock(n) {
			c.blockChildren(n, ctx)
			return
		}
		if p := c.inlineParagraph(children(n), model.TextStyle{}); p != nil {
			ctx.apply(p)
			c.content = append(c.content, p)
		}

	case "ul", "ol":
		c.list(n, 0)

	case "pre":
		text := strings.Trim(rawText(n), "\n")
		if text == "" {
			return
		}
		p := &model.Paragraph{Runs: []model.TextRun{{
			Text:  strings.ReplaceAll(text, "\n", "\v"),
			Style: model.TextStyle{FontFamily: model.String(codeFontFamily)},
		}}}
		ctx.apply(p)
		c.content = append(c.content, p)

	case "blockquote":
		ctx.quoted = true
		c.blockChildren(n, ctx)

	case "hr":
		c.content = append(c.content, &model.Paragraph{Runs: []model.TextRun{
			{Marker: &model.Marker{Kind: model.MarkerHorizontalRule}},
		}})

	case "table":
		c.table(n)

	default:
		c.blockChildren(n, ctx)
	}
}

// list converts ul/ol subtrees into bulleted paragraphs. Nested lists
// inside an item continue at the next nesting level.
func (c *converter) list(n *html.Node, depth int) {
	c.listSeq++
	bullet := model.Bullet{
		ListID:  fmt.Sprintf("list-%d", c.listSeq),
		Nesting: depth,
		Ordered: n.Data == "ol",
	}
	for item := n.FirstChild; item != nil; item = item.NextSibling {
		if item.Type != html.ElementNode || item.Data != "li" {
			continue
		}
		var inline []*html.Node
		flush := func() {
			if p := c.inlineParagraph(inline, model.TextStyle{}); p != nil {
				b := bullet
				p.Bullet = &b
				c.content = append(c.content, p)
			}
			inline = nil
		}
		for child := item.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && (child.Data == "ul" || child.Data == "ol") {
				flush()
				c.list(child, depth+1)
				continue
			}
			if child.Type == html.ElementNode && isBlockTag(child.Data) {
				flush()
				c.block(child, blockCtx{bullet: &bullet})
				continue
			}
			inline = append(inline, child)
		}
		flush()
	}
}

func (c *converter) table(n *html.Node) {
	var rows []*html.Node
	var headerRows int
	for group := n.FirstChild; group != nil; group = group.NextSibling {
		if group.Type != html.ElementNode {
			continue
		}
		switch group.Data {
		case "thead":
			for tr := group.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					rows = append(rows, tr)
					headerRows++
				}
			}
		case "tbody", "tfoot":
			for tr := group.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					rows = append(rows, tr)
				}
			}
		case "tr":
			rows = append(rows, group)
		}
	}
	if len(rows) == 0 {
		return
	}

	cols := 0
	for _, tr := range rows {
		if n := len(cellsOf(tr)); n > cols {
			cols = n
		}
	}
	if cols == 0 {
		return
	}

	table := model.NewTable(len(rows), cols)
	for r, tr := range rows {
		for col, td := range cellsOf(tr) {
			cell := table.GetCell(r, col)
			cell.RowSpan = spanAttr(td, "rowspan")
			cell.ColSpan = spanAttr(td, "colspan")

			base := model.TextStyle{}
			if r < headerRows || td.Data == "th" {
				base.Bold = model.Bool(true)
			}
			if containsBlock(td) {
				sub := &converter{listSeq: c.listSeq}
				sub.blockChildren(td, blockCtx{})
				c.listSeq = sub.listSeq
				if len(sub.content) > 0 {
					cell.Content = sub.content
				}
				continue
			}
			if p := c.inlineParagraph(children(td), base); p != nil {
				cell.Content = []model.Element{p}
			}
		}
	}
	c.content = append(c.content, table)
}

func cellsOf(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, c)
		}
	}
	return cells
}

func spanAttr(n *html.Node, key string) int {
	if v, err := strconv.Atoi(attr(n, key)); err == nil && v > 1 {
		return v
	}
	return 1
}

// inlineParagraph builds a paragraph from a run of inline nodes. Returns
// nil when the nodes hold no visible content.
func (c *converter) inlineParagraph(nodes []*html.Node, base model.TextStyle) *model.Paragraph {
	var runs []model.TextRun
	for _, n := range nodes {
		runs = append(runs, c.inline(n, base)...)
	}
	runs = trimRuns(mergeRuns(runs))
	if len(runs) == 0 {
		return nil
	}
	return &model.Paragraph{Runs: runs}
}

// inline converts one inline node, carrying the accumulated text style.
func (c *converter) inline(n *html.Node, style model.TextStyle) []model.TextRun {
	if n.Type == html.TextNode {
		txt := collapseSpace(n.Data)
		if txt == "" {
			return nil
		}
		return []model.TextRun{{Text: txt, Style: style}}
	}
	if n.Type != html.ElementNode || skipTag(n.Data) {
		return nil
	}

	switch n.Data {
	case "b", "strong":
		style.Bold = model.Bool(true)
	case "i", "em":
		style.Italic = model.Bool(true)
	case "u", "ins":
		style.Underline = model.Bool(true)
	case "s", "del", "strike":
		style.Strikethrough = model.Bool(true)
	case "code", "kbd", "samp", "tt":
		style.FontFamily = model.String(codeFontFamily)
	case "a":
		if href := attr(n, "href"); href != "" {
			style.LinkURL = model.String(href)
		}
	case "br":
		return []model.TextRun{{Text: "\v", Style: style}}
	case "img":
		return []model.TextRun{{Style: style, Marker: &model.Marker{
			Kind: model.MarkerImage,
			Attrs: map[string]string{
				"src": attr(n, "src"),
				"alt": attr(n, "alt"),
			},
		}}}
	}

	var runs []model.TextRun
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		runs = append(runs, c.inline(child, style)...)
	}
	return runs
}

func isBlockTag(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "div", "ul", "ol",
		"table", "pre", "blockquote", "hr", "article", "section", "main",
		"header", "footer", "nav", "aside", "figure", "figcaption",
		"details", "summary":
		return true
	}
	return false
}

func skipTag(name string) bool {
	switch name {
	case "script", "style", "noscript", "template", "svg", "math",
		"iframe", "object", "embed", "head", "title", "meta", "link":
		return true
	}
	return false
}

func containsBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlockTag(c.Data) {
			return true
		}
	}
	return false
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func findElement(n *html.Node, tagName string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textOf returns the concatenated text of a subtree with whitespace
// collapsed. Safe on nil.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	return collapseSpace(rawText(n))
}

func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
				continue
			}
			if c.Type == html.ElementNode && skipTag(c.Data) {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapseSpace folds any whitespace run into a single space, preserving
// leading and trailing separators between inline siblings.
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			space = true
		default:
			if space {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// mergeRuns joins consecutive non-marker runs carrying the same style.
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

// trimRuns strips leading and trailing whitespace from the run sequence
// and drops runs left empty.
func trimRuns(runs []model.TextRun) []model.TextRun {
	for len(runs) > 0 && runs[0].Marker == nil {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " ")
		if runs[0].Text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 && runs[len(runs)-1].Marker == nil {
		last := &runs[len(runs)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		runs = runs[:len(runs)-1]
	}
	return runs
}
