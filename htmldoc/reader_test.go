package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/redline/model"
)

func parseBody(t *testing.T, src string) []model.Element {
	t.Helper()
	doc, err := OpenReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	require.Equal(t, model.SectionBody, doc.Sections[0].Kind)
	require.NoError(t, doc.Validate())
	return doc.Sections[0].Content
}

func mustParagraph(t *testing.T, el model.Element) *model.Paragraph {
	t.Helper()
	p, ok := el.(*model.Paragraph)
	require.True(t, ok, "expected paragraph, got %T", el)
	return p
}

func TestOpenReaderBasic(t *testing.T) {
	content := parseBody(t, `<html><head><title>My Page</title></head>
<body><h1>Welcome</h1><p>First paragraph.</p></body></html>`)
	require.Len(t, content, 2)

	h := mustParagraph(t, content[0])
	assert.Equal(t, model.StyleHeading1, h.Style.Named)
	assert.Equal(t, "Welcome", h.Text())

	p := mustParagraph(t, content[1])
	assert.Equal(t, model.StyleNormalText, p.Style.Named)
	assert.Equal(t, "First paragraph.", p.Text())
}

func TestOpenReaderTitle(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(
		`<html><head><title> My  Page </title></head><body><p>x</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "My Page", doc.Title)
}

func TestOpenReaderEmpty(t *testing.T) {
	content := parseBody(t, "")
	require.Len(t, content, 1)
	assert.Empty(t, mustParagraph(t, content[0]).Runs)
}

func TestOpenReaderInlineStyles(t *testing.T) {
	content := parseBody(t, `<p>Some <b>bold</b> and <em>italic</em> and <code>mono</code> text</p>`)
	require.Len(t, content, 1)
	p := mustParagraph(t, content[0])
	require.Len(t, p.Runs, 7)

	assert.Equal(t, "Some ", p.Runs[0].Text)
	assert.Equal(t, "bold", p.Runs[1].Text)
	require.NotNil(t, p.Runs[1].Style.Bold)
	assert.Equal(t, "italic", p.Runs[3].Text)
	require.NotNil(t, p.Runs[3].Style.Italic)
	assert.Equal(t, "mono", p.Runs[5].Text)
	require.NotNil(t, p.Runs[5].Style.FontFamily)
	assert.Equal(t, codeFontFamily, *p.Runs[5].Style.FontFamily)
	assert.Equal(t, " text", p.Runs[6].Text)
}

func TestOpenReaderNestedStyles(t *testing.T) {
	content := parseBody(t, `<p><b><i>both</i></b></p>`)
	p := mustParagraph(t, content[0])
	require.Len(t, p.Runs, 1)
	require.NotNil(t, p.Runs[0].Style.Bold)
	require.NotNil(t, p.Runs[0].Style.Italic)
}

func TestOpenReaderUnderlineStrike(t *testing.T) {
	content := parseBody(t, `<p><u>under</u><s>gone</s></p>`)
	p := mustParagraph(t, content[0])
	require.Len(t, p.Runs, 2)
	require.NotNil(t, p.Runs[0].Style.Underline)
	require.NotNil(t, p.Runs[1].Style.Strikethrough)
}

func TestOpenReaderLink(t *testing.T) {
	content := parseBody(t, `<p><a href="https://example.com">site</a></p>`)
	p := mustParagraph(t, content[0])
	require.Len(t, p.Runs, 1)
	assert.Equal(t, "site", p.Runs[0].Text)
	require.NotNil(t, p.Runs[0].Style.LinkURL)
	assert.Equal(t, "https://example.com", *p.Runs[0].Style.LinkURL)
}

func TestOpenReaderImage(t *testing.T) {
	content := parseBody(t, `<p><img src="logo.png" alt="logo"></p>`)
	p := mustParagraph(t, content[0])
	require.Len(t, p.Runs, 1)
	m := p.Runs[0].Marker
	require.NotNil(t, m)
	assert.Equal(t, model.MarkerImage, m.Kind)
	assert.Equal(t, "logo.png", m.Attrs["src"])
	assert.Equal(t, "logo", m.Attrs["alt"])
}

func TestOpenReaderLineBreak(t *testing.T) {
	content := parseBody(t, `<p>first<br>second</p>`)
	p := mustParagraph(t, content[0])
	assert.Equal(t, "first\vsecond", p.Text())
}

func TestOpenReaderWhitespaceCollapse(t *testing.T) {
	content := parseBody(t, "<p>Some\n\t  spaced   out\ntext</p>")
	p := mustParagraph(t, content[0])
	assert.Equal(t, "Some spaced out text", p.Text())
}

func TestOpenReaderList(t *testing.T) {
	content := parseBody(t, `<ul><li>one</li><li>two<ul><li>nested</li></ul></li></ul>`)
	require.Len(t, content, 3)

	first := mustParagraph(t, content[0])
	second := mustParagraph(t, content[1])
	nested := mustParagraph(t, content[2])

	require.NotNil(t, first.Bullet)
	require.NotNil(t, nested.Bullet)
	assert.False(t, first.Bullet.Ordered)
	assert.Equal(t, 0, first.Bullet.Nesting)
	assert.Equal(t, first.Bullet.ListID, second.Bullet.ListID)
	assert.Equal(t, 1, nested.Bullet.Nesting)
	assert.NotEqual(t, first.Bullet.ListID, nested.Bullet.ListID)
	assert.Equal(t, "nested", nested.Text())
}

func TestOpenReaderOrderedList(t *testing.T) {
	content := parseBody(t, `<ol><li>a</li><li>b</li></ol>`)
	require.Len(t, content, 2)
	p := mustParagraph(t, content[0])
	require.NotNil(t, p.Bullet)
	assert.True(t, p.Bullet.Ordered)
}

func TestOpenReaderTable(t *testing.T) {
	content := parseBody(t, `<table>
<thead><tr><th>A</th><th>B</th></tr></thead>
<tbody><tr><td>1</td><td>2</td></tr></tbody>
</table>`)
	require.Len(t, content, 1)
	table, ok := content[0].(*model.Table)
	require.True(t, ok)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 2, table.ColCount())

	header := table.GetCell(0, 0)
	require.NotNil(t, header)
	hp := mustParagraph(t, header.Content[0])
	assert.Equal(t, "A", hp.Text())
	require.NotNil(t, hp.Runs[0].Style.Bold)

	cell := table.GetCell(1, 1)
	require.NotNil(t, cell)
	assert.Equal(t, "2", mustParagraph(t, cell.Content[0]).Text())
}

func TestOpenReaderTableSpans(t *testing.T) {
	content := parseBody(t, `<table>
<tr><td colspan="2">wide</td><td>x</td></tr>
<tr><td rowspan="2">tall</td><td>y</td><td>z</td></tr>
</table>`)
	table, ok := content[0].(*model.Table)
	require.True(t, ok)
	assert.Equal(t, 2, table.GetCell(0, 0).ColSpan)
	assert.Equal(t, 2, table.GetCell(1, 0).RowSpan)
	assert.Equal(t, 1, table.GetCell(1, 1).RowSpan)
}

func TestOpenReaderPre(t *testing.T) {
	content := parseBody(t, "<pre>line1\nline2</pre>")
	require.Len(t, content, 1)
	p := mustParagraph(t, content[0])
	require.Len(t, p.Runs, 1)
	assert.Equal(t, "line1\vline2", p.Runs[0].Text)
	require.NotNil(t, p.Runs[0].Style.FontFamily)
}

func TestOpenReaderBlockquote(t *testing.T) {
	content := parseBody(t, `<blockquote><p>quoted words</p></blockquote>`)
	require.Len(t, content, 1)
	p := mustParagraph(t, content[0])
	require.NotNil(t, p.Style.IndentStartPt)
	assert.Equal(t, float64(36), *p.Style.IndentStartPt)
}

func TestOpenReaderHorizontalRule(t *testing.T) {
	content := parseBody(t, `<p>above</p><hr><p>below</p>`)
	require.Len(t, content, 3)
	p := mustParagraph(t, content[1])
	require.Len(t, p.Runs, 1)
	require.NotNil(t, p.Runs[0].Marker)
	assert.Equal(t, model.MarkerHorizontalRule, p.Runs[0].Marker.Kind)
}

func TestOpenReaderSkipsScriptAndStyle(t *testing.T) {
	content := parseBody(t, `<body><script>alert(1)</script><style>p{}</style><p>kept</p></body>`)
	require.Len(t, content, 1)
	assert.Equal(t, "kept", mustParagraph(t, content[0]).Text())
}

func TestOpenReaderLooseInlineContent(t *testing.T) {
	content := parseBody(t, `<body>loose <b>text</b><p>block</p></body>`)
	require.Len(t, content, 2)
	assert.Equal(t, "loose text", mustParagraph(t, content[0]).Text())
	assert.Equal(t, "block", mustParagraph(t, content[1]).Text())
}

func TestOpenReaderDivContainer(t *testing.T) {
	content := parseBody(t, `<div><p>one</p><div>two</div></div>`)
	require.Len(t, content, 2)
	assert.Equal(t, "one", mustParagraph(t, content[0]).Text())
	assert.Equal(t, "two", mustParagraph(t, content[1]).Text())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("no-such-file.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file")
}

func TestOpenReaderEndIndexMatchesComputedLength(t *testing.T) {
	doc, err := OpenReader(strings.NewReader(
		`<h1>Title</h1><p>para</p><table><tr><td>a</td></tr></table>`))
	require.NoError(t, err)
	body := doc.Sections[0]
	assert.Equal(t, body.End(), body.EndIndex)
}
