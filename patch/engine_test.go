package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ops"
)

func para(text string) *model.Paragraph {
	if text == "" {
		return &model.Paragraph{}
	}
	return &model.Paragraph{Runs: []model.TextRun{{Text: text}}}
}

func heading(level int, text string) *model.Paragraph {
	p := para(text)
	p.Style.Named = model.HeadingStyle(level)
	return p
}

func tableOf(cells [][]string) *model.Table {
	t := model.NewTable(len(cells), len(cells[0]))
	for r, row := range cells {
		for c, text := range row {
			_ = t.SetCell(r, c, model.TableCell{Content: []model.Element{para(text)}})
		}
	}
	return t
}

func pageBreak() *model.SpecialElement {
	return &model.SpecialElement{Kind: model.SpecialPageBreak}
}

func bodyDoc(els ...model.Element) *model.Document {
	return &model.Document{
		Sections: []*model.Section{
			{Kind: model.SectionBody, Content: els},
		},
	}
}

// ============================================================================
// Input validation
// ============================================================================

func TestDiffNilDocument(t *testing.T) {
	_, err := Diff(nil, bodyDoc(para("x")))
	require.ErrorIs(t, err, ErrMalformedInput)

	_, err = Diff(bodyDoc(para("x")), nil)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestDiffMissingBody(t *testing.T) {
	noBody := &model.Document{Sections: []*model.Section{
		{Kind: model.SectionHeader, ID: "h", Content: []model.Element{para("x")}},
	}}
	_, err := Diff(bodyDoc(para("x")), noBody)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestDiffEmptySegment(t *testing.T) {
	_, err := Diff(bodyDoc(para("x")), bodyDoc())
	require.ErrorIs(t, err, ErrStructuralViolation)
}

func TestDiffIndexFidelity(t *testing.T) {
	bad := bodyDoc(para("Hello"))
	bad.Sections[0].EndIndex = 99
	_, err := Diff(bad, bodyDoc(para("Hello")))
	require.ErrorIs(t, err, model.ErrIndexFidelity)
}

// ============================================================================
// Idempotence
// ============================================================================

func TestDiffIdentical(t *testing.T) {
	docs := []*model.Document{
		bodyDoc(para("")),
		bodyDoc(para("Hello"), para("World")),
		bodyDoc(heading(1, "Title"), tableOf([][]string{{"a", "b"}, {"c", "d"}}), para("tail")),
	}
	for _, d := range docs {
		list, err := Diff(d, d)
		require.NoError(t, err)
		assert.Empty(t, list)
	}
}

func TestDiffIdenticalNestedSegments(t *testing.T) {
	d := bodyDoc(para("body text"))
	d.Sections = append(d.Sections,
		&model.Section{Kind: model.SectionHeader, ID: "h.1", Content: []model.Element{para("header")}},
		&model.Section{Kind: model.SectionFootnote, ID: "fn.1", Content: []model.Element{para("note")}},
	)
	list, err := Diff(d, d)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ============================================================================
// Appends
// ============================================================================

func TestAppendParagraph(t *testing.T) {
	list, err := Diff(bodyDoc(para("Hello")), bodyDoc(para("Hello"), para("World")))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ops.KindInsertText, list[0].Kind)
	assert.Equal(t, 6, list[0].Index)
	assert.Equal(t, "\nWorld", list[0].Text)
}

func TestAppendAfterHeadingResetsTrailingStyle(t *testing.T) {
	list, err := Diff(
		bodyDoc(heading(1, "Title")),
		bodyDoc(heading(1, "Title"), para("Body")))
	require.NoError(t, err)
	require.Len(t, list, 2)

	reset := list[0]
	assert.Equal(t, ops.KindUpdateParagraphStyle, reset.Kind)
	assert.Equal(t, []string{"namedStyleType"}, reset.Fields)
	assert.Equal(t, 1, reset.StartIndex)
	assert.Equal(t, 7, reset.EndIndex)
	require.NotNil(t, reset.ParagraphStyle)
	assert.Equal(t, model.StyleNormalText, reset.ParagraphStyle.Named)
	assert.Less(t, reset.ChangeGroup, list[1].ChangeGroup)

	assert.Equal(t, ops.KindInsertText, list[1].Kind)
	assert.Equal(t, "\nBody", list[1].Text)
}

func TestTailReplaceAfterHeadingResetsTrailingStyle(t *testing.T) {
	list, err := Diff(
		bodyDoc(para("a"), heading(1, "Title")),
		bodyDoc(para("a"), para("x"), para("y")))
	require.NoError(t, err)
	require.Len(t, list, 4)

	reset := list[0]
	assert.Equal(t, ops.KindUpdateParagraphStyle, reset.Kind)
	assert.Equal(t, []string{"namedStyleType"}, reset.Fields)
	assert.Equal(t, 3, reset.StartIndex)
	assert.Equal(t, 9, reset.EndIndex)
	require.NotNil(t, reset.ParagraphStyle)
	assert.Equal(t, model.StyleNormalText, reset.ParagraphStyle.Named)
	for _, op := range list[1:] {
		assert.Less(t, reset.ChangeGroup, op.ChangeGroup)
	}

	assert.Equal(t, ops.KindDeleteContentRange, list[1].Kind)
	assert.Equal(t, 2, list[1].StartIndex)
	assert.Equal(t, 8, list[1].EndIndex)
	assert.Equal(t, "\ny", list[2].Text)
	assert.Equal(t, "\nx", list[3].Text)
}

func TestWholeSegmentReplaceAfterHeadingResetsTrailingStyle(t *testing.T) {
	list, err := Diff(
		bodyDoc(heading(1, "Title")),
		bodyDoc(para("x"), para("y")))
	require.NoError(t, err)
	require.Len(t, list, 4)

	reset := list[0]
	assert.Equal(t, ops.KindUpdateParagraphStyle, reset.Kind)
	assert.Equal(t, []string{"namedStyleType"}, reset.Fields)
	assert.Equal(t, 1, reset.StartIndex)
	assert.Equal(t, 7, reset.EndIndex)
	require.NotNil(t, reset.ParagraphStyle)
	assert.Equal(t, model.StyleNormalText, reset.ParagraphStyle.Named)

	assert.Equal(t, ops.KindDeleteContentRange, list[1].Kind)
	assert.Equal(t, 1, list[1].StartIndex)
	assert.Equal(t, 6, list[1].EndIndex)
	assert.Equal(t, "y", list[2].Text)
	assert.Equal(t, "x\n", list[3].Text)
}

// ============================================================================
// Style-only changes
// ============================================================================

func TestStyleOnlyRunPatch(t *testing.T) {
	pristine := bodyDoc(&model.Paragraph{Runs: []model.TextRun{
		{Text: "Hello "}, {Text: "World"},
	}})
	current := bodyDoc(&model.Paragraph{Runs: []model.TextRun{
		{Text: "Hello "}, {Text: "World", Style: model.TextStyle{Bold: model.Bool(true)}},
	}})

	list, err := Diff(pristine, current)
	require.NoError(t, err)
	require.Len(t, list, 1)
	op := list[0]
	assert.Equal(t, ops.KindUpdateTextStyle, op.Kind)
	assert.Equal(t, 7, op.StartIndex)
	assert.Equal(t, 12, op.EndIndex)
	assert.Equal(t, []string{"bold"}, op.Fields)
}

func TestRunShapeChangeRewritesParagraph(t *testing.T) {
	pristine := bodyDoc(para("Hello World"))
	current := bodyDoc(&model.Paragraph{Runs: []model.TextRun{
		{Text: "Hello", Style: model.TextStyle{Bold: model.Bool(true)}},
		{Text: " World"},
	}})

	list, err := Diff(pristine, current)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, ops.KindDeleteContentRange, list[0].Kind)
	assert.Equal(t, 1, list[0].StartIndex)
	assert.Equal(t, 12, list[0].EndIndex)

	assert.Equal(t, ops.KindInsertText, list[1].Kind)
	assert.Equal(t, "Hello World", list[1].Text)
	assert.Equal(t, 1, list[1].Index)

	assert.Equal(t, ops.KindUpdateTextStyle, list[2].Kind)
	assert.Equal(t, 1, list[2].StartIndex)
	assert.Equal(t, 6, list[2].EndIndex)
	assert.Equal(t, []string{"bold"}, list[2].Fields)
}

func TestParagraphStyleChange(t *testing.T) {
	list, err := Diff(bodyDoc(para("Title")), bodyDoc(heading(2, "Title")))
	require.NoError(t, err)
	require.Len(t, list, 1)
	op := list[0]
	assert.Equal(t, ops.KindUpdateParagraphStyle, op.Kind)
	assert.Equal(t, []string{"namedStyleType"}, op.Fields)
	require.NotNil(t, op.ParagraphStyle)
	assert.Equal(t, model.StyleHeading2, op.ParagraphStyle.Named)
}

func TestBulletAdded(t *testing.T) {
	current := bodyDoc(&model.Paragraph{
		Runs:   []model.TextRun{{Text: "item"}},
		Bullet: &model.Bullet{Ordered: false},
	})
	list, err := Diff(bodyDoc(para("item")), current)
	require.NoError(t, err)
	require.Len(t, list, 1)
	op := list[0]
	assert.Equal(t, ops.KindCreateParagraphBullets, op.Kind)
	require.NotNil(t, op.Bullet)
	assert.False(t, op.Bullet.Ordered)
}

func TestBulletRemoved(t *testing.T) {
	pristine := bodyDoc(&model.Paragraph{
		Runs:   []model.TextRun{{Text: "item"}},
		Bullet: &model.Bullet{Ordered: true},
	})
	list, err := Diff(pristine, bodyDoc(para("item")))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ops.KindDeleteParagraphBullets, list[0].Kind)
}

func TestBulletListIDIsVolatile(t *testing.T) {
	pristine := bodyDoc(&model.Paragraph{
		Runs:   []model.TextRun{{Text: "item"}},
		Bullet: &model.Bullet{ListID: "kix.abc", Ordered: true},
	})
	current := bodyDoc(&model.Paragraph{
		Runs:   []model.TextRun{{Text: "item"}},
		Bullet: &model.Bullet{ListID: "list-1", Ordered: true},
	})
	list, err := Diff(pristine, current)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ============================================================================
// Tables
// ============================================================================

func TestCellEditScopedToCell(t *testing.T) {
	list, err := Diff(
		bodyDoc(tableOf([][]string{{"Old"}}), para("")),
		bodyDoc(tableOf([][]string{{"New"}}), para("")))
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Table at 1, cell content at 4.
	assert.Equal(t, ops.KindDeleteContentRange, list[0].Kind)
	assert.Equal(t, 4, list[0].StartIndex)
	assert.Equal(t, 7, list[0].EndIndex)
	assert.Equal(t, ops.KindInsertText, list[1].Kind)
	assert.Equal(t, 4, list[1].Index)
	assert.Equal(t, "New", list[1].Text)
}

func TestTableDimensionChangeReplacesTable(t *testing.T) {
	list, err := Diff(
		bodyDoc(tableOf([][]string{{"a", "b"}, {"c", "d"}}), para("")),
		bodyDoc(tableOf([][]string{{"a", "b", "x"}, {"c", "d", "y"}}), para("")))
	require.NoError(t, err)
	require.NotEmpty(t, list)

	assert.Equal(t, ops.KindDeleteContentRange, list[0].Kind)
	assert.Equal(t, ops.KindInsertTable, list[1].Kind)
	assert.Equal(t, 2, list[1].Rows)
	assert.Equal(t, 3, list[1].Cols)
	for _, op := range list[2:] {
		assert.Equal(t, ops.KindInsertText, op.Kind)
		assert.True(t, op.PostInsert)
	}
}

// ============================================================================
// Segments
// ============================================================================

func TestHeaderRemoved(t *testing.T) {
	pristine := bodyDoc(para("body"))
	pristine.Sections = append(pristine.Sections, &model.Section{
		Kind: model.SectionHeader, ID: "h.1", Content: []model.Element{para("x")},
	})
	list, err := Diff(pristine, bodyDoc(para("body")))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ops.KindDeleteHeader, list[0].Kind)
	assert.Equal(t, "h.1", list[0].SegmentID)
}

func TestFootnoteRemovedEmitsNothing(t *testing.T) {
	pristine := bodyDoc(para("body"))
	pristine.Sections = append(pristine.Sections, &model.Section{
		Kind: model.SectionFootnote, ID: "fn.1", Content: []model.Element{para("x")},
	})
	list, err := Diff(pristine, bodyDoc(para("body")))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHeaderCreatedIsForwardReferenced(t *testing.T) {
	current := bodyDoc(para("body"))
	current.Sections = append(current.Sections, &model.Section{
		Kind: model.SectionHeader, ID: "h.new", Content: []model.Element{para("Hi")},
	})
	list, err := Diff(bodyDoc(para("body")), current)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	assert.Equal(t, ops.KindCreateHeader, list[0].Kind)
	for _, op := range list {
		assert.Equal(t, "h.new", op.SegmentID)
		assert.True(t, op.ForwardSegment)
	}
}

func TestSkipOptions(t *testing.T) {
	withExtras := func() *model.Document {
		d := bodyDoc(para("body"))
		d.Sections = append(d.Sections,
			&model.Section{Kind: model.SectionHeader, ID: "h", Content: []model.Element{para("H")}},
			&model.Section{Kind: model.SectionFooter, ID: "f", Content: []model.Element{para("F")}},
			&model.Section{Kind: model.SectionFootnote, ID: "fn", Content: []model.Element{para("N")}},
		)
		return d
	}
	pristine := bodyDoc(para("body"))

	list, err := DiffOptions(pristine, withExtras(), Options{
		SkipHeaders: true, SkipFooters: true, SkipFootnotes: true,
	})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTabIDStampedOnEveryOp(t *testing.T) {
	list, err := DiffOptions(
		bodyDoc(para("a")),
		bodyDoc(para("a"), para("b")),
		Options{TabID: "t.0"})
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for _, op := range list {
		assert.Equal(t, "t.0", op.TabID)
	}
}

// ============================================================================
// Ordering and determinism
// ============================================================================

func TestOperationsOrderedBottomUp(t *testing.T) {
	list, err := Diff(
		bodyDoc(para("aaa"), para("bbb"), para("ccc")),
		bodyDoc(para("AAA"), para("bbb"), para("CCC")))
	require.NoError(t, err)
	require.Len(t, list, 4)

	// The paragraph nearer the end is edited first.
	assert.Equal(t, ops.KindDeleteContentRange, list[0].Kind)
	assert.Equal(t, 9, list[0].StartIndex)
	assert.Equal(t, "CCC", list[1].Text)
	assert.Equal(t, ops.KindDeleteContentRange, list[2].Kind)
	assert.Equal(t, 1, list[2].StartIndex)
	assert.Equal(t, "AAA", list[3].Text)
}

func TestDeleteRunIsReverseOrdered(t *testing.T) {
	list, err := Diff(
		bodyDoc(para("a"), para("b"), para("c"), para("d")),
		bodyDoc(para("a"), para("d")))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 5, list[0].StartIndex)
	assert.Equal(t, 7, list[0].EndIndex)
	assert.Equal(t, 3, list[1].StartIndex)
	assert.Equal(t, 5, list[1].EndIndex)
	assert.NotEqual(t, list[0].ChangeGroup, list[1].ChangeGroup)
}

func TestDiffDeterministic(t *testing.T) {
	pristine := bodyDoc(
		heading(1, "Title"),
		para("intro"),
		tableOf([][]string{{"k", "v"}}),
		para("tail"),
	)
	current := bodyDoc(
		heading(1, "Title!"),
		tableOf([][]string{{"k", "edited"}}),
		para("tail"),
		para("appended"),
	)

	first, err := Diff(pristine, current)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Diff(pristine, current)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestEmojiLengthsInRanges(t *testing.T) {
	// "🎉x" is three code units; the delete must cover all of them.
	list, err := Diff(bodyDoc(para("🎉x")), bodyDoc(para("y")))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].StartIndex)
	assert.Equal(t, 4, list[0].EndIndex)
	assert.Equal(t, "y", list[1].Text)
}
