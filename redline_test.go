package redline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ops"
)

func doc(els ...model.Element) *model.Document {
	return &model.Document{
		Sections: []*model.Section{
			{Kind: model.SectionBody, Content: els},
		},
	}
}

func p(text string) *model.Paragraph {
	if text == "" {
		return &model.Paragraph{}
	}
	return &model.Paragraph{Runs: []model.TextRun{{Text: text}}}
}

func TestCompareOperations(t *testing.T) {
	list, err := Compare(doc(p("Hello")), doc(p("Hello"), p("World"))).Operations()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ops.KindInsertText, list[0].Kind)
	assert.Equal(t, "\nWorld", list[0].Text)
}

func TestCompareIdentical(t *testing.T) {
	d := doc(p("same"))
	list, err := Compare(d, d).Operations()
	require.NoError(t, err)
	assert.Empty(t, list)

	changed, err := Compare(d, d).Changed()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCompareChanged(t *testing.T) {
	changed, err := Compare(doc(p("a")), doc(p("b"))).Changed()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestCompareRequests(t *testing.T) {
	reqs, err := Compare(doc(p("Hello")), doc(p("Hello"), p("World"))).Requests()
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].InsertText)
	assert.Equal(t, "\nWorld", reqs[0].InsertText.Text)
}

func TestCompareTabID(t *testing.T) {
	list, err := Compare(doc(p("a")), doc(p("a"), p("b"))).TabID("t.9").Operations()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for _, op := range list {
		assert.Equal(t, "t.9", op.TabID)
	}
}

func TestCompareExcludeSegments(t *testing.T) {
	current := doc(p("body"))
	current.Sections = append(current.Sections, &model.Section{
		Kind: model.SectionHeader, ID: "h", Content: []model.Element{p("new header")},
	})
	list, err := Compare(doc(p("body")), current).ExcludeHeaders().Operations()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestChainingDoesNotMutate(t *testing.T) {
	base := Compare(doc(p("a")), doc(p("a"), p("b")))
	withTab := base.TabID("t.1")

	list, err := base.Operations()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Empty(t, list[0].TabID)

	list, err = withTab.Operations()
	require.NoError(t, err)
	assert.Equal(t, "t.1", list[0].TabID)
}

func TestComparePreview(t *testing.T) {
	report := Compare(doc(p("keep"), p("old")), doc(p("keep"), p("new"))).Preview()
	assert.True(t, strings.Contains(report, "old"))
	assert.True(t, strings.Contains(report, "new"))
}

func TestCompareError(t *testing.T) {
	_, err := Compare(nil, doc(p("x"))).Operations()
	require.Error(t, err)
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Must(Compare(nil, doc(p("x"))).Operations())
}
