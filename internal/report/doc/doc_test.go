package doc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/report/doc"
)

// fixedMeasurer sizes every rune identically, so wrap points are exact
// and independent of any font file.
type fixedMeasurer struct {
	runeWidth float64
}

func (m fixedMeasurer) TextWidth(text string, _ doc.Font) float64 {
	return float64(len([]rune(text))) * m.runeWidth
}

func (m fixedMeasurer) LineHeight(f doc.Font) float64 {
	return f.Size
}

func TestWrap(t *testing.T) {
	m := fixedMeasurer{runeWidth: 1}
	f := doc.Font{Size: 10}

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{name: "Empty", text: "", width: 10, want: []string{""}},
		{name: "Fits", text: "abc def", width: 10, want: []string{"abc def"}},
		{name: "BreaksAtWord", text: "abc def ghi", width: 7, want: []string{"abc def", "ghi"}},
		{name: "LongWordSplitByRune", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{
			name:  "AccentedRunesCountOnce",
			text:  strings.Repeat("ç", 6),
			width: 3,
			want:  []string{"ççç", "ççç"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.Wrap(m, tt.text, f, tt.width))
		})
	}
}

func TestDocument_InsertPage(t *testing.T) {
	d := doc.NewA4(doc.Margins{Top: 20, Bottom: 20, Left: 18, Right: 18})

	first := d.AddPage()
	second := d.AddPage()
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)

	d.Pages[0].Add(doc.Text{Content: "a"})
	d.Pages[1].Add(doc.Text{Content: "b"})

	inserted := d.InsertPage(1)
	require.Equal(t, 3, d.PageCount())

	assert.Same(t, inserted, d.Pages[1])
	assert.Empty(t, d.Pages[1].Ops)

	// Neighbours shift without losing content.
	assert.Equal(t, doc.Text{Content: "a"}, d.Pages[0].Ops[0])
	assert.Equal(t, doc.Text{Content: "b"}, d.Pages[2].Ops[0])
}

func TestDocument_MarkSectionFirstWins(t *testing.T) {
	d := doc.NewA4(doc.Margins{})

	d.MarkSection(doc.SectionSummary, 3)
	d.MarkSection(doc.SectionSummary, 7)

	assert.Equal(t, 3, d.SectionPages[doc.SectionSummary])
}

func TestSection_Numbered(t *testing.T) {
	assert.False(t, doc.SectionCover.Numbered())
	assert.False(t, doc.SectionChildren.Numbered())
	assert.False(t, doc.SectionLegal.Numbered())

	assert.True(t, doc.SectionSummary.Numbered())
	assert.True(t, doc.SectionReferences.Numbered())
}

func TestOrderCoversAllSections(t *testing.T) {
	seen := make(map[doc.Section]bool)
	for _, s := range doc.Order {
		assert.False(t, seen[s], "duplicate section %s", s)
		seen[s] = true
		assert.NotEmpty(t, s.Title())
	}

	assert.Len(t, seen, 10)
}
