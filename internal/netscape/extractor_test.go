package netscape

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com/" ADD_DATE="1700000000">Example</A>
    <DT><A HREF="https://go.dev/" ADD_DATE="1700000100">The Go Programming Language</A>
</DL><p>
`

func TestExtractor_Next(t *testing.T) {
	e := NewExtractor(strings.NewReader(sampleExport))

	rec, err := e.Next()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", rec.Href)
	assert.Equal(t, "1700000000", rec.AddDate)
	assert.Equal(t, "Example", rec.Title)

	rec, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev/", rec.Href)
	assert.Equal(t, "The Go Programming Language", rec.Title)

	_, err = e.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestExtractor_MissingAddDate(t *testing.T) {
	e := NewExtractor(strings.NewReader(`<A HREF="https://example.com/">Example</A>`))

	rec, err := e.Next()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", rec.Href)
	assert.Equal(t, "", rec.AddDate)
}

func TestExtractor_SkipsAnchorsWithMarkupInside(t *testing.T) {
	// Extra tags inside the anchor split the title into multiple text
	// segments; those anchors are not well-formed bookmark records.
	input := `<A HREF="https://a.test/">before<b>bold</b>after</A>` +
		`<A HREF="https://b.test/" ADD_DATE="1">Clean</A>`

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://b.test/", records[0].Href)
}

func TestExtractor_SkipsEmptyAnchors(t *testing.T) {
	records, err := Parse(strings.NewReader(`<A HREF="https://a.test/"></A>`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractor_NestedAnchorRestartsCandidate(t *testing.T) {
	input := `<A HREF="https://outer.test/"><A HREF="https://inner.test/" ADD_DATE="2">Inner</A>`

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://inner.test/", records[0].Href)
	assert.Equal(t, "Inner", records[0].Title)
}

func TestExtractor_UnclosedAnchorAtEOF(t *testing.T) {
	records, err := Parse(strings.NewReader(`<A HREF="https://a.test/">dangling`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractor_LegacyCharsetTitles(t *testing.T) {
	// No charset declaration: titles decode as windows-1252.
	records, err := Parse(strings.NewReader("<A HREF=\"https://a.test/\">It\x92s here</A>"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "It’s here", records[0].Title)
}

func TestParse_EmptyInput(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
