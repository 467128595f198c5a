package netscape

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Contains(t, out, `charset=UTF-8`)
	assert.Contains(t, out, "</DL><p>")
}

func TestWrite_EscapesMarkup(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Mark{
		{Title: `Tags <b> & "quotes"`, Href: "https://example.com/?a=1&b=2", PubDate: 1700000000},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "Tags <b>")
	assert.Contains(t, out, "&amp;b=2")
}

func TestWrite_RoundTripsThroughParse(t *testing.T) {
	marks := []Mark{
		{Title: "Example", Href: "https://example.com/", PubDate: 1700000000},
		{Title: "Café & more", Href: "https://café.test/", PubDate: 1700000100},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, marks))

	records, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, records, len(marks))

	for i, m := range marks {
		assert.Equal(t, m.Title, records[i].Title)
		assert.Equal(t, m.Href, records[i].Href)
	}
}
