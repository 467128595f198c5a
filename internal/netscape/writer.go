package netscape

import (
	"fmt"
	"html"
	"io"
)

// Mark is one bookmark to serialize.
type Mark struct {
	Title   string
	Href    string
	PubDate int64 // unix seconds
}

// Write serializes bookmarks into the same dialect the parser reads, so an
// exported file can be imported back. Output is always UTF-8 with an explicit
// charset declaration up front.
func Write(w io.Writer, marks []Mark) error {
	_, err := fmt.Fprint(w, `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`)
	if err != nil {
		return err
	}

	for _, m := range marks {
		_, err = fmt.Fprintf(w, "    <DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			html.EscapeString(m.Href), m.PubDate, html.EscapeString(m.Title))
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprint(w, "</DL><p>\n")
	return err
}
