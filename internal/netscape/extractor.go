package netscape

import (
	"errors"
	"io"
)

// Record is one bookmark extracted from an export file. AddDate is kept as
// the raw attribute string; deciding what a malformed timestamp means is the
// importer's job, not the parser's.
type Record struct {
	Href    string
	AddDate string
	Title   string
}

// Extractor recognizes the one shape bookmark exports actually use: the
// visible link text as the sole text node between <a href=... add_date=...>
// and </a>. It is a two-state machine over the parser's event stream; tags
// other than the anchor boundaries are ignored, so stray markup inside or
// around an anchor does not interrupt capture.
type Extractor struct {
	p *Parser
}

func NewExtractor(r io.Reader) *Extractor {
	return &Extractor{p: NewParser(r)}
}

// Next returns the next complete bookmark record, or io.EOF when the stream
// is exhausted. Anchor candidates with zero or more than one text segment are
// discarded, as are anchors still open at end of input.
func (e *Extractor) Next() (*Record, error) {
	var (
		capturing bool
		rec       Record
		segments  int
	)

	for {
		ev, err := e.p.Next()
		if err != nil {
			return nil, err
		}

		switch {
		case ev.Kind == StartTag && ev.Name == "a":
			// A nested anchor start restarts the candidate.
			capturing = true
			segments = 0
			// href and add_date are decoded under the charset active right
			// now; a charset declared later in the file does not apply to
			// them retroactively.
			rec = Record{
				Href:    e.p.Decode(ev.Attrs["href"]),
				AddDate: e.p.Decode(ev.Attrs["add_date"]),
			}

		case ev.Kind == Text && capturing:
			rec.Title = e.p.Decode(ev.Raw)
			segments++

		case ev.Kind == EndTag && ev.Name == "a" && capturing:
			capturing = false
			if segments == 1 {
				out := rec
				return &out, nil
			}
		}
	}
}

// Parse reads a whole bookmark file and returns every well-formed record.
func Parse(r io.Reader) ([]Record, error) {
	e := NewExtractor(r)
	var records []Record
	for {
		rec, err := e.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, *rec)
	}
}
