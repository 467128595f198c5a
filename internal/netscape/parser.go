package netscape

import (
	"io"
	"mime"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// EventKind discriminates the events a Parser produces.
type EventKind int

const (
	StartTag EventKind = iota
	Text
	EndTag
)

// Event is one tag-stream event. Attribute values and text are kept as raw
// bytes: the charset they should be decoded with may not be known until a
// later meta tag has been seen, so decoding has to happen at the moment the
// event is consumed, via Parser.Decode.
type Event struct {
	Kind  EventKind
	Name  string            // lowercase tag name; empty for text events
	Attrs map[string][]byte // start tags only; keys are lowercase
	Raw   []byte            // text events only
}

// Parser turns a bookmark-export byte stream into tag events while tracking
// the charset the document declares for itself. Browser exports routinely
// declare their charset in a meta tag partway through the file, so the active
// charset is mutable state: it starts at windows-1252 (what legacy exports
// actually are when they say nothing) and switches, non-retroactively,
// whenever a meta tag says otherwise.
type Parser struct {
	z   *html.Tokenizer
	enc encoding.Encoding
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		z:   html.NewTokenizer(r),
		enc: charmap.Windows1252,
	}
}

// Next returns the next tag event. io.EOF signals the end of the stream.
// Comments, doctypes and markup the tokenizer cannot make sense of are
// skipped; they never fail the parse.
func (p *Parser) Next() (Event, error) {
	for {
		switch p.z.Next() {
		case html.ErrorToken:
			return Event{}, p.z.Err()

		case html.TextToken:
			// The tokenizer reuses its buffers between tokens.
			raw := append([]byte(nil), p.z.Text()...)
			return Event{Kind: Text, Raw: raw}, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := p.z.TagName()
			attrs := make(map[string][]byte)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = p.z.TagAttr()
				attrs[string(key)] = append([]byte(nil), val...)
			}
			ev := Event{Kind: StartTag, Name: string(name), Attrs: attrs}
			if ev.Name == "meta" {
				p.handleMeta(attrs)
			}
			return ev, nil

		case html.EndTagToken:
			name, _ := p.z.TagName()
			return Event{Kind: EndTag, Name: string(name)}, nil

		default:
			// comments and doctypes are inert
		}
	}
}

// Decode converts raw bytes using the charset active at this point in the
// stream. Bytes that are invalid under that charset come back as U+FFFD;
// decoding is never a reason to abort an import.
func (p *Parser) Decode(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	out, err := p.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// handleMeta implements the charset declaration rules: an http-equiv
// Content-Type header carrying a charset parameter, or a bare charset
// attribute. The http-equiv value match is deliberately case-sensitive,
// matching what the files this parser targets actually contain.
func (p *Parser) handleMeta(attrs map[string][]byte) {
	httpEquiv, hasEquiv := attrs["http-equiv"]
	content, hasContent := attrs["content"]

	if hasEquiv && string(httpEquiv) == "Content-Type" && hasContent {
		_, params, err := mime.ParseMediaType(string(content))
		if err != nil {
			return // unparseable header leaves the charset unchanged
		}
		if cs, ok := params["charset"]; ok {
			p.setCharset(cs)
		}
	} else if cs, ok := attrs["charset"]; ok {
		p.setCharset(string(cs))
	}
}

func (p *Parser) setCharset(name string) {
	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		return // unknown names keep the previous charset
	}
	p.enc = enc
}
