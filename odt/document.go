package odt

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

// nsOffice is the ODF office namespace.
const nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"

// contentXML is the decoded content.xml part.
type contentXML struct {
	AutoStyles *autoStylesXML
	Elements   []bodyElement // top-level body blocks in document order
}

// bodyElement is one top-level body block. Exactly one field is set.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// paragraphXML is a <text:p> or <text:h>. Its mixed content is flattened
// into spans in document order.
type paragraphXML struct {
	StyleName    string
	Heading      bool
	OutlineLevel int
	Spans        []spanXML
	List         *listInfo // non-nil for paragraphs of a numbered list item
}

// spanXML is a stretch of paragraph text under one character style.
type spanXML struct {
	StyleName string // empty for text outside any text:span
	Text      string
}

// listInfo records the list a paragraph belongs to.
type listInfo struct {
	StyleName string
	Level     int // 0-based nesting depth
}

// decodeContent reads the automatic styles and the text body of
// content.xml in a single streaming pass.
func decodeContent(data []byte) (*contentXML, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	content := &contentXML{}
	var sawBody bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Space != nsOffice {
			continue
		}

		switch start.Name.Local {
		case "automatic-styles":
			content.AutoStyles = &autoStylesXML{}
			if err := decoder.DecodeElement(content.AutoStyles, &start); err != nil {
				return nil, err
			}
		case "text":
			sawBody = true
			if content.Elements, err = decodeBlocks(decoder); err != nil {
				return nil, err
			}
		}
	}

	if !sawBody {
		return nil, errors.New("no office:text body")
	}
	return content, nil
}

// decodeBlocks reads block content up to the end of the enclosing element.
// Sections and index bodies are read through; their blocks join the
// enclosing sequence.
func decodeBlocks(d *xml.Decoder) ([]bodyElement, error) {
	var out []bodyElement
	for {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			els, err := decodeBlock(d, t)
			if err != nil {
				return nil, err
			}
			out = append(out, els...)
		case xml.EndElement:
			return out, nil
		}
	}
}

func decodeBlock(d *xml.Decoder, el xml.StartElement) ([]bodyElement, error) {
	switch el.Name.Local {
	case "p", "h":
		p := &paragraphXML{}
		if err := d.DecodeElement(p, &el); err != nil {
			return nil, err
		}
		return []bodyElement{{Paragraph: p}}, nil

	case "list":
		return decodeList(d, el, "", 0)

	case "table":
		tbl := &tableXML{}
		if err := d.DecodeElement(tbl, &el); err != nil {
			return nil, err
		}
		return []bodyElement{{Table: tbl}}, nil

	case "section", "index-body", "index-title",
		"table-of-content", "alphabetical-index", "illustration-index",
		"table-index", "object-index", "user-index", "bibliography":
		return decodeBlocks(d)

	default:
		return nil, d.Skip()
	}
}

// UnmarshalXML decodes a paragraph or heading, collecting its text with
// the character style of the innermost enclosing span.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Heading = start.Name.Local == "h"
	p.StyleName = attr(start, "style-name")
	if v := attr(start, "outline-level"); v != "" {
		if level, err := strconv.Atoi(v); err == nil {
			p.OutlineLevel = level
		}
	}

	c := &textCollector{p: p, space: true}
	return c.collect(d, "")
}

// Text returns the paragraph's text from all of its spans.
func (p *paragraphXML) Text() string {
	var sb strings.Builder
	for _, s := range p.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// textCollector gathers paragraph content. Whitespace in character data
// collapses to one space and leading whitespace is dropped. text:s,
// text:tab and text:line-break are kept as written.
type textCollector struct {
	p     *paragraphXML
	space bool // last character written was collapsible whitespace
}

func (c *textCollector) collect(d *xml.Decoder, style string) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.CharData:
			c.chars(style, t)
		case xml.StartElement:
			if err := c.element(d, t, style); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (c *textCollector) element(d *xml.Decoder, el xml.StartElement, style string) error {
	switch el.Name.Local {
	case "span":
		if name := attr(el, "style-name"); name != "" {
			style = name
		}
		return c.collect(d, style)
	case "s":
		n := 1
		if v, err := strconv.Atoi(attr(el, "c")); err == nil && v > 0 {
			n = v
		}
		c.literal(style, strings.Repeat(" ", n))
	case "tab":
		c.literal(style, "\t")
	case "line-break":
		c.literal(style, "\n")
	case "note", "annotation", "frame", "custom-shape", "tracked-changes":
		// Footnotes, comments and drawings are not paragraph text.
	default:
		// Hyperlinks, fields and other inline containers contribute
		// their text under the enclosing style.
		return c.collect(d, style)
	}
	return d.Skip()
}

func (c *textCollector) chars(style string, data []byte) {
	var sb strings.Builder
	for _, r := range string(data) {
		switch r {
		case ' ', '\t', '\n', '\r':
			if c.space {
				continue
			}
			sb.WriteByte(' ')
			c.space = true
		default:
			sb.WriteRune(r)
			c.space = false
		}
	}
	c.write(style, sb.String())
}

func (c *textCollector) literal(style, text string) {
	c.write(style, text)
	c.space = false
}

// write appends text, extending the last span when the style matches.
func (c *textCollector) write(style, text string) {
	if text == "" {
		return
	}
	if n := len(c.p.Spans); n > 0 && c.p.Spans[n-1].StyleName == style {
		c.p.Spans[n-1].Text += text
		return
	}
	c.p.Spans = append(c.p.Spans, spanXML{StyleName: style, Text: text})
}

// attr returns the value of the attribute with the given local name.
func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
