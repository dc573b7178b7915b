package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body with paragraphs and tables kept in
// document order.
type bodyXML struct {
	Elements []bodyElement
	SectPr   *sectPrXML // body-final section properties
}

// bodyElement represents an element in the document body. Exactly one of
// Paragraph and Table is set.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML decodes the body's children in order. Elements other than
// paragraphs, tables and the final sectPr are skipped.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return fmt.Errorf("unexpected end of body")
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p := &paragraphXML{}
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Paragraph: p})
			case "tbl":
				tbl := &tableXML{}
				if err := d.DecodeElement(tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Table: tbl})
			case "sectPr":
				sp := &sectPrXML{}
				if err := d.DecodeElement(sp, &t); err != nil {
					return err
				}
				b.SectPr = sp
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>). Runs holds direct
// runs and runs inside hyperlinks, in order.
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

// UnmarshalXML decodes paragraph properties and runs in order.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, h.Runs...)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Text returns the paragraph's text from all of its runs.
func (p *paragraphXML) Text() string {
	var sb strings.Builder
	for i := range p.Runs {
		sb.WriteString(p.Runs[i].Text)
	}
	return sb.String()
}

// paragraphPropsXML represents paragraph properties (<w:pPr>). Pointer
// fields are nil when the element is absent.
type paragraphPropsXML struct {
	Style         *valXML            `xml:"pStyle"`
	NumPr         *numberingPropsXML `xml:"numPr"`
	Justification *valXML            `xml:"jc"`
	Spacing       *spacingXML        `xml:"spacing"`
	SectPr        *sectPrXML         `xml:"sectPr"`
}

// valXML is an element whose only content is a w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  *valXML `xml:"ilvl"`
	NumID *valXML `xml:"numId"`
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before string `xml:"before,attr"` // Space before in twips
	After  string `xml:"after,attr"`  // Space after in twips
}

// hyperlinkXML represents a hyperlink.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

// runXML represents a text run (<w:r>). Text is assembled from the run's
// content elements in order.
type runXML struct {
	Properties runPropsXML
	Text       string
}

// UnmarshalXML decodes run properties and converts text, tab and break
// elements to text in document order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
				continue
			case "t":
				var text textXML
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				sb.WriteString(text.Value)
				continue
			case "tab", "ptab":
				sb.WriteString("\t")
			case "cr":
				sb.WriteString("\n")
			case "br":
				if breakType(t) == "textWrapping" {
					sb.WriteString("\n")
				}
			case "noBreakHyphen":
				sb.WriteString("-")
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			r.Text = sb.String()
			return nil
		}
	}
}

// breakType returns the w:type of a <w:br>; an absent type is a line break.
func breakType(el xml.StartElement) string {
	for _, a := range el.Attr {
		if a.Name.Local == "type" && a.Value != "" {
			return a.Value
		}
	}
	return "textWrapping"
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Style     *valXML  `xml:"rStyle"`
	Bold      *valXML  `xml:"b"`
	Italic    *valXML  `xml:"i"`
	Underline *valXML  `xml:"u"`
	FontSize  *valXML  `xml:"sz"` // half-points
	Font      *fontXML `xml:"rFonts"`
	Color     *valXML  `xml:"color"`
	VertAlign *valXML  `xml:"vertAlign"` // superscript, subscript, baseline
}

// fontXML represents font settings.
type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	Space string `xml:"space,attr"` // preserve
	Value string `xml:",chardata"`
}

// sectPrXML represents section properties (<w:sectPr>).
type sectPrXML struct {
	PageSize   pageSizeXML  `xml:"pgSz"`
	HeaderRefs []partRefXML `xml:"headerReference"`
	FooterRefs []partRefXML `xml:"footerReference"`
	Type       *valXML      `xml:"type"` // nextPage, continuous, ...
}

// pageSizeXML represents the page size and orientation.
type pageSizeXML struct {
	W      string `xml:"w,attr"`
	H      string `xml:"h,attr"`
	Orient string `xml:"orient,attr"` // portrait, landscape
}

// partRefXML represents a header or footer reference.
type partRefXML struct {
	Type string `xml:"type,attr"` // default, first, even
	ID   string `xml:"id,attr"`   // relationship ID
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Properties rowPropsXML    `xml:"trPr"`
	Cells      []tableCellXML `xml:"tc"`
}

// rowPropsXML represents row properties.
type rowPropsXML struct {
	GridBefore *valXML `xml:"gridBefore"` // grid columns skipped before the first cell
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	Properties cellPropsXML   `xml:"tcPr"`
	Paragraphs []paragraphXML `xml:"p"`
}

// cellPropsXML represents cell properties.
type cellPropsXML struct {
	GridSpan *valXML `xml:"gridSpan"`
	VMerge   *valXML `xml:"vMerge"` // "restart", or empty/"continue"
}

// headerXML represents the structure of word/header*.xml files (<w:hdr>).
type headerXML struct {
	XMLName    xml.Name       `xml:"hdr"`
	Paragraphs []paragraphXML `xml:"p"`
}

// footerXML represents the structure of word/footer*.xml files (<w:ftr>).
type footerXML struct {
	XMLName    xml.Name       `xml:"ftr"`
	Paragraphs []paragraphXML `xml:"p"`
}
