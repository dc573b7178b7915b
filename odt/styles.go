package odt

import "encoding/xml"

// stylesXML represents the structure of styles.xml
type stylesXML struct {
	XMLName      xml.Name         `xml:"document-styles"`
	Styles       *namedStylesXML  `xml:"styles"`
	AutoStyles   *autoStylesXML   `xml:"automatic-styles"`
	MasterStyles *masterStylesXML `xml:"master-styles"`
}

// namedStylesXML represents the office:styles element (named styles).
type namedStylesXML struct {
	Styles []styleDefXML `xml:"style"`
}

// autoStylesXML represents an office:automatic-styles element.
type autoStylesXML struct {
	Styles      []styleDefXML   `xml:"style"`
	PageLayouts []pageLayoutXML `xml:"page-layout"`
}

// masterStylesXML represents the office:master-styles element.
type masterStylesXML struct {
	MasterPages []masterPageXML `xml:"master-page"`
}

// styleDefXML represents a style definition (<style:style>).
type styleDefXML struct {
	Name            string             `xml:"name,attr"`
	DisplayName     string             `xml:"display-name,attr"`
	Family          string             `xml:"family,attr"` // paragraph, text, table, ...
	ParentStyleName string             `xml:"parent-style-name,attr"`
	MasterPageName  string             `xml:"master-page-name,attr"`
	ParagraphProps  *paragraphPropsXML `xml:"paragraph-properties"`
	TextProps       *textPropsXML      `xml:"text-properties"`
}

// paragraphPropsXML represents paragraph properties (<style:paragraph-properties>).
type paragraphPropsXML struct {
	TextAlign    string `xml:"text-align,attr"` // start, end, left, right, center, justify
	MarginTop    string `xml:"margin-top,attr"`
	MarginBottom string `xml:"margin-bottom,attr"`
}

// textPropsXML represents text properties (<style:text-properties>).
type textPropsXML struct {
	FontName      string `xml:"font-name,attr"`
	FontFamily    string `xml:"font-family,attr"`
	FontSize      string `xml:"font-size,attr"`
	FontStyle     string `xml:"font-style,attr"`           // normal, italic, oblique
	FontWeight    string `xml:"font-weight,attr"`          // normal, bold, 100-900
	TextUnderline string `xml:"text-underline-style,attr"` // none, solid, ...
	TextPosition  string `xml:"text-position,attr"`        // sub, super, or percentages
	Color         string `xml:"color,attr"`                // #RRGGBB
}

// pageLayoutXML represents a page layout (<style:page-layout>).
type pageLayoutXML struct {
	Name      string        `xml:"name,attr"`
	PageProps *pagePropsXML `xml:"page-layout-properties"`
}

// pagePropsXML represents page layout properties.
type pagePropsXML struct {
	PageWidth        string `xml:"page-width,attr"`
	PageHeight       string `xml:"page-height,attr"`
	PrintOrientation string `xml:"print-orientation,attr"`
}

// masterPageXML represents a master page (<style:master-page>).
type masterPageXML struct {
	Name           string     `xml:"name,attr"`
	PageLayoutName string     `xml:"page-layout-name,attr"`
	Header         *regionXML `xml:"header"`
	Footer         *regionXML `xml:"footer"`
}

// regionXML is a master page header or footer.
type regionXML struct {
	Hidden     bool
	Paragraphs []paragraphXML
}

// UnmarshalXML decodes the region's paragraphs and headings in order.
// style:display="false" hides the region.
func (r *regionXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	r.Hidden = attr(start, "display") == "false"
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local != "p" && el.Name.Local != "h" {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			var p paragraphXML
			if err := d.DecodeElement(&p, &el); err != nil {
				return err
			}
			r.Paragraphs = append(r.Paragraphs, p)
		case xml.EndElement:
			return nil
		}
	}
}
