package odt

import "encoding/xml"

// decodeList flattens a <text:list> into the paragraphs of its items. A
// nested list without its own style-name continues the enclosing list's
// style one level deeper.
func decodeList(d *xml.Decoder, el xml.StartElement, style string, level int) ([]bodyElement, error) {
	if name := attr(el, "style-name"); name != "" {
		style = name
	}

	var out []bodyElement
	for {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			var els []bodyElement
			switch t.Name.Local {
			case "list-item":
				els, err = decodeListItem(d, style, level, true)
			case "list-header":
				els, err = decodeListItem(d, style, level, false)
			default:
				err = d.Skip()
			}
			if err != nil {
				return nil, err
			}
			out = append(out, els...)
		case xml.EndElement:
			return out, nil
		}
	}
}

// decodeListItem reads one list item. Every paragraph of a numbered item
// belongs to the list; a list header's paragraphs are plain paragraphs.
func decodeListItem(d *xml.Decoder, style string, level int, numbered bool) ([]bodyElement, error) {
	var out []bodyElement
	for {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p", "h":
				p := &paragraphXML{}
				if err := d.DecodeElement(p, &t); err != nil {
					return nil, err
				}
				if numbered {
					p.List = &listInfo{StyleName: style, Level: level}
				}
				out = append(out, bodyElement{Paragraph: p})
			case "list":
				els, err := decodeList(d, t, style, level+1)
				if err != nil {
					return nil, err
				}
				out = append(out, els...)
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return out, nil
		}
	}
}
