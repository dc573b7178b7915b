package model

import (
	"encoding/json"
	"fmt"
)

// Orientation is the page orientation of a layout.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "LANDSCAPE"
	}
	return "PORTRAIT"
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "PORTRAIT":
		*o = Portrait
	case "LANDSCAPE":
		*o = Landscape
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// Layout is the output form of one document section.
type Layout struct {
	ID          string      `json:"id,omitempty"`
	ParentID    string      `json:"parent_id,omitempty"`
	Orientation Orientation `json:"orientation"`
	Header      []Run       `json:"header"`
	Footer      []Run       `json:"footer"`
	Elements    []Element   `json:"elements"`
}

// NewLayout creates an empty layout.
func NewLayout(orientation Orientation, header, footer []Run) *Layout {
	return &Layout{
		Orientation: orientation,
		Header:      header,
		Footer:      footer,
		Elements:    make([]Element, 0),
	}
}

// AddElement appends a paragraph or table to the layout body.
func (l *Layout) AddElement(e Element) {
	l.Elements = append(l.Elements, e)
}

// Paragraphs returns the top-level paragraphs of the layout.
func (l *Layout) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, e := range l.Elements {
		if p, ok := e.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the tables of the layout.
func (l *Layout) Tables() []*Table {
	var out []*Table
	for _, e := range l.Elements {
		if t, ok := e.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// UnmarshalJSON decodes elements by their "type" discriminator.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string            `json:"id"`
		ParentID    string            `json:"parent_id"`
		Orientation Orientation       `json:"orientation"`
		Header      []Run             `json:"header"`
		Footer      []Run             `json:"footer"`
		Elements    []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.ID = raw.ID
	l.ParentID = raw.ParentID
	l.Orientation = raw.Orientation
	l.Header = raw.Header
	l.Footer = raw.Footer
	l.Elements = make([]Element, 0, len(raw.Elements))

	for i, msg := range raw.Elements {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &probe); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		switch probe.Type {
		case ElementTypeParagraph.String():
			p := &Paragraph{}
			if err := json.Unmarshal(msg, p); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			l.Elements = append(l.Elements, p)
		case ElementTypeTable.String():
			t := &Table{}
			if err := json.Unmarshal(msg, t); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			l.Elements = append(l.Elements, t)
		default:
			return fmt.Errorf("element %d: unknown type %q", i, probe.Type)
		}
	}
	return nil
}

// Document is the complete content model of one parsed document.
type Document struct {
	Filename string    `json:"filename"`
	UID      string    `json:"uid"`
	Layouts  []*Layout `json:"layouts"`
}

// LayoutCount returns the number of layouts.
func (d *Document) LayoutCount() int {
	return len(d.Layouts)
}

// Node is a position in the document hierarchy visited by Walk.
type Node struct {
	ID       string
	ParentID string
	Path     string
	Value    any // *Layout, *Paragraph, *Table, []TableCell (a row) or *TableCell
}

// Walk visits every node of the hierarchy in order: each layout, then its
// elements, and for tables each row, its cells and their paragraphs.
// Walking stops at the first error returned by fn.
func (d *Document) Walk(fn func(Node) error) error {
	for li, layout := range d.Layouts {
		lp := layoutPath(li)
		if err := fn(Node{ID: layout.ID, ParentID: layout.ParentID, Path: lp, Value: layout}); err != nil {
			return err
		}
		for ei, elem := range layout.Elements {
			ep := elementPath(lp, ei)
			switch e := elem.(type) {
			case *Paragraph:
				if err := fn(Node{ID: e.ID, ParentID: e.ParentID, Path: ep, Value: e}); err != nil {
					return err
				}
			case *Table:
				if err := walkTable(d.UID, e, ep, fn); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func walkTable(uid string, t *Table, path string, fn func(Node) error) error {
	if err := fn(Node{ID: t.ID, ParentID: t.ParentID, Path: path, Value: t}); err != nil {
		return err
	}
	for ri, row := range t.Rows {
		rp := rowPath(path, ri)
		if err := fn(Node{ID: makeID(uid, rp), ParentID: t.ID, Path: rp, Value: row}); err != nil {
			return err
		}
		for ci := range row {
			cell := &t.Rows[ri][ci]
			cp := cellPath(rp, ci)
			if err := fn(Node{ID: cell.ID, ParentID: cell.ParentID, Path: cp, Value: cell}); err != nil {
				return err
			}
			for pi := range cell.Paragraphs {
				p := &cell.Paragraphs[pi]
				if err := fn(Node{ID: p.ID, ParentID: p.ParentID, Path: paragraphPath(cp, pi), Value: p}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ElementIDs returns every identifier in the hierarchy in walk order.
func (d *Document) ElementIDs() []string {
	var ids []string
	d.Walk(func(n Node) error {
		ids = append(ids, n.ID)
		return nil
	})
	return ids
}
