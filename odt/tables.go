package odt

import (
	"encoding/xml"
	"strconv"

	"github.com/tsawler/docmodel/extract"
)

// maxRepeat caps number-rows-repeated and number-columns-repeated.
// Writers use large repeat counts to pad empty trailing cells.
const maxRepeat = 1024

// tableXML represents a table (<table:table>).
type tableXML struct {
	StyleName string
	Rows      []tableRowXML
}

// tableRowXML represents a table row (<table:table-row>).
type tableRowXML struct {
	Cells []tableCellXML
}

// tableCellXML represents a <table:table-cell> or a
// <table:covered-table-cell>.
type tableCellXML struct {
	Covered    bool
	ColSpan    int // at least 1
	RowSpan    int // at least 1
	Paragraphs []paragraphXML
}

// UnmarshalXML decodes the rows of a table, reading through header-row
// and row-group wrappers.
func (t *tableXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	t.StyleName = attr(start, "style-name")
	return t.readRows(d)
}

func (t *tableXML) readRows(d *xml.Decoder) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "table-row":
				var row tableRowXML
				if err := d.DecodeElement(&row, &el); err != nil {
					return err
				}
				for n := repeatCount(el, "number-rows-repeated"); n > 0; n-- {
					t.Rows = append(t.Rows, row)
				}
			case "table-header-rows", "table-rows", "table-row-group":
				if err := t.readRows(d); err != nil {
					return err
				}
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

// UnmarshalXML decodes the cells of a row, expanding repeated cells.
func (r *tableRowXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "table-cell", "covered-table-cell":
				cell := tableCellXML{
					Covered: el.Name.Local == "covered-table-cell",
					ColSpan: spanAttr(el, "number-columns-spanned"),
					RowSpan: spanAttr(el, "number-rows-spanned"),
				}
				if err := cell.readContent(d); err != nil {
					return err
				}
				for n := repeatCount(el, "number-columns-repeated"); n > 0; n-- {
					r.Cells = append(r.Cells, cell)
				}
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

// readContent collects the cell's paragraphs, including those of lists.
// Nested tables are skipped.
func (c *tableCellXML) readContent(d *xml.Decoder) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p", "h":
				var p paragraphXML
				if err := d.DecodeElement(&p, &el); err != nil {
					return err
				}
				c.Paragraphs = append(c.Paragraphs, p)
			case "list":
				items, err := decodeList(d, el, "", 0)
				if err != nil {
					return err
				}
				for _, item := range items {
					c.Paragraphs = append(c.Paragraphs, *item.Paragraph)
				}
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

// spanAttr parses a span attribute, defaulting to 1.
func spanAttr(el xml.StartElement, local string) int {
	if n, err := strconv.Atoi(attr(el, local)); err == nil && n > 1 {
		return n
	}
	return 1
}

// repeatCount parses a repeat attribute, defaulting to 1.
func repeatCount(el xml.StartElement, local string) int {
	return min(spanAttr(el, local), maxRepeat)
}

// tableNode exposes a table as an extract.Table.
type tableNode struct {
	rows [][]extract.Cell
}

func (t *tableNode) Rows() [][]extract.Cell { return t.rows }

// verticalMerge is a row-spanning cell still open at a grid column.
type verticalMerge struct {
	cols    int
	lastRow int
}

// newTableNode maps the table onto declared cells. A cell with
// number-columns-spanned absorbs the covered cells to its right. A covered
// cell under a row-spanning cell becomes one continuation cell with the
// same column span. Other covered cells are dropped.
func newTableNode(tbl *tableXML, styles *StyleResolver) *tableNode {
	node := &tableNode{rows: make([][]extract.Cell, len(tbl.Rows))}
	merges := make(map[int]verticalMerge) // start column -> merge

	for ri := range tbl.Rows {
		row := tbl.Rows[ri].Cells
		cells := make([]extract.Cell, 0, len(row))
		col := 0

		for ci := 0; ci < len(row); {
			tc := &row[ci]

			if !tc.Covered {
				cell := &cellNode{
					paragraphs: paragraphNodes(tc.Paragraphs, styles),
					span:       tc.ColSpan,
					extent:     1,
				}
				if tc.RowSpan > 1 {
					cell.vmerge = extract.VMergeRestart
					cell.extent = min(tc.RowSpan, len(tbl.Rows)-ri)
					merges[col] = verticalMerge{cols: tc.ColSpan, lastRow: ri + cell.extent - 1}
				}
				cells = append(cells, cell)
				col += tc.ColSpan
				ci += 1 + coveredRun(row[ci+1:], tc.ColSpan-1)
				continue
			}

			if m, ok := merges[col]; ok && ri <= m.lastRow {
				cells = append(cells, &cellNode{
					paragraphs: paragraphNodes(tc.Paragraphs, styles),
					span:       m.cols,
					vmerge:     extract.VMergeContinue,
					extent:     1,
				})
				col += m.cols
				ci += 1 + coveredRun(row[ci+1:], m.cols-1)
				continue
			}

			col++
			ci++
		}

		node.rows[ri] = cells
	}

	return node
}

// coveredRun counts the leading covered cells, up to limit.
func coveredRun(cells []tableCellXML, limit int) int {
	n := 0
	for n < limit && n < len(cells) && cells[n].Covered {
		n++
	}
	return n
}

// cellNode exposes a table cell as an extract.Cell.
type cellNode struct {
	paragraphs []extract.Paragraph
	span       int
	vmerge     extract.VMerge
	extent     int
}

func (c *cellNode) GridSpan() int                   { return c.span }
func (c *cellNode) VMerge() extract.VMerge          { return c.vmerge }
func (c *cellNode) VerticalExtent() int             { return c.extent }
func (c *cellNode) Paragraphs() []extract.Paragraph { return c.paragraphs }
