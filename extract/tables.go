package extract

import (
	"strings"

	"github.com/tsawler/docmodel/model"
)

// ExtractTable builds the table model. Each declared cell becomes one
// model cell; rows are not padded into a grid.
//
// ColSpan is the cell's grid span (at least 1). RowSpan is 1 unless the
// cell starts a vertical merge, in which case it is the merge's vertical
// extent. Continuation cells always report 1.
func ExtractTable(t Table) *model.Table {
	rows := t.Rows()
	table := &model.Table{
		Rows: make([][]model.TableCell, 0, len(rows)),
	}

	for _, row := range rows {
		cells := make([]model.TableCell, 0, len(row))
		for _, cell := range row {
			cells = append(cells, extractCell(cell))
		}
		table.Rows = append(table.Rows, cells)
	}

	return table
}

func extractCell(c Cell) model.TableCell {
	cell := model.TableCell{
		ColSpan: 1,
		RowSpan: 1,
	}

	if span := c.GridSpan(); span > 1 {
		cell.ColSpan = span
	}
	if c.VMerge() == VMergeRestart {
		if extent := c.VerticalExtent(); extent > 1 {
			cell.RowSpan = extent
		}
	}

	for _, p := range c.Paragraphs() {
		if !hasVisibleText(p) {
			continue
		}
		cell.Paragraphs = append(cell.Paragraphs, *ExtractParagraph(p))
	}
	if cell.Paragraphs == nil {
		cell.Paragraphs = []model.Paragraph{}
	}

	return cell
}

// hasVisibleText reports whether the paragraph has non-whitespace text.
func hasVisibleText(p Paragraph) bool {
	return strings.TrimSpace(p.Text()) != ""
}
