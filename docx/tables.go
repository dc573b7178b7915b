package docx

import (
	"strconv"

	"github.com/tsawler/docmodel/extract"
)

// tableNode exposes a <w:tbl> as an extract.Table.
type tableNode struct {
	rows [][]extract.Cell
}

// newTableNode resolves grid positions and vertical merge extents for a
// table.
func newTableNode(tbl *tableXML, styles *StyleResolver) *tableNode {
	grid := gridOffsets(tbl)

	node := &tableNode{rows: make([][]extract.Cell, len(tbl.Rows))}
	for ri := range tbl.Rows {
		row := &tbl.Rows[ri]
		cells := make([]extract.Cell, len(row.Cells))
		for ci := range row.Cells {
			cell := &cellNode{
				tc:     &row.Cells[ci],
				styles: styles,
				extent: 1,
			}
			if cell.VMerge() == extract.VMergeRestart {
				cell.extent = verticalExtent(tbl, grid, ri, grid[ri][ci])
			}
			cells[ci] = cell
		}
		node.rows[ri] = cells
	}

	return node
}

func (t *tableNode) Rows() [][]extract.Cell { return t.rows }

// gridOffsets returns the starting grid column of every cell, honouring
// gridBefore on the row and gridSpan on preceding cells.
func gridOffsets(tbl *tableXML) [][]int {
	offsets := make([][]int, len(tbl.Rows))
	for ri, row := range tbl.Rows {
		col := 0
		if row.Properties.GridBefore != nil {
			if n, err := strconv.Atoi(row.Properties.GridBefore.Val); err == nil && n > 0 {
				col = n
			}
		}
		offsets[ri] = make([]int, len(row.Cells))
		for ci := range row.Cells {
			offsets[ri][ci] = col
			col += gridSpan(&row.Cells[ci])
		}
	}
	return offsets
}

// verticalExtent counts the rows covered by a merge that starts at row
// startRow in grid column col: the start row plus every following row
// whose cell at the same grid column continues the merge.
func verticalExtent(tbl *tableXML, grid [][]int, startRow, col int) int {
	extent := 1
	for ri := startRow + 1; ri < len(tbl.Rows); ri++ {
		ci := cellAtColumn(grid[ri], col)
		if ci < 0 || vMerge(&tbl.Rows[ri].Cells[ci]) != extract.VMergeContinue {
			break
		}
		extent++
	}
	return extent
}

// cellAtColumn finds the cell index that starts at the given grid column.
func cellAtColumn(offsets []int, col int) int {
	for i, off := range offsets {
		if off == col {
			return i
		}
		if off > col {
			break
		}
	}
	return -1
}

// gridSpan returns the cell's column span, at least 1.
func gridSpan(tc *tableCellXML) int {
	if tc.Properties.GridSpan != nil {
		if span, err := strconv.Atoi(tc.Properties.GridSpan.Val); err == nil && span > 0 {
			return span
		}
	}
	return 1
}

// vMerge returns the cell's vertical merge marker. A vMerge element with
// no value continues the merge above.
func vMerge(tc *tableCellXML) extract.VMerge {
	vm := tc.Properties.VMerge
	switch {
	case vm == nil:
		return extract.VMergeNone
	case vm.Val == "restart":
		return extract.VMergeRestart
	default:
		return extract.VMergeContinue
	}
}

// cellNode exposes a <w:tc> as an extract.Cell.
type cellNode struct {
	tc     *tableCellXML
	styles *StyleResolver
	extent int
}

func (c *cellNode) GridSpan() int          { return gridSpan(c.tc) }
func (c *cellNode) VMerge() extract.VMerge { return vMerge(c.tc) }
func (c *cellNode) VerticalExtent() int    { return c.extent }

func (c *cellNode) Paragraphs() []extract.Paragraph {
	return paragraphNodes(c.tc.Paragraphs, c.styles)
}
