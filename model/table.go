package model

import (
	"encoding/json"
	"strings"
)

// Table is a table element. Rows are not normalized into a rectangular
// grid; each cell declares its own spans.
type Table struct {
	ID       string        `json:"id,omitempty"`
	ParentID string        `json:"parent_id,omitempty"`
	Rows     [][]TableCell `json:"rows"`
}

func (t *Table) Type() ElementType { return ElementTypeTable }
func (t *Table) ElementID() string { return t.ID }

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of grid columns covered by the widest row.
func (t *Table) ColCount() int {
	max := 0
	for _, row := range t.Rows {
		n := 0
		for _, cell := range row {
			n += cell.ColSpan
		}
		if n > max {
			max = n
		}
	}
	return max
}

// GetCell returns the cell at the given row and cell index (0-indexed)
func (t *Table) GetCell(row, col int) *TableCell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// Text returns the table as tab-separated rows.
func (t *Table) Text() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text())
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// MarshalJSON adds the "table" type discriminator.
func (t *Table) MarshalJSON() ([]byte, error) {
	type plain Table
	return json.Marshal(struct {
		Type string `json:"type"`
		*plain
	}{ElementTypeTable.String(), (*plain)(t)})
}

// TableCell is one declared cell of a table row. RowSpan is greater than
// one only on the cell that starts a vertical merge.
type TableCell struct {
	ID         string      `json:"id,omitempty"`
	ParentID   string      `json:"parent_id,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs"`
	ColSpan    int         `json:"colspan"`
	RowSpan    int         `json:"rowspan"`
}

// Text returns the cell's paragraphs joined by newlines.
func (c *TableCell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for i := range c.Paragraphs {
		parts = append(parts, c.Paragraphs[i].Text())
	}
	return strings.Join(parts, "\n")
}
