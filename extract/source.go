package extract

import "github.com/tsawler/docmodel/model"

// Source is a parsed document object model.
type Source interface {
	// Sections returns the declared sections in document order.
	Sections() []Section

	// Blocks returns the top-level body blocks in reading order.
	Blocks() []Block
}

// Section is a document subdivision with its own page setup.
type Section interface {
	Orientation() model.Orientation
	Header() []Paragraph
	Footer() []Paragraph
}

// Block is one top-level body block. Exactly one field is set.
type Block struct {
	Paragraph Paragraph
	Table     Table
}

// Paragraph is a paragraph node of the object model.
type Paragraph interface {
	// Text returns the visible text of the paragraph.
	Text() string

	// Runs returns the paragraph's runs in order, including empty ones.
	Runs() []RawRun

	// StyleName returns the name of the paragraph's style, if it has one.
	StyleName() (string, bool)

	// StyleFont returns the font attributes defined by the style itself.
	StyleFont() Font

	// Alignment returns the directly set justification value.
	Alignment() (string, bool)

	// SpaceBefore and SpaceAfter return directly set spacing in points.
	SpaceBefore() (float64, bool)
	SpaceAfter() (float64, bool)

	// Numbering returns the paragraph's numbering properties, if present.
	Numbering() (Numbering, bool)

	// SectionBreak reports whether the paragraph carries embedded section
	// properties, which end the current section.
	SectionBreak() bool
}

// Table is a table node of the object model.
type Table interface {
	Rows() [][]Cell
}

// VMerge is the vertical merge state of a table cell.
type VMerge int

const (
	VMergeNone VMerge = iota
	VMergeRestart
	VMergeContinue
)

func (v VMerge) String() string {
	switch v {
	case VMergeRestart:
		return "restart"
	case VMergeContinue:
		return "continue"
	default:
		return "none"
	}
}

// Cell is a table cell node of the object model.
type Cell interface {
	// GridSpan returns the number of grid columns the cell spans.
	GridSpan() int

	// VMerge returns the cell's vertical merge marker.
	VMerge() VMerge

	// VerticalExtent returns the number of rows a merge starting at this
	// cell covers, counting the cell's own row.
	VerticalExtent() int

	Paragraphs() []Paragraph
}

// RawRun is a run as reported by the object model, before merging.
type RawRun struct {
	Text        string
	Bold        model.Tristate
	Italic      model.Tristate
	Underline   model.Tristate
	Subscript   model.Tristate
	Superscript model.Tristate
	FontSize    *float64 // points
	StyleName   string   // character style name
	FontName    string
	Color       string // RRGGBB
}

// Font holds the font attributes of a style definition.
type Font struct {
	Bold   model.Tristate
	Italic model.Tristate
	Size   *float64 // points
}

// Numbering holds a paragraph's numbering properties.
type Numbering struct {
	NumID string
	Level *int // nil when no indent level is given
}
