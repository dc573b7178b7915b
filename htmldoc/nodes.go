package htmldoc

import (
	"strings"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// paragraphNode is an HTML block exposed as an extract.Paragraph.
type paragraphNode struct {
	runs      []extract.RawRun
	style     string
	bold      bool // the style's own font is bold (headings)
	align     string
	numbering *extract.Numbering
}

func (p *paragraphNode) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func (p *paragraphNode) Runs() []extract.RawRun    { return p.runs }
func (p *paragraphNode) StyleName() (string, bool) { return p.style, true }
func (p *paragraphNode) Alignment() (string, bool) { return p.align, p.align != "" }
func (p *paragraphNode) SectionBreak() bool        { return false }

func (p *paragraphNode) StyleFont() extract.Font {
	if p.bold {
		return extract.Font{Bold: model.True}
	}
	return extract.Font{}
}

// HTML carries no paragraph spacing in the object model.
func (p *paragraphNode) SpaceBefore() (float64, bool) { return 0, false }
func (p *paragraphNode) SpaceAfter() (float64, bool)  { return 0, false }

func (p *paragraphNode) Numbering() (extract.Numbering, bool) {
	if p.numbering == nil {
		return extract.Numbering{}, false
	}
	return *p.numbering, true
}

// tableNode is an HTML <table> exposed as an extract.Table.
type tableNode struct {
	rows [][]extract.Cell
}

func (t *tableNode) Rows() [][]extract.Cell { return t.rows }

// cellNode is a <td> or <th>. Rows covered by a rowspan declare no cell of
// their own, so a merge never has continuation cells.
type cellNode struct {
	span       int
	merge      extract.VMerge
	extent     int
	paragraphs []extract.Paragraph
}

func (c *cellNode) GridSpan() int                   { return c.span }
func (c *cellNode) VMerge() extract.VMerge          { return c.merge }
func (c *cellNode) VerticalExtent() int             { return c.extent }
func (c *cellNode) Paragraphs() []extract.Paragraph { return c.paragraphs }

// sectionNode is the single portrait section of an HTML document.
type sectionNode struct {
	header []extract.Paragraph
	footer []extract.Paragraph
}

func (s *sectionNode) Orientation() model.Orientation { return model.Portrait }
func (s *sectionNode) Header() []extract.Paragraph    { return s.header }
func (s *sectionNode) Footer() []extract.Paragraph    { return s.footer }
