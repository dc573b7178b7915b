package extract

import (
	"strings"

	"github.com/tsawler/docmodel/model"
)

// fakePara is an in-memory Paragraph.
type fakePara struct {
	runs      []RawRun
	style     string
	hasStyle  bool
	font      Font
	align     string
	before    *float64
	after     *float64
	numbering *Numbering
	sectBreak bool
}

func para(texts ...string) *fakePara {
	p := &fakePara{}
	for _, t := range texts {
		p.runs = append(p.runs, RawRun{Text: t})
	}
	return p
}

func (p *fakePara) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func (p *fakePara) Runs() []RawRun            { return p.runs }
func (p *fakePara) StyleName() (string, bool) { return p.style, p.hasStyle }
func (p *fakePara) StyleFont() Font           { return p.font }
func (p *fakePara) SectionBreak() bool        { return p.sectBreak }

func (p *fakePara) Alignment() (string, bool) { return p.align, p.align != "" }

func (p *fakePara) SpaceBefore() (float64, bool) {
	if p.before == nil {
		return 0, false
	}
	return *p.before, true
}

func (p *fakePara) SpaceAfter() (float64, bool) {
	if p.after == nil {
		return 0, false
	}
	return *p.after, true
}

func (p *fakePara) Numbering() (Numbering, bool) {
	if p.numbering == nil {
		return Numbering{}, false
	}
	return *p.numbering, true
}

// fakeCell is an in-memory Cell.
type fakeCell struct {
	span   int
	merge  VMerge
	extent int
	paras  []Paragraph
}

func cell(text string) *fakeCell {
	return &fakeCell{span: 1, extent: 1, paras: []Paragraph{para(text)}}
}

func (c *fakeCell) GridSpan() int           { return c.span }
func (c *fakeCell) VMerge() VMerge          { return c.merge }
func (c *fakeCell) VerticalExtent() int     { return c.extent }
func (c *fakeCell) Paragraphs() []Paragraph { return c.paras }

type fakeTable struct {
	rows [][]Cell
}

func (t *fakeTable) Rows() [][]Cell { return t.rows }

type fakeSection struct {
	orientation model.Orientation
	header      []Paragraph
	footer      []Paragraph
}

func (s *fakeSection) Orientation() model.Orientation { return s.orientation }
func (s *fakeSection) Header() []Paragraph            { return s.header }
func (s *fakeSection) Footer() []Paragraph            { return s.footer }

type fakeSource struct {
	sections []Section
	blocks   []Block
}

func (s *fakeSource) Sections() []Section { return s.sections }
func (s *fakeSource) Blocks() []Block     { return s.blocks }

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
