package odt

import (
	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// paragraphNode exposes a <text:p> or <text:h> as an extract.Paragraph.
type paragraphNode struct {
	p      *paragraphXML
	styles *StyleResolver
}

func paragraphNodes(ps []paragraphXML, styles *StyleResolver) []extract.Paragraph {
	nodes := make([]extract.Paragraph, len(ps))
	for i := range ps {
		nodes[i] = &paragraphNode{p: &ps[i], styles: styles}
	}
	return nodes
}

func (n *paragraphNode) Text() string { return n.p.Text() }

func (n *paragraphNode) Runs() []extract.RawRun {
	runs := make([]extract.RawRun, len(n.p.Spans))
	for i := range n.p.Spans {
		runs[i] = n.styles.resolveSpan(&n.p.Spans[i])
	}
	return runs
}

func (n *paragraphNode) StyleName() (string, bool) {
	named, _ := n.styles.paragraphStyle(n.p.StyleName)
	if named == nil {
		return "", false
	}
	return displayName(named), true
}

func (n *paragraphNode) StyleFont() extract.Font {
	named, _ := n.styles.paragraphStyle(n.p.StyleName)
	return styleFont(named)
}

// direct returns the paragraph properties of the paragraph's automatic
// style, which hold its direct formatting.
func (n *paragraphNode) direct() *paragraphPropsXML {
	_, direct := n.styles.paragraphStyle(n.p.StyleName)
	if direct == nil {
		return nil
	}
	return direct.ParagraphProps
}

func (n *paragraphNode) Alignment() (string, bool) {
	pp := n.direct()
	if pp == nil || pp.TextAlign == "" {
		return "", false
	}
	return pp.TextAlign, true
}

func (n *paragraphNode) SpaceBefore() (float64, bool) {
	pp := n.direct()
	if pp == nil {
		return 0, false
	}
	return parseLength(pp.MarginTop)
}

func (n *paragraphNode) SpaceAfter() (float64, bool) {
	pp := n.direct()
	if pp == nil {
		return 0, false
	}
	return parseLength(pp.MarginBottom)
}

// Numbering reports list membership. The list style name stands in for
// the numbering ID and the nesting depth for the indent level.
func (n *paragraphNode) Numbering() (extract.Numbering, bool) {
	if n.p.List == nil {
		return extract.Numbering{}, false
	}
	level := n.p.List.Level
	return extract.Numbering{NumID: n.p.List.StyleName, Level: &level}, true
}

func (n *paragraphNode) SectionBreak() bool { return false }

// breakNode marks the start of a new master page. It is inserted before
// the paragraph whose style names the master page.
type breakNode struct{}

func (breakNode) Text() string                         { return "" }
func (breakNode) Runs() []extract.RawRun               { return nil }
func (breakNode) StyleName() (string, bool)            { return "", false }
func (breakNode) StyleFont() extract.Font              { return extract.Font{} }
func (breakNode) Alignment() (string, bool)            { return "", false }
func (breakNode) SpaceBefore() (float64, bool)         { return 0, false }
func (breakNode) SpaceAfter() (float64, bool)          { return 0, false }
func (breakNode) Numbering() (extract.Numbering, bool) { return extract.Numbering{}, false }
func (breakNode) SectionBreak() bool                   { return true }

// sectionNode exposes a master page as an extract.Section.
type sectionNode struct {
	orientation model.Orientation
	header      []extract.Paragraph
	footer      []extract.Paragraph
}

func (s *sectionNode) Orientation() model.Orientation { return s.orientation }
func (s *sectionNode) Header() []extract.Paragraph    { return s.header }
func (s *sectionNode) Footer() []extract.Paragraph    { return s.footer }

// orientationOf returns the orientation of a page layout. Without an
// explicit print orientation, a page wider than it is tall is landscape.
func orientationOf(pl *pageLayoutXML) model.Orientation {
	if pl == nil || pl.PageProps == nil {
		return model.Portrait
	}
	switch pl.PageProps.PrintOrientation {
	case "landscape":
		return model.Landscape
	case "portrait":
		return model.Portrait
	}
	w, wok := parseLength(pl.PageProps.PageWidth)
	h, hok := parseLength(pl.PageProps.PageHeight)
	if wok && hok && w > h {
		return model.Landscape
	}
	return model.Portrait
}

// regionParagraphs returns a visible header or footer's paragraphs.
func regionParagraphs(r *regionXML, styles *StyleResolver) []extract.Paragraph {
	if r == nil || r.Hidden {
		return nil
	}
	return paragraphNodes(r.Paragraphs, styles)
}
