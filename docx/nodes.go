package docx

import (
	"strconv"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// paragraphNode exposes a <w:p> as an extract.Paragraph.
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
	runs := make([]extract.RawRun, len(n.p.Runs))
	for i := range n.p.Runs {
		runs[i] = n.styles.resolveRun(&n.p.Runs[i])
	}
	return runs
}

// style returns the paragraph's style definition: the one named by
// w:pStyle, or the default paragraph style.
func (n *paragraphNode) style() *styleDefXML {
	var id string
	if n.p.Properties.Style != nil {
		id = n.p.Properties.Style.Val
	}
	return n.styles.Resolve(id, styleTypeParagraph)
}

func (n *paragraphNode) StyleName() (string, bool) {
	def := n.style()
	if def == nil {
		return "", false
	}
	return styleName(def), true
}

func (n *paragraphNode) StyleFont() extract.Font {
	return styleFont(n.style())
}

func (n *paragraphNode) Alignment() (string, bool) {
	jc := n.p.Properties.Justification
	if jc == nil || jc.Val == "" {
		return "", false
	}
	return jc.Val, true
}

func (n *paragraphNode) SpaceBefore() (float64, bool) {
	if n.p.Properties.Spacing == nil {
		return 0, false
	}
	return parseTwips(n.p.Properties.Spacing.Before)
}

func (n *paragraphNode) SpaceAfter() (float64, bool) {
	if n.p.Properties.Spacing == nil {
		return 0, false
	}
	return parseTwips(n.p.Properties.Spacing.After)
}

func (n *paragraphNode) Numbering() (extract.Numbering, bool) {
	numPr := n.p.Properties.NumPr
	if numPr == nil {
		return extract.Numbering{}, false
	}

	var num extract.Numbering
	if numPr.NumID != nil {
		num.NumID = numPr.NumID.Val
	}
	if numPr.ILvl != nil {
		if lvl, err := strconv.Atoi(numPr.ILvl.Val); err == nil {
			num.Level = &lvl
		}
	}
	return num, true
}

func (n *paragraphNode) SectionBreak() bool {
	return n.p.Properties.SectPr != nil
}

// sectionNode exposes a <w:sectPr> as an extract.Section. Header and
// footer paragraphs are resolved when the package is opened.
type sectionNode struct {
	orientation model.Orientation
	header      []extract.Paragraph
	footer      []extract.Paragraph
}

func (s *sectionNode) Orientation() model.Orientation { return s.orientation }
func (s *sectionNode) Header() []extract.Paragraph    { return s.header }
func (s *sectionNode) Footer() []extract.Paragraph    { return s.footer }

// orientationOf returns the orientation declared by w:pgSz.
func orientationOf(sp *sectPrXML) model.Orientation {
	if sp.PageSize.Orient == "landscape" {
		return model.Landscape
	}
	return model.Portrait
}

// defaultRef returns the relationship ID of the default reference, if any.
func defaultRef(refs []partRefXML) (string, bool) {
	for _, ref := range refs {
		if ref.Type == "default" && ref.ID != "" {
			return ref.ID, true
		}
	}
	return "", false
}
