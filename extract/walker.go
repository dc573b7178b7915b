package extract

import (
	"fmt"

	"github.com/tsawler/docmodel/model"
)

// ExtractParagraph builds the paragraph model: style, merged runs and
// list information.
func ExtractParagraph(p Paragraph) *model.Paragraph {
	isList, listType, level := DetectList(p)
	return &model.Paragraph{
		Style:     ResolveParagraphStyle(p),
		Runs:      ExtractRuns(p),
		IsList:    isList,
		ListType:  listType,
		ListLevel: level,
	}
}

// HeaderFooterRuns flattens the runs of header or footer paragraphs into a
// single list. Runs are merged within each paragraph but never across
// paragraph boundaries.
func HeaderFooterRuns(paragraphs []Paragraph) []model.Run {
	runs := make([]model.Run, 0)
	for _, p := range paragraphs {
		runs = append(runs, ExtractRuns(p)...)
	}
	return runs
}

// newLayout opens a layout for a section. A nil section yields a portrait
// layout with no header or footer.
func newLayout(sec Section) *model.Layout {
	if sec == nil {
		return model.NewLayout(model.Portrait, []model.Run{}, []model.Run{})
	}
	return model.NewLayout(sec.Orientation(), HeaderFooterRuns(sec.Header()), HeaderFooterRuns(sec.Footer()))
}

// sectionTracker holds the open layout while the body is walked.
type sectionTracker struct {
	sections []Section
	index    int
	layouts  []*model.Layout
	current  *model.Layout
}

func newSectionTracker(sections []Section) *sectionTracker {
	st := &sectionTracker{sections: sections}
	st.open()
	return st
}

// open starts the layout of the section at the current index.
func (st *sectionTracker) open() {
	var sec Section
	if st.index < len(st.sections) {
		sec = st.sections[st.index]
	}
	st.current = newLayout(sec)
	st.layouts = append(st.layouts, st.current)
}

// next closes the current layout and opens the following section's.
func (st *sectionTracker) next() {
	st.index++
	st.open()
}

// Walk linearizes the body of src into layouts, one per section, in
// reading order. The first section's layout is always present. A paragraph
// carrying a section break contributes no element; it closes the current
// layout and opens the next section's. Paragraphs without visible text are
// skipped. Tables always go to the open layout.
func Walk(src Source) ([]*model.Layout, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source")
	}

	st := newSectionTracker(src.Sections())

	for i, block := range src.Blocks() {
		switch {
		case block.Paragraph != nil:
			p := block.Paragraph
			if p.SectionBreak() {
				st.next()
				continue
			}
			if hasVisibleText(p) {
				st.current.AddElement(ExtractParagraph(p))
			}
		case block.Table != nil:
			st.current.AddElement(ExtractTable(block.Table))
		default:
			return nil, fmt.Errorf("block %d: neither paragraph nor table", i)
		}
	}

	return st.layouts, nil
}
