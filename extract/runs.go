package extract

import "github.com/tsawler/docmodel/model"

// MergeRuns fuses adjacent runs whose attributes are exactly equal,
// concatenating their text in order. It makes a single left-to-right pass,
// never modifies runs, and is idempotent.
func MergeRuns(runs []model.Run) []model.Run {
	if len(runs) == 0 {
		return nil
	}

	merged := make([]model.Run, 0, len(runs))
	merged = append(merged, runs[0])

	for _, run := range runs[1:] {
		last := &merged[len(merged)-1]
		if run.Attributes.Equal(last.Attributes) {
			last.Text += run.Text
			continue
		}
		merged = append(merged, run)
	}

	return merged
}

// Attributes builds the run attributes of a raw run. Style tags are
// appended as named style, then font name, then color.
func Attributes(r RawRun) model.RunAttributes {
	attr := model.RunAttributes{
		Bold:        r.Bold,
		Italic:      r.Italic,
		Underline:   r.Underline,
		Subscript:   r.Subscript,
		Superscript: r.Superscript,
		Styles:      []string{},
	}
	if r.FontSize != nil {
		size := *r.FontSize
		attr.FontSize = &size
	}

	if r.StyleName != "" {
		attr.Styles = append(attr.Styles, r.StyleName)
	}
	if r.FontName != "" {
		attr.Styles = append(attr.Styles, "font:"+r.FontName)
	}
	if r.Color != "" {
		attr.Styles = append(attr.Styles, "color:"+r.Color)
	}

	return attr
}

// ExtractRuns converts a paragraph's runs to merged model runs, dropping
// runs with no text.
func ExtractRuns(p Paragraph) []model.Run {
	raw := p.Runs()
	runs := make([]model.Run, 0, len(raw))
	for _, r := range raw {
		if r.Text == "" {
			continue
		}
		runs = append(runs, model.Run{Text: r.Text, Attributes: Attributes(r)})
	}
	return MergeRuns(runs)
}
