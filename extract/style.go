package extract

import (
	"strings"

	"github.com/tsawler/docmodel/model"
)

// alignmentNames maps justification values to Word's alignment names.
var alignmentNames = map[string]string{
	"left":           "LEFT",
	"start":          "LEFT",
	"center":         "CENTER",
	"right":          "RIGHT",
	"end":            "RIGHT",
	"both":           "JUSTIFY",
	"distribute":     "DISTRIBUTE",
	"mediumKashida":  "JUSTIFY_MED",
	"highKashida":    "JUSTIFY_HI",
	"lowKashida":     "JUSTIFY_LOW",
	"thaiDistribute": "THAI_JUSTIFY",
}

// AlignmentName returns the alignment name for a justification value.
// Unknown values are upper-cased.
func AlignmentName(val string) string {
	if name, ok := alignmentNames[val]; ok {
		return name
	}
	return strings.ToUpper(val)
}

// spacing returns the spacing in points, or nil when it is unset or zero.
func spacing(pt float64, ok bool) *float64 {
	if !ok || pt == 0 {
		return nil
	}
	return &pt
}

// ResolveParagraphStyle returns the paragraph's style model, or nil when
// the paragraph has no style. Alignment and spacing are reported only when
// set directly on the paragraph, and zero spacing counts as unset; bold, italic and size come from the
// style's own font, not from run formatting.
func ResolveParagraphStyle(p Paragraph) *model.ParagraphStyle {
	name, ok := p.StyleName()
	if !ok {
		return nil
	}

	font := p.StyleFont()
	style := &model.ParagraphStyle{
		Name:   name,
		Bold:   font.Bold,
		Italic: font.Italic,
	}
	if font.Size != nil {
		size := *font.Size
		style.FontSize = &size
	}

	if val, ok := p.Alignment(); ok {
		align := AlignmentName(val)
		style.Alignment = &align
	}
	style.SpaceBefore = spacing(p.SpaceBefore())
	style.SpaceAfter = spacing(p.SpaceAfter())

	return style
}
