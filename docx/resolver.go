package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// Style types as they appear in w:style/@w:type.
const (
	styleTypeParagraph = "paragraph"
	styleTypeCharacter = "character"
)

// builtinStyleNames maps the lower-case names Word stores for some
// built-in styles to the names shown in its UI.
var builtinStyleNames = map[string]string{
	"caption":   "Caption",
	"footer":    "Footer",
	"header":    "Header",
	"heading 1": "Heading 1",
	"heading 2": "Heading 2",
	"heading 3": "Heading 3",
	"heading 4": "Heading 4",
	"heading 5": "Heading 5",
	"heading 6": "Heading 6",
	"heading 7": "Heading 7",
	"heading 8": "Heading 8",
	"heading 9": "Heading 9",
}

// StyleResolver looks up paragraph and character styles by ID. Styles are
// read as defined; basedOn chains are not followed.
type StyleResolver struct {
	styles   map[string]*styleDefXML
	defaults map[string]*styleDefXML // style type -> default style
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		defaults: make(map[string]*styleDefXML),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		if _, dup := sr.styles[style.StyleID]; !dup {
			sr.styles[style.StyleID] = style
		}
		// The last default of a type wins.
		if isOn(style.Default) {
			sr.defaults[styleType(style)] = style
		}
	}

	return sr
}

// styleType returns the style's type; an omitted type means paragraph.
func styleType(s *styleDefXML) string {
	if s.Type == "" {
		return styleTypeParagraph
	}
	return s.Type
}

// Resolve returns the style of the given type with the given ID. An empty
// ID, an unknown ID or a style of another type yields the default style of
// that type, which may be nil.
func (sr *StyleResolver) Resolve(styleID, typ string) *styleDefXML {
	if styleID != "" {
		if def, ok := sr.styles[styleID]; ok && styleType(def) == typ {
			return def
		}
	}
	return sr.defaults[typ]
}

// styleName returns the UI name of a style.
func styleName(def *styleDefXML) string {
	if def == nil || def.Name == nil {
		return ""
	}
	if ui, ok := builtinStyleNames[def.Name.Val]; ok {
		return ui
	}
	return def.Name.Val
}

// styleFont returns the font attributes defined directly on a style.
func styleFont(def *styleDefXML) extract.Font {
	if def == nil || def.RPr == nil {
		return extract.Font{}
	}
	return extract.Font{
		Bold:   onOff(def.RPr.Bold),
		Italic: onOff(def.RPr.Italic),
		Size:   halfPoints(def.RPr.FontSize),
	}
}

// resolveRun converts a run to its raw extraction form.
func (sr *StyleResolver) resolveRun(r *runXML) extract.RawRun {
	rp := r.Properties
	raw := extract.RawRun{
		Text:      r.Text,
		Bold:      onOff(rp.Bold),
		Italic:    onOff(rp.Italic),
		Underline: underline(rp.Underline),
		FontSize:  halfPoints(rp.FontSize),
		Color:     rgbColor(rp.Color),
	}

	if rp.VertAlign != nil {
		raw.Subscript = model.TristateOf(rp.VertAlign.Val == "subscript")
		raw.Superscript = model.TristateOf(rp.VertAlign.Val == "superscript")
	}
	if rp.Font != nil {
		raw.FontName = rp.Font.ASCII
	}

	var styleID string
	if rp.Style != nil {
		styleID = rp.Style.Val
	}
	raw.StyleName = styleName(sr.Resolve(styleID, styleTypeCharacter))

	return raw
}

// isOn reports whether an ST_OnOff value is true.
func isOn(val string) bool {
	switch strings.ToLower(val) {
	case "1", "true", "on":
		return true
	}
	return false
}

// onOff converts a toggle property to a Tristate. A present element with
// no value is on.
func onOff(v *valXML) model.Tristate {
	if v == nil {
		return model.Unset
	}
	switch strings.ToLower(v.Val) {
	case "0", "false", "off":
		return model.False
	}
	return model.True
}

// underline converts a w:u element; "none" is off, any other style is on.
func underline(v *valXML) model.Tristate {
	if v == nil {
		return model.Unset
	}
	if v.Val == "none" {
		return model.False
	}
	return model.True
}

// rgbColor returns the upper-case RRGGBB value of a w:color, or "" for
// auto and malformed values.
func rgbColor(v *valXML) string {
	if v == nil || len(v.Val) != 6 {
		return ""
	}
	if _, err := strconv.ParseUint(v.Val, 16, 32); err != nil {
		return ""
	}
	return strings.ToUpper(v.Val)
}

// halfPoints parses a size in half-points to points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func halfPoints(v *valXML) *float64 {
	if v == nil {
		return nil
	}
	val, err := strconv.ParseFloat(v.Val, 64)
	if err != nil || val <= 0 {
		return nil
	}
	pt := val / 2
	return &pt
}

// parseTwips parses a size in twips to points.
// 1 point = 20 twips.
func parseTwips(s string) (float64, bool) {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return val / 20, true
}
