package odt

import (
	"strconv"
	"strings"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// Style families as they appear in style:family.
const (
	familyParagraph = "paragraph"
	familyText      = "text"
)

// defaultParagraphStyle is the named style LibreOffice and most other
// writers apply to paragraphs without a style.
const defaultParagraphStyle = "Standard"

// StyleResolver looks up styles by family and name. Automatic styles carry
// a paragraph's or span's direct formatting; their parent is the named
// style the user applied.
type StyleResolver struct {
	named map[string]*styleDefXML
	auto  map[string]*styleDefXML
}

// NewStyleResolver creates a resolver over the named styles of styles.xml
// and the automatic styles of one part. Either may be nil.
func NewStyleResolver(named *namedStylesXML, auto *autoStylesXML) *StyleResolver {
	sr := &StyleResolver{
		named: make(map[string]*styleDefXML),
		auto:  make(map[string]*styleDefXML),
	}

	if named != nil {
		for i := range named.Styles {
			style := &named.Styles[i]
			sr.named[styleKey(style.Family, style.Name)] = style
		}
	}
	if auto != nil {
		for i := range auto.Styles {
			style := &auto.Styles[i]
			sr.auto[styleKey(style.Family, style.Name)] = style
		}
	}

	return sr
}

func styleKey(family, name string) string {
	return family + "/" + name
}

// resolve splits a style reference into the named style in effect and the
// automatic style holding direct formatting. Either result may be nil.
func (sr *StyleResolver) resolve(family, name string) (named, direct *styleDefXML) {
	if def, ok := sr.auto[styleKey(family, name)]; ok {
		direct = def
		name = def.ParentStyleName
	}
	return sr.named[styleKey(family, name)], direct
}

// paragraphStyle resolves a paragraph's style. A paragraph without a named
// style uses the default paragraph style, if the document defines one.
func (sr *StyleResolver) paragraphStyle(name string) (named, direct *styleDefXML) {
	named, direct = sr.resolve(familyParagraph, name)
	if named == nil {
		named = sr.named[styleKey(familyParagraph, defaultParagraphStyle)]
	}
	return named, direct
}

// masterPage returns the master page a paragraph style starts, if any.
func (sr *StyleResolver) masterPage(name string) string {
	if name == "" {
		return ""
	}
	named, direct := sr.resolve(familyParagraph, name)
	if direct != nil && direct.MasterPageName != "" {
		return direct.MasterPageName
	}
	if named != nil {
		return named.MasterPageName
	}
	return ""
}

// resolveSpan converts a span to its raw extraction form. Formatting comes
// from the span's automatic style; the named text style contributes only
// its name.
func (sr *StyleResolver) resolveSpan(s *spanXML) extract.RawRun {
	raw := extract.RawRun{Text: s.Text}
	if s.StyleName == "" {
		return raw
	}

	named, direct := sr.resolve(familyText, s.StyleName)
	if named != nil {
		raw.StyleName = displayName(named)
	}
	if direct == nil || direct.TextProps == nil {
		return raw
	}

	tp := direct.TextProps
	raw.Bold = fontWeight(tp.FontWeight)
	raw.Italic = fontStyle(tp.FontStyle)
	raw.Underline = underlineStyle(tp.TextUnderline)
	raw.Subscript, raw.Superscript = textPosition(tp.TextPosition)
	raw.FontSize = fontSize(tp.FontSize)
	raw.FontName = fontName(tp)
	raw.Color = rgbColor(tp.Color)
	return raw
}

// styleFont returns the font attributes defined directly on a style.
func styleFont(def *styleDefXML) extract.Font {
	if def == nil || def.TextProps == nil {
		return extract.Font{}
	}
	return extract.Font{
		Bold:   fontWeight(def.TextProps.FontWeight),
		Italic: fontStyle(def.TextProps.FontStyle),
		Size:   fontSize(def.TextProps.FontSize),
	}
}

// displayName returns the UI name of a style.
func displayName(def *styleDefXML) string {
	if def.DisplayName != "" {
		return def.DisplayName
	}
	return decodeStyleName(def.Name)
}

// decodeStyleName reverses the _XX_ hex escaping ODF writers apply to
// characters that are not allowed in style names, e.g. "Heading_20_1".
func decodeStyleName(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}

	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] == '_' {
			if end := strings.IndexByte(name[i+1:], '_'); end == 2 || end == 4 {
				if code, err := strconv.ParseUint(name[i+1:i+1+end], 16, 32); err == nil {
					sb.WriteRune(rune(code))
					i += end + 1
					continue
				}
			}
		}
		sb.WriteByte(name[i])
	}
	return sb.String()
}

// fontWeight converts fo:font-weight; weights of 600 and above are bold.
func fontWeight(v string) model.Tristate {
	switch v {
	case "":
		return model.Unset
	case "bold":
		return model.True
	case "normal":
		return model.False
	}
	if n, err := strconv.Atoi(v); err == nil {
		return model.TristateOf(n >= 600)
	}
	return model.Unset
}

func fontStyle(v string) model.Tristate {
	switch v {
	case "italic", "oblique":
		return model.True
	case "normal":
		return model.False
	}
	return model.Unset
}

// underlineStyle converts style:text-underline-style; "none" is off, any
// other style is on.
func underlineStyle(v string) model.Tristate {
	switch v {
	case "":
		return model.Unset
	case "none":
		return model.False
	}
	return model.True
}

// textPosition converts style:text-position. The first value is "sub",
// "super" or a signed percentage of the font height.
func textPosition(v string) (sub, super model.Tristate) {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return model.Unset, model.Unset
	}

	switch pos := fields[0]; pos {
	case "sub":
		return model.True, model.False
	case "super":
		return model.False, model.True
	default:
		pct, err := strconv.ParseFloat(strings.TrimSuffix(pos, "%"), 64)
		if err != nil {
			return model.Unset, model.Unset
		}
		return model.TristateOf(pct < 0), model.TristateOf(pct > 0)
	}
}

// fontSize parses an absolute fo:font-size. Percentages are relative to
// the parent style and are ignored.
func fontSize(v string) *float64 {
	if strings.HasSuffix(v, "%") {
		return nil
	}
	pt, ok := parseLength(v)
	if !ok || pt <= 0 {
		return nil
	}
	return &pt
}

// fontName returns the font declaration name, or the first family.
func fontName(tp *textPropsXML) string {
	if tp.FontName != "" {
		return tp.FontName
	}
	family, _, _ := strings.Cut(tp.FontFamily, ",")
	return strings.Trim(strings.TrimSpace(family), `'"`)
}

// rgbColor returns the upper-case RRGGBB value of a fo:color, or "" for
// malformed values.
func rgbColor(v string) string {
	hex, ok := strings.CutPrefix(v, "#")
	if !ok || len(hex) != 6 {
		return ""
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return ""
	}
	return strings.ToUpper(hex)
}

// parseLength parses an ODF length value to points.
// Supports: pt, in, cm, mm, pc, px
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	// Find where digits end and unit begins
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' {
			break
		}
	}
	if i == 0 {
		return 0, false
	}

	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false
	}

	// Convert to points
	switch strings.ToLower(s[i:]) {
	case "pt", "":
		return value, true
	case "in":
		return value * 72, true
	case "cm":
		return value * 72 / 2.54, true
	case "mm":
		return value * 72 / 25.4, true
	case "pc":
		return value * 12, true
	case "px":
		return value * 0.75, true // 96 DPI
	default:
		return 0, false
	}
}
