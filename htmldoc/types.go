package htmldoc

// NavigationExclusionMode controls which navigation and boilerplate
// elements are left out of the body.
type NavigationExclusionMode int

const (
	// NavigationExclusionNone includes all content without filtering.
	NavigationExclusionNone NavigationExclusionMode = iota

	// NavigationExclusionExplicit skips only explicit semantic HTML5 elements:
	// <nav>, <aside>, and ARIA roles (role="navigation", role="complementary").
	NavigationExclusionExplicit

	// NavigationExclusionStandard adds common class/id pattern matching
	// (nav, navbar, menu, sidebar, breadcrumb and similar).
	NavigationExclusionStandard

	// NavigationExclusionAggressive adds link-density heuristics to standard
	// detection. Containers whose text is mostly links are excluded.
	NavigationExclusionAggressive
)

func (m NavigationExclusionMode) String() string {
	switch m {
	case NavigationExclusionNone:
		return "none"
	case NavigationExclusionExplicit:
		return "explicit"
	case NavigationExclusionStandard:
		return "standard"
	case NavigationExclusionAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// Options configures HTML parsing.
type Options struct {
	// Navigation selects how navigation elements are filtered from the body.
	Navigation NavigationExclusionMode
}

// DefaultOptions returns the options used by Parse and NewReader.
func DefaultOptions() Options {
	return Options{Navigation: NavigationExclusionExplicit}
}

// Style names assigned to HTML blocks.
const (
	styleNormal        = "Normal"
	styleListParagraph = "List Paragraph"
)

// inlineFormat is the formatting in effect while collecting runs.
type inlineFormat struct {
	bold        bool
	italic      bool
	underline   bool
	subscript   bool
	superscript bool
}

// apply returns f updated for an inline element.
func (f inlineFormat) apply(tag string) inlineFormat {
	switch tag {
	case "b", "strong":
		f.bold = true
	case "i", "em", "cite", "var", "dfn":
		f.italic = true
	case "u", "ins":
		f.underline = true
	case "sub":
		f.subscript = true
		f.superscript = false
	case "sup":
		f.superscript = true
		f.subscript = false
	}
	return f
}
