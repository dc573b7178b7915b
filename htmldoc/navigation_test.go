package htmldoc

import (
	"strings"
	"testing"
)

func bodyTexts(t *testing.T, src string, mode NavigationExclusionMode) string {
	t.Helper()
	doc, err := NewReaderWithOptions(Options{Navigation: mode}).Read([]byte(src), "nav.html")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	var texts []string
	for _, p := range doc.Layouts[0].Paragraphs() {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "|")
}

func TestNavigationExclusion(t *testing.T) {
	page := `<body>
<nav><a href="/">Home</a></nav>
<div role="navigation">Jump</div>
<div class="main-menu">Menu</div>
<div id="links"><a href="1">one</a> <a href="2">two</a> <a href="3">three</a> <a href="4">four</a></div>
<p>Content</p>
<aside>Related</aside>
</body>`

	tests := []struct {
		mode NavigationExclusionMode
		want string
	}{
		{NavigationExclusionNone, "Home|Jump|Menu|one two three four|Content|Related"},
		{NavigationExclusionExplicit, "Menu|one two three four|Content"},
		{NavigationExclusionStandard, "one two three four|Content"},
		{NavigationExclusionAggressive, "Content"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := bodyTexts(t, page, tt.mode); got != tt.want {
				t.Errorf("paragraphs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNavigationExclusion_TopLevelOnly(t *testing.T) {
	tests := []struct {
		name string
		src  string
		mode NavigationExclusionMode
		want string
	}{
		{
			name: "nested pattern matches are kept",
			src: `<p>Intro</p><article><div class="menu-item">Nested content</div>` +
				`<div class="sidebar-note">Deep</div></article>` +
				`<section><p class="nav-hint">Also deep</p></section>`,
			mode: NavigationExclusionStandard,
			want: "Intro|Nested content|Deep|Also deep",
		},
		{
			name: "nested link lists are kept",
			src: `<p>Intro</p><article><ul><li><a href="1">one</a></li><li><a href="2">two</a></li>` +
				`<li><a href="3">three</a></li><li><a href="4">four</a></li></ul></article>`,
			mode: NavigationExclusionAggressive,
			want: "Intro|one|two|three|four",
		},
		{
			name: "children of a single wrapper are judged",
			src:  `<div id="page"><div class="sidebar">Side</div><p>Body</p></div>`,
			mode: NavigationExclusionStandard,
			want: "Body",
		},
		{
			name: "explicit elements are dropped at any depth",
			src:  `<p>Intro</p><article><nav>Skip</nav><p>Kept</p></article>`,
			mode: NavigationExclusionExplicit,
			want: "Intro|Kept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bodyTexts(t, tt.src, tt.mode); got != tt.want {
				t.Errorf("paragraphs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	if DefaultOptions().Navigation != NavigationExclusionExplicit {
		t.Errorf("default mode = %v, want explicit", DefaultOptions().Navigation)
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := map[string]string{
		"a  b":       "a b",
		"\n\ta\r\nb ": " a b ",
		"":           "",
		"plain":      "plain",
	}
	for in, want := range tests {
		if got := collapseSpace(in); got != want {
			t.Errorf("collapseSpace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCSSProperty(t *testing.T) {
	tests := []struct {
		style, want string
	}{
		{"text-align: Center", "center"},
		{"color:red;TEXT-ALIGN:right;", "right"},
		{"color: red", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cssProperty(tt.style, "text-align"); got != tt.want {
			t.Errorf("cssProperty(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}
