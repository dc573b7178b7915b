package extract

import (
	"testing"

	"github.com/tsawler/docmodel/model"
)

func TestResolveParagraphStyle(t *testing.T) {
	t.Run("no style", func(t *testing.T) {
		if got := ResolveParagraphStyle(para("x")); got != nil {
			t.Errorf("ResolveParagraphStyle() = %+v, want nil", got)
		}
	})

	t.Run("named style with direct formatting", func(t *testing.T) {
		p := para("x")
		p.style, p.hasStyle = "Heading 1", true
		p.font = Font{Bold: model.True, Size: floatPtr(16)}
		p.align = "center"
		p.before = floatPtr(0)
		p.after = floatPtr(6)

		got := ResolveParagraphStyle(p)
		if got.Name != "Heading 1" {
			t.Errorf("Name = %q", got.Name)
		}
		if got.Alignment == nil || *got.Alignment != "CENTER" {
			t.Errorf("Alignment = %v, want CENTER", got.Alignment)
		}
		if got.SpaceBefore != nil {
			t.Errorf("SpaceBefore = %v, want nil for zero spacing", *got.SpaceBefore)
		}
		if got.SpaceAfter == nil || *got.SpaceAfter != 6 {
			t.Errorf("SpaceAfter = %v, want 6", got.SpaceAfter)
		}
		if got.Bold != model.True || got.Italic != model.Unset {
			t.Errorf("Bold/Italic = %v/%v", got.Bold, got.Italic)
		}
		if got.FontSize == nil || *got.FontSize != 16 {
			t.Errorf("FontSize = %v, want 16", got.FontSize)
		}
	})
}

func TestAlignmentName(t *testing.T) {
	tests := map[string]string{
		"left":          "LEFT",
		"start":         "LEFT",
		"both":          "JUSTIFY",
		"end":           "RIGHT",
		"mediumKashida": "JUSTIFY_MED",
		"numTab":        "NUMTAB",
	}
	for in, want := range tests {
		if got := AlignmentName(in); got != want {
			t.Errorf("AlignmentName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDetectList(t *testing.T) {
	tests := []struct {
		name      string
		numbering *Numbering
		isList    bool
		level     int
	}{
		{"no numbering", nil, false, 0},
		{"numbering without level", &Numbering{NumID: "1"}, true, 0},
		{"nested", &Numbering{NumID: "1", Level: intPtr(3)}, true, 3},
		{"negative level", &Numbering{NumID: "1", Level: intPtr(-1)}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := para("item")
			p.numbering = tt.numbering
			isList, listType, level := DetectList(p)
			if isList != tt.isList || level != tt.level {
				t.Errorf("DetectList() = %v, %d; want %v, %d", isList, level, tt.isList, tt.level)
			}
			if listType != nil {
				t.Errorf("listType = %q, want nil", *listType)
			}
		})
	}
}

func TestExtractTable(t *testing.T) {
	tall := &fakeCell{span: 1, merge: VMergeRestart, extent: 2, paras: []Paragraph{para("tall")}}
	wide := &fakeCell{span: 2, extent: 1, paras: []Paragraph{para("wide")}}
	cont := &fakeCell{span: 1, merge: VMergeContinue, extent: 1, paras: []Paragraph{para("")}}
	lone := &fakeCell{span: 0, merge: VMergeRestart, extent: 1, paras: []Paragraph{para("  "), para("z")}}

	tbl := ExtractTable(&fakeTable{rows: [][]Cell{
		{tall, wide},
		{cont, cell("b"), lone},
	}})

	tests := []struct {
		row, col         int
		colspan, rowspan int
		paragraphs       int
	}{
		{0, 0, 1, 2, 1},
		{0, 1, 2, 1, 1},
		{1, 0, 1, 1, 0},
		{1, 1, 1, 1, 1},
		{1, 2, 1, 1, 1},
	}
	for _, tt := range tests {
		c := tbl.GetCell(tt.row, tt.col)
		if c.ColSpan != tt.colspan || c.RowSpan != tt.rowspan {
			t.Errorf("cell (%d,%d) spans = %d/%d, want %d/%d", tt.row, tt.col, c.ColSpan, c.RowSpan, tt.colspan, tt.rowspan)
		}
		if len(c.Paragraphs) != tt.paragraphs {
			t.Errorf("cell (%d,%d) has %d paragraphs, want %d", tt.row, tt.col, len(c.Paragraphs), tt.paragraphs)
		}
		if c.Paragraphs == nil {
			t.Errorf("cell (%d,%d) paragraphs must be non-nil", tt.row, tt.col)
		}
	}
}

func TestWalk_SingleParagraph(t *testing.T) {
	p := &fakePara{runs: []RawRun{
		{Text: "Hello ", Bold: model.True},
		{Text: "World"},
	}}
	layouts, err := Walk(&fakeSource{
		sections: []Section{&fakeSection{orientation: model.Portrait}},
		blocks:   []Block{{Paragraph: p}},
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(layouts) != 1 || len(layouts[0].Elements) != 1 {
		t.Fatalf("got %d layouts", len(layouts))
	}
	got := layouts[0].Paragraphs()[0]
	if len(got.Runs) != 2 || got.Runs[0].Attributes.Bold != model.True || got.Runs[1].Attributes.Bold != model.Unset {
		t.Errorf("runs = %+v", got.Runs)
	}
	if got.IsList || got.ListLevel != 0 || got.ListType != nil {
		t.Errorf("list fields = %v/%d/%v", got.IsList, got.ListLevel, got.ListType)
	}
}

func TestWalk_SectionBreak(t *testing.T) {
	header := para("Head")
	src := &fakeSource{
		sections: []Section{
			&fakeSection{orientation: model.Portrait, header: []Paragraph{header}},
			&fakeSection{orientation: model.Landscape},
		},
		blocks: []Block{
			{Paragraph: para("first")},
			{Paragraph: &fakePara{runs: []RawRun{{Text: "hidden"}}, sectBreak: true}},
			{Paragraph: para("second")},
			{Table: &fakeTable{rows: [][]Cell{{cell("c")}}}},
		},
	}

	layouts, err := Walk(src)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("got %d layouts, want 2", len(layouts))
	}
	if layouts[0].Orientation != model.Portrait || layouts[1].Orientation != model.Landscape {
		t.Errorf("orientations = %v, %v", layouts[0].Orientation, layouts[1].Orientation)
	}
	if n := len(layouts[0].Elements); n != 1 {
		t.Errorf("first layout has %d elements, want 1", n)
	}
	if n := len(layouts[1].Elements); n != 2 {
		t.Errorf("second layout has %d elements, want 2", n)
	}
	if len(layouts[0].Header) != 1 || layouts[0].Header[0].Text != "Head" {
		t.Errorf("Header = %+v", layouts[0].Header)
	}
	for _, l := range layouts {
		for _, p := range l.Paragraphs() {
			if p.Text() == "hidden" {
				t.Error("break paragraph must not become an element")
			}
		}
	}
}

func TestWalk_LayoutCount(t *testing.T) {
	brk := func() Block { return Block{Paragraph: &fakePara{sectBreak: true}} }

	tests := []struct {
		name     string
		sections int
		breaks   int
		want     int
	}{
		{"no sections", 0, 0, 1},
		{"one section", 1, 0, 1},
		{"breaks match sections", 3, 2, 3},
		{"more breaks than sections", 1, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			for i := 0; i < tt.sections; i++ {
				src.sections = append(src.sections, &fakeSection{orientation: model.Landscape})
			}
			for i := 0; i < tt.breaks; i++ {
				src.blocks = append(src.blocks, brk())
			}

			layouts, err := Walk(src)
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if len(layouts) != tt.want {
				t.Fatalf("got %d layouts, want %d", len(layouts), tt.want)
			}
			// Layouts past the declared sections use the default page setup.
			for i := tt.sections; i < len(layouts); i++ {
				l := layouts[i]
				if l.Orientation != model.Portrait || len(l.Header) != 0 || l.Header == nil {
					t.Errorf("layout %d = %+v, want empty portrait layout", i, l)
				}
			}
		})
	}
}

func TestWalk_Errors(t *testing.T) {
	if _, err := Walk(nil); err == nil {
		t.Error("Walk(nil) should fail")
	}
	if _, err := Walk(&fakeSource{blocks: []Block{{}}}); err == nil {
		t.Error("Walk() should fail for an empty block")
	}
}

func TestHeaderFooterRuns(t *testing.T) {
	got := HeaderFooterRuns([]Paragraph{para("a", "b"), para("c")})
	if len(got) != 2 || got[0].Text != "ab" || got[1].Text != "c" {
		t.Errorf("HeaderFooterRuns() = %+v", got)
	}
	if empty := HeaderFooterRuns(nil); empty == nil || len(empty) != 0 {
		t.Errorf("HeaderFooterRuns(nil) = %#v, want empty slice", empty)
	}
}
