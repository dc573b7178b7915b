package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }

// sampleLayouts builds a small two-layout hierarchy with a table.
func sampleLayouts() []*Layout {
	first := NewLayout(Portrait, []Run{{Text: "Head"}}, []Run{})
	first.AddElement(&Paragraph{
		Style: &ParagraphStyle{Name: "Heading 1", Alignment: strPtr("CENTER"), Bold: True},
		Runs: []Run{
			{Text: "Hello ", Attributes: RunAttributes{Bold: True, Styles: []string{}}},
			{Text: "World", Attributes: RunAttributes{FontSize: floatPtr(12), Styles: []string{"font:Arial"}}},
		},
	})

	second := NewLayout(Landscape, []Run{}, []Run{{Text: "Foot"}})
	second.AddElement(&Table{Rows: [][]TableCell{
		{
			{ColSpan: 1, RowSpan: 2, Paragraphs: []Paragraph{{Runs: []Run{{Text: "A"}}}}},
			{ColSpan: 1, RowSpan: 1, Paragraphs: []Paragraph{{Runs: []Run{{Text: "B"}}}, {Runs: []Run{{Text: "C"}}}}},
		},
		{
			{ColSpan: 1, RowSpan: 1, Paragraphs: []Paragraph{}},
			{ColSpan: 1, RowSpan: 1, Paragraphs: []Paragraph{}},
		},
	}})
	second.AddElement(&Paragraph{IsList: true, ListLevel: 1, Runs: []Run{{Text: "item"}}})

	return []*Layout{first, second}
}

func TestTristate(t *testing.T) {
	tests := []struct {
		in   Tristate
		json string
	}{
		{Unset, "null"},
		{True, "true"},
		{False, "false"},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tt.in, err)
		}
		if string(data) != tt.json {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, data, tt.json)
		}
	}

	if TristateOf(true) != True || TristateOf(false) != False {
		t.Error("TristateOf mismatch")
	}
	if Unset.IsSet() || !False.IsSet() {
		t.Error("IsSet mismatch")
	}

	var got Tristate
	if err := json.Unmarshal([]byte(`"yes"`), &got); err == nil {
		t.Error("expected error for non-boolean tristate")
	}
}

func TestRunAttributesEqual(t *testing.T) {
	base := RunAttributes{Bold: True, FontSize: floatPtr(10), Styles: []string{"a", "b"}}

	tests := []struct {
		name  string
		other RunAttributes
		want  bool
	}{
		{"identical", RunAttributes{Bold: True, FontSize: floatPtr(10), Styles: []string{"a", "b"}}, true},
		{"unset vs false", RunAttributes{Bold: False, FontSize: floatPtr(10), Styles: []string{"a", "b"}}, false},
		{"size differs", RunAttributes{Bold: True, FontSize: floatPtr(11), Styles: []string{"a", "b"}}, false},
		{"size missing", RunAttributes{Bold: True, Styles: []string{"a", "b"}}, false},
		{"style order", RunAttributes{Bold: True, FontSize: floatPtr(10), Styles: []string{"b", "a"}}, false},
		{"style count", RunAttributes{Bold: True, FontSize: floatPtr(10), Styles: []string{"a"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	clone := base.Clone()
	clone.Styles[0] = "z"
	*clone.FontSize = 99
	if base.Styles[0] != "a" || *base.FontSize != 10 {
		t.Error("Clone shares memory with the original")
	}
}

func TestAssemble_IDs(t *testing.T) {
	raw := []byte("document bytes")
	doc := Assemble("in.docx", raw, sampleLayouts())

	if doc.UID != MakeUID(raw) {
		t.Errorf("UID = %s, want %s", doc.UID, MakeUID(raw))
	}
	if doc.Filename != "in.docx" {
		t.Errorf("Filename = %q", doc.Filename)
	}

	seen := make(map[string]bool)
	for _, id := range doc.ElementIDs() {
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if seen[doc.UID] {
		t.Error("element id collides with the document uid")
	}

	for _, l := range doc.Layouts {
		if l.ParentID != doc.UID {
			t.Errorf("layout parent = %s, want uid", l.ParentID)
		}
		for _, e := range l.Elements {
			switch v := e.(type) {
			case *Paragraph:
				if v.ParentID != l.ID {
					t.Errorf("paragraph parent = %s, want %s", v.ParentID, l.ID)
				}
			case *Table:
				if v.ParentID != l.ID {
					t.Errorf("table parent = %s, want %s", v.ParentID, l.ID)
				}
				for _, row := range v.Rows {
					for _, c := range row {
						for _, p := range c.Paragraphs {
							if p.ParentID != c.ID {
								t.Errorf("cell paragraph parent = %s, want %s", p.ParentID, c.ID)
							}
						}
					}
				}
			}
		}
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	raw := []byte("same bytes")
	a := Assemble("a", raw, sampleLayouts())
	b := Assemble("b", raw, sampleLayouts())
	if !reflect.DeepEqual(a.ElementIDs(), b.ElementIDs()) {
		t.Error("ids differ for identical input")
	}

	c := Assemble("a", []byte("other bytes"), sampleLayouts())
	if c.UID == a.UID {
		t.Error("different bytes produced the same uid")
	}
}

func TestDocumentWalk(t *testing.T) {
	doc := Assemble("x", []byte("x"), sampleLayouts())

	var paths []string
	err := doc.Walk(func(n Node) error {
		paths = append(paths, n.Path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{
		"L0", "L0/E0",
		"L1", "L1/E0",
		"L1/E0/R0", "L1/E0/R0/C0", "L1/E0/R0/C0/P0", "L1/E0/R0/C1", "L1/E0/R0/C1/P0", "L1/E0/R0/C1/P1",
		"L1/E0/R1", "L1/E0/R1/C0", "L1/E0/R1/C1",
		"L1/E1",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths =\n%v\nwant\n%v", paths, want)
	}

	// Cells point at their row node.
	rows := make(map[string]string)
	doc.Walk(func(n Node) error {
		if _, ok := n.Value.([]TableCell); ok {
			rows[n.Path] = n.ID
		}
		if c, ok := n.Value.(*TableCell); ok {
			rowPath := n.Path[:strings.LastIndex(n.Path, "/")]
			if c.ParentID != rows[rowPath] {
				t.Errorf("cell %s parent = %s, want row %s", n.Path, c.ParentID, rows[rowPath])
			}
		}
		return nil
	})
}

func TestDocumentJSON(t *testing.T) {
	doc := Assemble("in.docx", []byte("json"), sampleLayouts())

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"type":"paragraph"`, `"type":"table"`, `"orientation":"LANDSCAPE"`, `"font_size":null`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON missing %s", want)
		}
	}

	var decoded Document
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(decoded.ElementIDs(), doc.ElementIDs()) {
		t.Error("ids changed across a JSON round trip")
	}
	tbl := decoded.Layouts[1].Tables()[0]
	if tbl.GetCell(0, 0).RowSpan != 2 || tbl.GetCell(0, 1).Text() != "B\nC" {
		t.Errorf("decoded table = %+v", tbl)
	}
	p := decoded.Layouts[0].Paragraphs()[0]
	if p.Style == nil || *p.Style.Alignment != "CENTER" || p.Runs[0].Attributes.Bold != True || p.Runs[0].Attributes.Italic != Unset {
		t.Errorf("decoded paragraph = %+v", p)
	}

	if err := json.Unmarshal([]byte(`{"layouts":[{"elements":[{"type":"image"}]}]}`), &decoded); err == nil {
		t.Error("expected error for unknown element type")
	}
}

func TestTableHelpers(t *testing.T) {
	tbl := sampleLayouts()[1].Tables()[0]
	if tbl.RowCount() != 2 || tbl.ColCount() != 2 {
		t.Errorf("RowCount/ColCount = %d/%d", tbl.RowCount(), tbl.ColCount())
	}
	if tbl.GetCell(5, 0) != nil || tbl.GetCell(0, -1) != nil {
		t.Error("GetCell out of range should return nil")
	}
	if got := tbl.Text(); got != "A\tB\nC\n\t\n" {
		t.Errorf("Text() = %q", got)
	}
}
