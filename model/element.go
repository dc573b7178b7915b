package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tristate is a formatting flag that may be explicitly on, explicitly off,
// or not set at all.
type Tristate int8

const (
	Unset Tristate = iota
	False
	True
)

// TristateOf converts a bool to an explicit Tristate.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// IsSet reports whether the flag carries an explicit value.
func (t Tristate) IsSet() bool { return t == True || t == False }

// MarshalJSON encodes Unset as null.
func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, true and false.
func (t *Tristate) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*t = Unset
	case "true":
		*t = True
	case "false":
		*t = False
	default:
		return fmt.Errorf("invalid tristate value %s", data)
	}
	return nil
}

// RunAttributes is the formatting of a run. Equality is exact, including
// the order of Styles, and decides whether two adjacent runs merge.
// Values are treated as immutable once built.
type RunAttributes struct {
	Bold        Tristate `json:"bold"`
	Italic      Tristate `json:"italic"`
	Underline   Tristate `json:"underline"`
	Subscript   Tristate `json:"subscript"`
	Superscript Tristate `json:"superscript"`
	FontSize    *float64 `json:"font_size"` // points
	Styles      []string `json:"styles"`    // named style, "font:<name>", "color:<RRGGBB>"
}

// Equal reports whether a and b are identical field by field.
func (a RunAttributes) Equal(b RunAttributes) bool {
	if a.Bold != b.Bold || a.Italic != b.Italic || a.Underline != b.Underline ||
		a.Subscript != b.Subscript || a.Superscript != b.Superscript {
		return false
	}
	if !equalFloatPtr(a.FontSize, b.FontSize) {
		return false
	}
	if len(a.Styles) != len(b.Styles) {
		return false
	}
	for i := range a.Styles {
		if a.Styles[i] != b.Styles[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no memory with a.
func (a RunAttributes) Clone() RunAttributes {
	c := a
	if a.FontSize != nil {
		v := *a.FontSize
		c.FontSize = &v
	}
	if a.Styles != nil {
		c.Styles = append([]string(nil), a.Styles...)
	}
	return c
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Run is a span of text with one attribute set.
type Run struct {
	Text       string        `json:"text"`
	Attributes RunAttributes `json:"attributes"`
}

// ParagraphStyle describes the named style of a paragraph. Alignment and
// spacing come from the paragraph's direct formatting only; Bold, Italic
// and FontSize come from the style's own font.
type ParagraphStyle struct {
	Name        string   `json:"name"`
	Alignment   *string  `json:"alignment"`
	SpaceBefore *float64 `json:"space_before"` // points
	SpaceAfter  *float64 `json:"space_after"`  // points
	Bold        Tristate `json:"bold"`
	Italic      Tristate `json:"italic"`
	FontSize    *float64 `json:"font_size"` // points
}

// ElementType identifies the concrete type of a layout element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeParagraph
	ElementTypeTable
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "paragraph"
	case ElementTypeTable:
		return "table"
	default:
		return "unknown"
	}
}

// Element is a block in a layout's body: a *Paragraph or a *Table.
type Element interface {
	Type() ElementType
	ElementID() string
}

// Paragraph is a body or cell paragraph with merged runs.
type Paragraph struct {
	ID        string          `json:"id,omitempty"`
	ParentID  string          `json:"parent_id,omitempty"`
	Style     *ParagraphStyle `json:"style"`
	Runs      []Run           `json:"runs"`
	IsList    bool            `json:"is_list"`
	ListType  *string         `json:"list_type"` // never resolved
	ListLevel int             `json:"list_level"`
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }
func (p *Paragraph) ElementID() string { return p.ID }

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// MarshalJSON adds the "paragraph" type discriminator.
func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type plain Paragraph
	return json.Marshal(struct {
		Type string `json:"type"`
		*plain
	}{ElementTypeParagraph.String(), (*plain)(p)})
}
