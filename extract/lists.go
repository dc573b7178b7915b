package extract

// DetectList reports whether p is a list item and its indent level.
// A paragraph is a list item iff it has numbering properties; the level
// defaults to 0. The list type is not resolved and is always nil.
func DetectList(p Paragraph) (isList bool, listType *string, level int) {
	num, ok := p.Numbering()
	if !ok {
		return false, nil, 0
	}
	if num.Level != nil && *num.Level > 0 {
		level = *num.Level
	}
	return true, nil, level
}
