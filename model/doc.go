// Package model provides the normalized content model produced by the
// document readers.
//
// A [Document] is built once per parse and is not modified after
// [Assemble] returns it. Its structure is strictly hierarchical:
//
//	Document
//	└── Layout (one per section, in reading order)
//	    ├── Header / Footer (flat run lists)
//	    └── Elements
//	        ├── Paragraph (merged runs, style, list info)
//	        └── Table
//	            └── rows → TableCell → Paragraph
//
// # Attributes
//
// Optional attributes are never defaulted. Tri-state flags use [Tristate]
// and numeric values such as font sizes are pointers, so an absent value
// stays distinguishable from false or zero.
//
// # Identifiers
//
// [MakeUID] derives the document uid from the raw input bytes, and
// [Assemble] derives every element id from that uid and the element's
// position. Parsing identical bytes therefore reproduces identical ids.
//
// # Serialization
//
// All types marshal to the JSON shape:
//
//	{"filename": ..., "uid": ..., "layouts": [
//	    {"orientation": "PORTRAIT", "header": [...], "footer": [...], "elements": [...]}
//	]}
//
// Elements carry a "type" discriminator ("paragraph" or "table") so that
// a Document can be decoded again with encoding/json.
package model
