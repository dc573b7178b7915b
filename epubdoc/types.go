// Package epubdoc provides EPUB document parsing.
//
// Each chapter of the spine is read with the htmldoc object model and
// becomes one section, so an EPUB yields one layout per chapter.
package epubdoc

// Package is the part of the OPF package document used for extraction.
type Package struct {
	Version  string
	Manifest map[string]ManifestItem // keyed by ID
	Spine    []SpineItem
}

// ManifestItem represents a file in the EPUB.
type ManifestItem struct {
	ID        string
	Href      string
	MediaType string
}

// SpineItem represents a content document in reading order.
type SpineItem struct {
	IDRef  string
	Linear bool // false for auxiliary content such as pop-up notes
}

// Chapter is one spine item that resolved to a content file.
type Chapter struct {
	ID    string
	Index int    // position in the spine
	Href  string // archive path
}
