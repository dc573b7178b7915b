package epubdoc

import (
	"encoding/xml"
	"errors"
	"path"
)

// OPF-related errors.
var (
	ErrNoOPF      = errors.New("epub: missing package document (OPF)")
	ErrInvalidOPF = errors.New("epub: invalid package document")
	ErrEmptySpine = errors.New("epub: no content in spine")
)

// opfPackage represents the OPF package document.
type opfPackage struct {
	XMLName  xml.Name     `xml:"package"`
	Version  string       `xml:"version,attr"`
	Items    []opfItem    `xml:"manifest>item"`
	ItemRefs []opfItemRef `xml:"spine>itemref"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// parseOPF reads the package document and returns it with the directory
// its hrefs are relative to.
func parseOPF(a *archive, opfPath string) (*Package, string, error) {
	data, err := a.read(opfPath)
	if errors.Is(err, ErrMissingContent) {
		return nil, "", ErrNoOPF
	}
	if err != nil {
		return nil, "", err
	}

	var opf opfPackage
	if err := xml.Unmarshal(data, &opf); err != nil {
		return nil, "", ErrInvalidOPF
	}

	pkg := &Package{
		Version:  opf.Version,
		Manifest: make(map[string]ManifestItem, len(opf.Items)),
		Spine:    make([]SpineItem, 0, len(opf.ItemRefs)),
	}
	for _, item := range opf.Items {
		pkg.Manifest[item.ID] = ManifestItem{ID: item.ID, Href: item.Href, MediaType: item.MediaType}
	}
	for _, ref := range opf.ItemRefs {
		pkg.Spine = append(pkg.Spine, SpineItem{IDRef: ref.IDRef, Linear: ref.Linear != "no"})
	}
	if len(pkg.Spine) == 0 {
		return nil, "", ErrEmptySpine
	}

	baseDir := path.Dir(opfPath)
	if baseDir == "." {
		baseDir = ""
	}
	return pkg, baseDir, nil
}
