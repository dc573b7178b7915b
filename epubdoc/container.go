package epubdoc

import (
	"encoding/xml"
	"errors"
)

// Container-related errors.
var (
	ErrNoContainer      = errors.New("epub: missing META-INF/container.xml")
	ErrInvalidContainer = errors.New("epub: invalid container.xml")
	ErrNoRootfile       = errors.New("epub: no rootfile found in container.xml")
)

const (
	partContainer = "META-INF/container.xml"
	mediaTypeOPF  = "application/oebps-package+xml"
)

// containerXML represents the structure of META-INF/container.xml.
type containerXML struct {
	XMLName   xml.Name      `xml:"container"`
	Rootfiles []rootfileXML `xml:"rootfiles>rootfile"`
}

type rootfileXML struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// parseContainer returns the path of the OPF package document. A rootfile
// typed as a package document wins; otherwise the first one is used.
func parseContainer(a *archive) (string, error) {
	data, err := a.read(partContainer)
	if errors.Is(err, ErrMissingContent) {
		return "", ErrNoContainer
	}
	if err != nil {
		return "", err
	}

	var c containerXML
	if err := xml.Unmarshal(data, &c); err != nil {
		return "", ErrInvalidContainer
	}

	for _, rf := range c.Rootfiles {
		if rf.FullPath != "" && (rf.MediaType == mediaTypeOPF || rf.MediaType == "") {
			return rf.FullPath, nil
		}
	}
	if len(c.Rootfiles) > 0 && c.Rootfiles[0].FullPath != "" {
		return c.Rootfiles[0].FullPath, nil
	}
	return "", ErrNoRootfile
}
