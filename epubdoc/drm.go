package epubdoc

import (
	"encoding/xml"
	"errors"
	"path"
	"strings"
)

// ErrDRMProtected is returned for EPUBs whose content is encrypted.
var ErrDRMProtected = errors.New("epub: DRM-protected content cannot be processed")

const (
	partRights     = "META-INF/rights.xml"
	partEncryption = "META-INF/encryption.xml"
)

// encryptionXML represents the structure of META-INF/encryption.xml.
type encryptionXML struct {
	XMLName       xml.Name           `xml:"encryption"`
	EncryptedData []encryptedDataXML `xml:"EncryptedData"`
}

type encryptedDataXML struct {
	Method struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"EncryptionMethod"`
	Reference struct {
		URI string `xml:"URI,attr"`
	} `xml:"CipherData>CipherReference"`
}

// checkForDRM rejects Adobe ADEPT packages and packages whose content
// documents are encrypted. Font obfuscation is allowed.
func checkForDRM(a *archive) error {
	if a.has(partRights) {
		return ErrDRMProtected
	}
	if !a.has(partEncryption) {
		return nil
	}

	data, err := a.read(partEncryption)
	if err != nil {
		return ErrDRMProtected
	}
	var enc encryptionXML
	if err := xml.Unmarshal(data, &enc); err != nil {
		return ErrDRMProtected
	}
	for _, ed := range enc.EncryptedData {
		if isFontObfuscation(ed.Method.Algorithm) {
			continue
		}
		if isContentFile(ed.Reference.URI) {
			return ErrDRMProtected
		}
	}
	return nil
}

// isFontObfuscation reports whether the algorithm is the IDPF or Adobe
// font obfuscation scheme.
func isFontObfuscation(algorithm string) bool {
	return strings.Contains(algorithm, "obfuscation") &&
		(strings.Contains(algorithm, "idpf.org") || strings.Contains(algorithm, "adobe.com"))
}

// isContentFile reports whether the URI names a document or stylesheet.
func isContentFile(uri string) bool {
	switch strings.ToLower(path.Ext(uri)) {
	case ".xhtml", ".html", ".htm", ".xml", ".css":
		return true
	}
	return false
}
