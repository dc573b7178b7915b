// Package docmodel extracts a normalized content model from word-processing
// documents.
//
// Basic usage:
//
//	doc, err := docmodel.ParseDocument(data, "docx", "report.docx")
//	if err != nil {
//	    // handle error
//	}
//	for _, layout := range doc.Layouts {
//	    for _, p := range layout.Paragraphs() {
//	        fmt.Println(p.Text())
//	    }
//	}
//
// Files can be parsed by name, with the type taken from the extension or
// the content:
//
//	doc, err := docmodel.ParseFile("page.html")
//
// Readers are looked up in a [Registry] by file type. The default registry
// knows "docx", "odt", "epub", "html" and "htm"; other types fail with an
// error matching [ErrUnsupportedFormat].
package docmodel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/docmodel/docx"
	"github.com/tsawler/docmodel/epubdoc"
	"github.com/tsawler/docmodel/format"
	"github.com/tsawler/docmodel/htmldoc"
	"github.com/tsawler/docmodel/model"
	"github.com/tsawler/docmodel/odt"
)

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// registerBuiltins adds the readers shipped with this module.
func registerBuiltins(r *Registry) {
	docxFactory := func() Reader { return docx.NewReader() }
	htmlFactory := func() Reader { return htmldoc.NewReader() }
	odtFactory := func() Reader { return odt.NewReader() }
	epubFactory := func() Reader { return epubdoc.NewReader() }

	for fileType, f := range map[string]Factory{
		format.DOCX.Key(): docxFactory,
		format.HTML.Key(): htmlFactory,
		"htm":             htmlFactory,
		format.ODT.Key():  odtFactory,
		format.EPUB.Key(): epubFactory,
	} {
		if err := r.Register(fileType, f); err != nil {
			panic(err)
		}
	}
}

// DefaultRegistry returns the registry used by ParseDocument and ParseFile.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// ParseDocument parses buf with the default registry's reader for fileType.
// fileName is recorded in the result and is never opened.
func ParseDocument(buf []byte, fileType, fileName string) (*model.Document, error) {
	return defaultRegistry.Parse(buf, fileType, fileName)
}

// ParseFile reads and parses a file with the default registry. The file
// type comes from the extension, or from the content when the extension
// is not recognized.
func ParseFile(filename string) (*model.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return ParseDocument(data, DetectFileType(filename, data), filename)
}

// DetectFileType returns the registry key for a file, trying the extension
// first and then the content. An unrecognized file yields its raw
// extension so that the error names it.
func DetectFileType(filename string, data []byte) string {
	if f := format.Detect(filename); f != format.Unknown {
		return f.Key()
	}
	if f := format.DetectFromBytes(data); f != format.Unknown {
		return f.Key()
	}
	return foldKey(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := docmodel.Must(docmodel.ParseFile("report.docx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
