// Package htmldoc provides HTML document parsing.
//
// An HTML page is read as a single portrait section. The first top-level
// <header> and <footer> become the section's header and footer; block
// elements of the body become paragraphs and tables.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// Document is a parsed HTML page. It implements extract.Source.
type Document struct {
	section *sectionNode
	blocks  []extract.Block
}

// Sections returns the page's single section.
func (d *Document) Sections() []extract.Section {
	return []extract.Section{d.section}
}

// Blocks returns the body paragraphs and tables in order.
func (d *Document) Blocks() []extract.Block { return d.blocks }

// Open reads and parses an HTML file with default options.
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, DefaultOptions())
}

// Parse parses HTML held in memory with default options.
func Parse(data []byte) (*Document, error) {
	return OpenReader(bytes.NewReader(data), DefaultOptions())
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader, opts Options) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	body := findElement(root, "body")
	if body == nil {
		body = root
	}

	b := &builder{nav: newNavFilter(opts.Navigation, body)}
	b.walk(body, normalTemplate())

	return &Document{
		section: &sectionNode{header: b.header, footer: b.footer},
		blocks:  b.blocks,
	}, nil
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// Reader turns HTML bytes into a model.Document.
type Reader struct {
	opts Options
}

// NewReader creates an HTML reader with default options.
func NewReader() *Reader {
	return NewReaderWithOptions(DefaultOptions())
}

// NewReaderWithOptions creates an HTML reader with the given options.
func NewReaderWithOptions(opts Options) *Reader {
	return &Reader{opts: opts}
}

// Read parses buf and extracts its content model.
func (r *Reader) Read(buf []byte, fileName string) (*model.Document, error) {
	doc, err := OpenReader(bytes.NewReader(buf), r.opts)
	if err != nil {
		return nil, err
	}
	layouts, err := extract.Walk(doc)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}
	return model.Assemble(fileName, buf, layouts), nil
}
