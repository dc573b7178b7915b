// Package odt provides ODT (OpenDocument Text) document parsing.
//
// [Parse] decodes an ODT package held in memory into a [Document], which
// implements [extract.Source]. Master pages play the part of sections: a
// paragraph whose style names a master page starts a new one.
package odt

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// Package part names.
const (
	partMimetype = "mimetype"
	partContent  = "content.xml"
	partStyles   = "styles.xml"
)

const mimeText = "application/vnd.oasis.opendocument.text"

// Document is a decoded ODT package. It is built by Parse and is not
// modified afterwards.
type Document struct {
	sections []extract.Section
	blocks   []extract.Block
}

// Sections returns one section per master page run, in document order.
func (d *Document) Sections() []extract.Section { return d.sections }

// Blocks returns the top-level body paragraphs and tables in order.
func (d *Document) Blocks() []extract.Block { return d.blocks }

// Open reads and parses an ODT file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data)
}

// Parse decodes an ODT package from memory.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	if f, ok := files[partMimetype]; ok {
		mt, err := readPart(f)
		if err != nil {
			return nil, fmt.Errorf("reading mimetype: %w", err)
		}
		if got := strings.TrimSpace(string(mt)); got != mimeText {
			return nil, fmt.Errorf("not an OpenDocument text document: %s", got)
		}
	}

	f, ok := files[partContent]
	if !ok {
		return nil, fmt.Errorf("missing required file: %s", partContent)
	}
	raw, err := readPart(f)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	content, err := decodeContent(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}

	// Styles are optional, but a present styles part must decode.
	styles := &stylesXML{}
	if f, ok := files[partStyles]; ok {
		raw, err := readPart(f)
		if err != nil {
			return nil, fmt.Errorf("reading styles: %w", err)
		}
		if err := xml.Unmarshal(raw, styles); err != nil {
			return nil, fmt.Errorf("parsing styles: %w", err)
		}
	}

	doc := &Document{}
	doc.build(content, styles)
	return doc, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// build wraps the body as extract blocks and derives the sections. The
// first section uses the master page of the first paragraph, or
// "Standard", or the first master page. Every later paragraph whose style
// names a master page is preceded by a section break.
func (d *Document) build(content *contentXML, styles *stylesXML) {
	body := NewStyleResolver(styles.Styles, content.AutoStyles)
	pages := newPageSet(styles)

	masters := []string{pages.initial()}

	d.blocks = make([]extract.Block, 0, len(content.Elements))
	for i, el := range content.Elements {
		switch {
		case el.Paragraph != nil:
			if mp := body.masterPage(el.Paragraph.StyleName); mp != "" {
				if i == 0 {
					masters = []string{mp}
				} else {
					d.blocks = append(d.blocks, extract.Block{Paragraph: breakNode{}})
					masters = append(masters, mp)
				}
			}
			d.blocks = append(d.blocks, extract.Block{
				Paragraph: &paragraphNode{p: el.Paragraph, styles: body},
			})
		case el.Table != nil:
			d.blocks = append(d.blocks, extract.Block{
				Table: newTableNode(el.Table, body),
			})
		}
	}

	d.sections = make([]extract.Section, len(masters))
	for i, name := range masters {
		d.sections[i] = pages.section(name)
	}
}

// pageSet holds the master pages and page layouts of styles.xml.
type pageSet struct {
	masters []masterPageXML
	byName  map[string]*masterPageXML
	layouts map[string]*pageLayoutXML
	styles  *StyleResolver // resolves header and footer paragraphs
}

func newPageSet(styles *stylesXML) *pageSet {
	ps := &pageSet{
		byName:  make(map[string]*masterPageXML),
		layouts: make(map[string]*pageLayoutXML),
		styles:  NewStyleResolver(styles.Styles, styles.AutoStyles),
	}
	if styles.MasterStyles != nil {
		ps.masters = styles.MasterStyles.MasterPages
		for i := range ps.masters {
			ps.byName[ps.masters[i].Name] = &ps.masters[i]
		}
	}
	if styles.AutoStyles != nil {
		for i := range styles.AutoStyles.PageLayouts {
			pl := &styles.AutoStyles.PageLayouts[i]
			ps.layouts[pl.Name] = pl
		}
	}
	return ps
}

// initial returns the master page used when the body does not name one,
// or "" when the document has no master pages.
func (ps *pageSet) initial() string {
	if _, ok := ps.byName[defaultParagraphStyle]; ok {
		return defaultParagraphStyle
	}
	if len(ps.masters) > 0 {
		return ps.masters[0].Name
	}
	return ""
}

// section builds the section for a master page. An unknown master page
// yields a portrait section without header or footer.
func (ps *pageSet) section(name string) extract.Section {
	mp, ok := ps.byName[name]
	if !ok {
		return &sectionNode{orientation: model.Portrait}
	}
	return &sectionNode{
		orientation: orientationOf(ps.layouts[mp.PageLayoutName]),
		header:      regionParagraphs(mp.Header, ps.styles),
		footer:      regionParagraphs(mp.Footer, ps.styles),
	}
}

// Reader turns ODT bytes into a model.Document. It holds no per-call
// state and may be shared between goroutines.
type Reader struct{}

// NewReader creates an ODT reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses buf and extracts its content model.
func (r *Reader) Read(buf []byte, fileName string) (*model.Document, error) {
	doc, err := Parse(buf)
	if err != nil {
		return nil, err
	}
	layouts, err := extract.Walk(doc)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}
	return model.Assemble(fileName, buf, layouts), nil
}
