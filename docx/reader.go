// Package docx provides DOCX (Office Open XML) document parsing.
//
// [Parse] decodes a DOCX package held in memory into a [Document], which
// implements [extract.Source]. [Reader] runs the full pipeline and returns
// a [model.Document].
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// Package part names.
const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
)

// Document is a decoded DOCX package. It is built by Parse and is not
// modified afterwards.
type Document struct {
	document *documentXML
	styles   *StyleResolver
	sections []extract.Section
	blocks   []extract.Block
}

// Sections returns the document's sections in document order.
func (d *Document) Sections() []extract.Section { return d.sections }

// Blocks returns the top-level body paragraphs and tables in order.
func (d *Document) Blocks() []extract.Block { return d.blocks }

// Open reads and parses a DOCX file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a DOCX package from memory.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	pkg := &packageReader{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.files[f.Name] = f
	}

	// Validate required files exist
	for _, name := range []string{partContentTypes, partDocument} {
		if _, ok := pkg.files[name]; !ok {
			return nil, fmt.Errorf("missing required file: %s", name)
		}
	}

	doc := &Document{document: &documentXML{}}
	if err := pkg.decode(partDocument, doc.document); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if doc.document.Body == nil {
		return nil, fmt.Errorf("parsing document: no body element")
	}

	// Styles are optional, but a present styles part must decode.
	var styles *stylesXML
	if pkg.has(partStyles) {
		styles = &stylesXML{}
		if err := pkg.decode(partStyles, styles); err != nil {
			return nil, fmt.Errorf("parsing styles: %w", err)
		}
	}
	doc.styles = NewStyleResolver(styles)

	rels, err := pkg.relationships()
	if err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	if err := doc.buildSections(pkg, rels); err != nil {
		return nil, err
	}
	doc.buildBlocks()

	return doc, nil
}

// buildBlocks wraps the body elements as extract blocks.
func (d *Document) buildBlocks() {
	body := d.document.Body
	d.blocks = make([]extract.Block, 0, len(body.Elements))
	for _, el := range body.Elements {
		switch {
		case el.Paragraph != nil:
			d.blocks = append(d.blocks, extract.Block{
				Paragraph: &paragraphNode{p: el.Paragraph, styles: d.styles},
			})
		case el.Table != nil:
			d.blocks = append(d.blocks, extract.Block{
				Table: newTableNode(el.Table, d.styles),
			})
		}
	}
}

// buildSections collects every sectPr in document order: those embedded
// in body paragraphs, then the body-final one. A section without a default
// header or footer reference reuses the previous section's.
func (d *Document) buildSections(pkg *packageReader, rels map[string]string) error {
	body := d.document.Body

	var props []*sectPrXML
	for _, el := range body.Elements {
		if el.Paragraph != nil && el.Paragraph.Properties.SectPr != nil {
			props = append(props, el.Paragraph.Properties.SectPr)
		}
	}
	if body.SectPr != nil {
		props = append(props, body.SectPr)
	}

	var header, footer []extract.Paragraph
	for i, sp := range props {
		if id, ok := defaultRef(sp.HeaderRefs); ok {
			h := &headerXML{}
			if err := pkg.decodeRel(rels, id, h); err != nil {
				return fmt.Errorf("section %d header: %w", i, err)
			}
			header = paragraphNodes(h.Paragraphs, d.styles)
		}
		if id, ok := defaultRef(sp.FooterRefs); ok {
			f := &footerXML{}
			if err := pkg.decodeRel(rels, id, f); err != nil {
				return fmt.Errorf("section %d footer: %w", i, err)
			}
			footer = paragraphNodes(f.Paragraphs, d.styles)
		}

		d.sections = append(d.sections, &sectionNode{
			orientation: orientationOf(sp),
			header:      header,
			footer:      footer,
		})
	}

	return nil
}

// packageReader gives access to the parts of an open ZIP package.
type packageReader struct {
	files map[string]*zip.File
}

func (pkg *packageReader) has(name string) bool {
	_, ok := pkg.files[name]
	return ok
}

// read returns the content of a part.
func (pkg *packageReader) read(name string) ([]byte, error) {
	f, ok := pkg.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// decode reads a part and unmarshals it into v.
func (pkg *packageReader) decode(name string, v any) error {
	data, err := pkg.read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", name, err)
	}
	return nil
}

// decodeRel decodes the part targeted by a document relationship.
func (pkg *packageReader) decodeRel(rels map[string]string, id string, v any) error {
	target, ok := rels[id]
	if !ok {
		return fmt.Errorf("unknown relationship %q", id)
	}
	return pkg.decode(target, v)
}

// relationships returns the document's internal relationships as a map
// from ID to part name. The relationships part is optional.
func (pkg *packageReader) relationships() (map[string]string, error) {
	rels := make(map[string]string)
	if !pkg.has(partDocumentRels) {
		return rels, nil
	}

	var parsed relationshipsXML
	if err := pkg.decode(partDocumentRels, &parsed); err != nil {
		return nil, err
	}
	for _, rel := range parsed.Relationships {
		if rel.TargetMode == "External" {
			continue
		}
		rels[rel.ID] = partName(rel.Target)
	}
	return rels, nil
}

// partName resolves a relationship target against the word/ directory.
func partName(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join("word", target)
}

// Reader turns DOCX bytes into a model.Document. It holds no per-call
// state and may be shared between goroutines.
type Reader struct{}

// NewReader creates a DOCX reader.
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
