package epubdoc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/htmldoc"
	"github.com/tsawler/docmodel/model"
)

// Reader-related errors.
var (
	ErrInvalidArchive  = errors.New("epub: invalid or corrupted archive")
	ErrInvalidMimetype = errors.New("epub: invalid mimetype (not an EPUB)")
	ErrMissingContent  = errors.New("epub: referenced content file not found")
)

const (
	partMimetype = "mimetype"
	mimeEPUB     = "application/epub+zip"
)

// archive indexes the files of an EPUB container by name.
type archive struct {
	files map[string]*zip.File
}

func newArchive(zr *zip.Reader) *archive {
	a := &archive{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		a.files[f.Name] = f
	}
	return a
}

func (a *archive) has(name string) bool {
	_, ok := a.files[name]
	return ok
}

func (a *archive) read(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, ErrMissingContent
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Document is a decoded EPUB. Every chapter is one section; the blocks of
// later chapters are preceded by a section break.
type Document struct {
	pkg      *Package
	chapters []*Chapter
	sections []extract.Section
	blocks   []extract.Block
}

// Sections returns one section per chapter, in spine order.
func (d *Document) Sections() []extract.Section { return d.sections }

// Blocks returns the chapters' paragraphs and tables in reading order.
func (d *Document) Blocks() []extract.Block { return d.blocks }

// Package returns the decoded package document.
func (d *Document) Package() *Package { return d.pkg }

// Chapters returns the spine items that resolved to content files.
func (d *Document) Chapters() []*Chapter { return d.chapters }

// Open reads and parses an EPUB file with default HTML options.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data, htmldoc.DefaultOptions())
}

// Parse decodes an EPUB held in memory. opts controls how each chapter's
// HTML is read.
func Parse(data []byte, opts htmldoc.Options) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrInvalidArchive
	}
	a := newArchive(zr)

	// The mimetype file is optional, but a present one must name EPUB.
	if a.has(partMimetype) {
		mt, err := a.read(partMimetype)
		if err != nil {
			return nil, fmt.Errorf("reading mimetype: %w", err)
		}
		if strings.TrimSpace(string(mt)) != mimeEPUB {
			return nil, ErrInvalidMimetype
		}
	}

	if err := checkForDRM(a); err != nil {
		return nil, err
	}

	opfPath, err := parseContainer(a)
	if err != nil {
		return nil, err
	}
	pkg, baseDir, err := parseOPF(a, opfPath)
	if err != nil {
		return nil, err
	}

	doc := &Document{pkg: pkg}
	if err := doc.loadChapters(a, baseDir, opts); err != nil {
		return nil, err
	}
	return doc, nil
}

// loadChapters reads every spine item through the HTML object model.
// Items missing from the manifest or the archive are skipped.
func (d *Document) loadChapters(a *archive, baseDir string, opts htmldoc.Options) error {
	for i, item := range d.pkg.Spine {
		mi, ok := d.pkg.Manifest[item.IDRef]
		if !ok {
			continue
		}
		href := resolveHref(baseDir, mi.Href)
		content, err := a.read(href)
		if errors.Is(err, ErrMissingContent) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", href, err)
		}

		chapter, err := htmldoc.OpenReader(bytes.NewReader(content), opts)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", href, err)
		}

		if len(d.chapters) > 0 {
			d.blocks = append(d.blocks, extract.Block{Paragraph: chapterBreak{}})
		}
		d.blocks = append(d.blocks, chapter.Blocks()...)
		d.sections = append(d.sections, chapter.Sections()...)
		d.chapters = append(d.chapters, &Chapter{ID: mi.ID, Index: i, Href: href})
	}

	if len(d.chapters) == 0 {
		return ErrEmptySpine
	}
	return nil
}

// resolveHref turns a manifest href into an archive path. Hrefs are
// percent-encoded and relative to the package document.
func resolveHref(baseDir, href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	return path.Join(baseDir, href)
}

// chapterBreak ends one chapter's section.
type chapterBreak struct{}

func (chapterBreak) Text() string                         { return "" }
func (chapterBreak) Runs() []extract.RawRun               { return nil }
func (chapterBreak) StyleName() (string, bool)            { return "", false }
func (chapterBreak) StyleFont() extract.Font              { return extract.Font{} }
func (chapterBreak) Alignment() (string, bool)            { return "", false }
func (chapterBreak) SpaceBefore() (float64, bool)         { return 0, false }
func (chapterBreak) SpaceAfter() (float64, bool)          { return 0, false }
func (chapterBreak) Numbering() (extract.Numbering, bool) { return extract.Numbering{}, false }
func (chapterBreak) SectionBreak() bool                   { return true }

// Reader turns EPUB bytes into a model.Document with one layout per
// chapter. It holds no per-call state.
type Reader struct {
	opts htmldoc.Options
}

// NewReader creates an EPUB reader with default HTML options.
func NewReader() *Reader {
	return NewReaderWithOptions(htmldoc.DefaultOptions())
}

// NewReaderWithOptions creates an EPUB reader that reads chapters with
// the given HTML options.
func NewReaderWithOptions(opts htmldoc.Options) *Reader {
	return &Reader{opts: opts}
}

// Read parses buf and extracts its content model.
func (r *Reader) Read(buf []byte, fileName string) (*model.Document, error) {
	doc, err := Parse(buf, r.opts)
	if err != nil {
		return nil, err
	}
	layouts, err := extract.Walk(doc)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}
	return model.Assemble(fileName, buf, layouts), nil
}
