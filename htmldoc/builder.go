package htmldoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/docmodel/extract"
	"github.com/tsawler/docmodel/model"
)

// isSkipped reports whether an element carries no document content.
func isSkipped(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head", "title":
		return true
	}
	return false
}

// isBlock reports whether an element starts a new block. Everything else
// is inline content of the surrounding paragraph.
func isBlock(tag string) bool {
	switch tag {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "pre", "blockquote",
		"div", "section", "article", "main", "header", "footer", "nav", "aside",
		"address", "figure", "figcaption", "form", "fieldset", "details", "summary",
		"dl", "dt", "dd", "ul", "ol", "li", "table", "hr":
		return true
	}
	return isSkipped(tag)
}

// template is the paragraph shape given to inline content of a block.
type template struct {
	style     string
	bold      bool
	align     string
	numbering *extract.Numbering
}

func normalTemplate() template { return template{style: styleNormal} }

// builder turns a DOM subtree into blocks.
type builder struct {
	nav       *navFilter
	blocks    []extract.Block
	header    []extract.Paragraph
	footer    []extract.Paragraph
	hasHeader bool
	hasFooter bool
	listDepth int
	listKind  string
}

// walk processes the children of parent. Runs of inline children between
// blocks become one paragraph shaped by tmpl.
func (b *builder) walk(parent *html.Node, tmpl template) {
	var pending []*html.Node
	flush := func() {
		if len(pending) > 0 {
			b.inline(pending, tmpl, false)
			pending = nil
		}
	}

	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlock(c.Data) {
			flush()
			b.block(c, tmpl)
			continue
		}
		pending = append(pending, c)
	}
	flush()
}

// block processes one block element.
func (b *builder) block(n *html.Node, tmpl template) {
	if isSkipped(n.Data) || b.nav.exclude(n) {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.inline([]*html.Node{n}, template{
			style: "Heading " + n.Data[1:],
			bold:  true,
			align: alignmentOf(n),
		}, false)

	case "p", "dt", "dd", "figcaption", "summary":
		t := blockTemplate(tmpl)
		t.align = alignmentOf(n)
		b.walk(n, t)

	case "pre":
		t := blockTemplate(tmpl)
		t.align = alignmentOf(n)
		b.inline([]*html.Node{n}, t, true)

	case "header", "footer":
		if b.pageRegion(n) {
			return
		}
		b.walk(n, withAlign(blockTemplate(tmpl), n))

	case "ul", "ol":
		prevKind := b.listKind
		b.listKind = n.Data
		b.listDepth++
		b.walk(n, tmpl)
		b.listDepth--
		b.listKind = prevKind

	case "li":
		level := b.listDepth - 1
		if level < 0 {
			level = 0
		}
		kind := b.listKind
		if kind == "" {
			kind = "ul"
		}
		b.walk(n, template{
			style:     styleListParagraph,
			align:     alignmentOf(n),
			numbering: &extract.Numbering{NumID: kind, Level: &level},
		})

	case "table":
		b.blocks = append(b.blocks, extract.Block{Table: b.table(n)})

	case "hr":

	default:
		// Containers: div, section, blockquote and the like.
		b.walk(n, withAlign(blockTemplate(tmpl), n))
	}
}

// pageRegion captures the first top-level <header> and <footer> as the
// layout header and footer. It reports whether n was consumed.
func (b *builder) pageRegion(n *html.Node) bool {
	if !b.nav.isTopLevel(n) {
		return false
	}
	switch {
	case n.Data == "header" && !b.hasHeader:
		b.header = b.subtree(n)
		b.hasHeader = true
		return true
	case n.Data == "footer" && !b.hasFooter:
		b.footer = b.subtree(n)
		b.hasFooter = true
		return true
	}
	return false
}

// subtree builds the children of n separately and returns their
// paragraphs, flattening any tables.
func (b *builder) subtree(n *html.Node) []extract.Paragraph {
	sub := &builder{nav: b.nav, hasHeader: true, hasFooter: true}
	sub.walk(n, normalTemplate())
	return paragraphsOf(sub.blocks)
}

// blockTemplate keeps list numbering for blocks nested in a list item and
// resets everything else to Normal.
func blockTemplate(parent template) template {
	if parent.numbering != nil {
		return template{style: parent.style, numbering: parent.numbering}
	}
	return normalTemplate()
}

func withAlign(t template, n *html.Node) template {
	if a := alignmentOf(n); a != "" {
		t.align = a
	}
	return t
}

// inline collects the runs of nodes into one paragraph shaped by tmpl.
// Nothing is emitted when the nodes hold only whitespace.
func (b *builder) inline(nodes []*html.Node, tmpl template, pre bool) {
	rc := &runCollector{pre: pre}
	for _, n := range nodes {
		rc.collect(n, inlineFormat{})
	}
	runs := rc.finish()
	if len(runs) == 0 {
		return
	}

	b.blocks = append(b.blocks, extract.Block{Paragraph: &paragraphNode{
		runs:      runs,
		style:     tmpl.style,
		bold:      tmpl.bold,
		align:     tmpl.align,
		numbering: tmpl.numbering,
	}})
}

// table builds a table from the rows of <table>, including those inside
// <thead>, <tbody> and <tfoot>. Rows of nested tables are not included.
func (b *builder) table(n *html.Node) *tableNode {
	var rows []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.Data == "tr" {
					rows = append(rows, r)
				}
			}
		}
	}

	t := &tableNode{rows: make([][]extract.Cell, len(rows))}
	for ri, tr := range rows {
		cells := make([]extract.Cell, 0)
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
				continue
			}
			cell := &cellNode{
				span:       intAttr(c, "colspan"),
				extent:     1,
				paragraphs: b.subtree(c),
			}
			if rs := intAttr(c, "rowspan"); rs > 1 {
				cell.merge = extract.VMergeRestart
				cell.extent = min(rs, len(rows)-ri)
			}
			cells = append(cells, cell)
		}
		t.rows[ri] = cells
	}
	return t
}

// paragraphsOf flattens blocks to paragraphs in reading order.
func paragraphsOf(blocks []extract.Block) []extract.Paragraph {
	var out []extract.Paragraph
	for _, blk := range blocks {
		if blk.Paragraph != nil {
			out = append(out, blk.Paragraph)
			continue
		}
		for _, row := range blk.Table.Rows() {
			for _, cell := range row {
				out = append(out, cell.Paragraphs()...)
			}
		}
	}
	return out
}

// runCollector gathers the runs of one paragraph.
type runCollector struct {
	runs []extract.RawRun
	pre  bool
}

func (rc *runCollector) collect(n *html.Node, f inlineFormat) {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if !rc.pre {
			text = collapseSpace(text)
		}
		rc.add(text, f)
		return
	case html.ElementNode:
		if isSkipped(n.Data) {
			return
		}
		if n.Data == "br" {
			rc.add("\n", f)
			return
		}
		f = f.apply(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rc.collect(c, f)
	}
}

// add appends text as a run. Outside <pre>, a space at the start of a line
// or after another space is dropped.
func (rc *runCollector) add(text string, f inlineFormat) {
	if !rc.pre && strings.HasPrefix(text, " ") && rc.atSpace() {
		text = text[1:]
	}
	if text == "" {
		return
	}
	rc.runs = append(rc.runs, extract.RawRun{
		Text:        text,
		Bold:        flag(f.bold),
		Italic:      flag(f.italic),
		Underline:   flag(f.underline),
		Subscript:   flag(f.subscript),
		Superscript: flag(f.superscript),
	})
}

func (rc *runCollector) atSpace() bool {
	if len(rc.runs) == 0 {
		return true
	}
	last := rc.runs[len(rc.runs)-1].Text
	return strings.HasSuffix(last, " ") || strings.HasSuffix(last, "\n")
}

// finish trims trailing whitespace outside <pre> and returns the runs.
func (rc *runCollector) finish() []extract.RawRun {
	if rc.pre {
		return rc.runs
	}
	for len(rc.runs) > 0 {
		last := &rc.runs[len(rc.runs)-1]
		last.Text = strings.TrimRight(last.Text, " \n")
		if last.Text != "" {
			break
		}
		rc.runs = rc.runs[:len(rc.runs)-1]
	}
	return rc.runs
}

// flag maps inline markup to a formatting flag. HTML never turns a flag
// explicitly off, so the absence of markup is Unset.
func flag(on bool) model.Tristate {
	if on {
		return model.True
	}
	return model.Unset
}

// collapseSpace replaces each run of HTML whitespace with one space.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}

// alignmentOf returns the justification value of an element from its
// align attribute or its text-align style. "justify" maps to "both".
func alignmentOf(n *html.Node) string {
	val := strings.ToLower(strings.TrimSpace(attr(n, "align")))
	if val == "" {
		val = cssProperty(attr(n, "style"), "text-align")
	}
	if val == "justify" {
		return "both"
	}
	return val
}

// cssProperty returns the lower-cased value of one property of an inline
// style attribute.
func cssProperty(style, name string) string {
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(prop), name) {
			return strings.ToLower(strings.TrimSpace(val))
		}
	}
	return ""
}

// intAttr parses a non-negative integer attribute; anything else is 0.
func intAttr(n *html.Node, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(attr(n, key)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
