package model

import (
	"strconv"

	"github.com/google/uuid"
)

// uidNamespace scopes document uids so they cannot collide with other
// name-based UUIDs derived from the same bytes.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:docmodel:document"))

// MakeUID returns the content-derived uid of a document: a name-based
// (version 5) UUID of the raw bytes. Identical bytes give identical uids.
func MakeUID(raw []byte) string {
	return uuid.NewSHA1(uidNamespace, raw).String()
}

// makeID derives the id of the node at path inside the document uid.
func makeID(uid, path string) string {
	ns, err := uuid.Parse(uid)
	if err != nil {
		ns = uidNamespace
	}
	return uuid.NewSHA1(ns, []byte(path)).String()
}

func layoutPath(i int) string { return "L" + strconv.Itoa(i) }
func elementPath(parent string, i int) string { return parent + "/E" + strconv.Itoa(i) }
func rowPath(parent string, i int) string { return parent + "/R" + strconv.Itoa(i) }
func cellPath(parent string, i int) string { return parent + "/C" + strconv.Itoa(i) }
func paragraphPath(parent string, i int) string { return parent + "/P" + strconv.Itoa(i) }

// Assemble builds the final Document from the walked layouts: it computes
// the uid from raw, then assigns ids and parent links to every layout,
// element, table cell and cell paragraph.
func Assemble(filename string, raw []byte, layouts []*Layout) *Document {
	doc := &Document{
		Filename: filename,
		UID:      MakeUID(raw),
		Layouts:  layouts,
	}
	doc.assignIDs()
	return doc
}

// assignIDs sets ID and ParentID on every node from its positional path.
func (d *Document) assignIDs() {
	for li, layout := range d.Layouts {
		lp := layoutPath(li)
		layout.ID = makeID(d.UID, lp)
		layout.ParentID = d.UID

		for ei, elem := range layout.Elements {
			ep := elementPath(lp, ei)
			switch e := elem.(type) {
			case *Paragraph:
				e.ID = makeID(d.UID, ep)
				e.ParentID = layout.ID
			case *Table:
				e.ID = makeID(d.UID, ep)
				e.ParentID = layout.ID
				d.assignTableIDs(e, ep)
			}
		}
	}
}

func (d *Document) assignTableIDs(t *Table, path string) {
	for ri := range t.Rows {
		rp := rowPath(path, ri)
		rowID := makeID(d.UID, rp)
		for ci := range t.Rows[ri] {
			cell := &t.Rows[ri][ci]
			cp := cellPath(rp, ci)
			cell.ID = makeID(d.UID, cp)
			cell.ParentID = rowID
			for pi := range cell.Paragraphs {
				p := &cell.Paragraphs[pi]
				p.ID = makeID(d.UID, paragraphPath(cp, pi))
				p.ParentID = cell.ID
			}
		}
	}
}
