package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{HTML, "HTML"},
		{PDF, "PDF"},
		{ODT, "ODT"},
		{XLSX, "XLSX"},
		{PPTX, "PPTX"},
		{EPUB, "EPUB"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_KeyAndExtension(t *testing.T) {
	tests := []struct {
		format Format
		key    string
		ext    string
	}{
		{DOCX, "docx", ".docx"},
		{HTML, "html", ".html"},
		{PDF, "pdf", ".pdf"},
		{PPTX, "pptx", ".pptx"},
		{Unknown, "", ""},
		{Format(-1), "", ""},
		{EPUB, "epub", ".epub"},
		{EPUB + 1, "", ""},
	}

	for _, tt := range tests {
		if got := tt.format.Key(); got != tt.key {
			t.Errorf("Format(%d).Key() = %q, want %q", tt.format, got, tt.key)
		}
		if got := tt.format.Extension(); got != tt.ext {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.ext)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.docx", DOCX},
		{"document.DOCX", DOCX},
		{"document.Docx", DOCX},
		{"document.html", HTML},
		{"document.HTML", HTML},
		{"document.htm", HTML},
		{"document.xhtml", HTML},
		{"document.pdf", PDF},
		{"document.odt", ODT},
		{"document.xlsx", XLSX},
		{"document.pptx", PPTX},
		{"book.EPUB", EPUB},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.docx", DOCX},
		{"/path/to/file.html", HTML},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

// zipWith builds a ZIP archive holding empty files with the given names.
// A file named mimetype holds the ODT media type.
func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	return zipWithMimetype(t, "application/vnd.oasis.opendocument.text", names...)
}

func zipWithMimetype(t *testing.T, mimetype string, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if name == "mimetype" {
			w.Write([]byte(mimetype))
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"DOCX", zipWith(t, "[Content_Types].xml", "word/document.xml"), DOCX},
		{"XLSX", zipWith(t, "[Content_Types].xml", "xl/workbook.xml"), XLSX},
		{"PPTX", zipWith(t, "[Content_Types].xml", "ppt/presentation.xml"), PPTX},
		{"ODT", zipWith(t, "mimetype", "content.xml"), ODT},
		{"EPUB", zipWithMimetype(t, "application/epub+zip", "mimetype", "META-INF/container.xml"), EPUB},
		{"other mimetype", zipWithMimetype(t, "application/x-other", "mimetype"), Unknown},
		{"other ZIP", zipWith(t, "readme.txt"), Unknown},
		{"truncated ZIP", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}, Unknown},
		{"PDF", []byte("%PDF-1.4\n%%EOF"), PDF},
		{"HTML with DOCTYPE", []byte("<!DOCTYPE html>\n<html>"), HTML},
		{"HTML with html tag", []byte("<html><head>"), HTML},
		{"HTML with whitespace before DOCTYPE", []byte("  \n  <!DOCTYPE HTML PUBLIC"), HTML},
		{"HTML with BOM", []byte("\xef\xbb\xbf<!doctype html>"), HTML},
		{"XHTML", []byte(`<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml">`), HTML},
		{"plain XML", []byte(`<?xml version="1.0"?><root/>`), Unknown},
		{"empty data", []byte{}, Unknown},
		{"text file", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromBytes(tt.data); got != tt.want {
				t.Errorf("DetectFromBytes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_Error(t *testing.T) {
	data := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}
	if _, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("DetectFromReader() expected error for a truncated ZIP")
	}
}
