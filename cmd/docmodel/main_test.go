package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/docmodel/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DOCMODEL_CONFIG", "DOCMODEL_LOG_LEVEL", "DOCMODEL_LOG_FORMAT", "DOCMODEL_WORKERS", "DOCMODEL_MAX_FILE_MB"} {
		t.Setenv(k, "")
	}
}

func TestRun_Commands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut string
		wantErr bool
	}{
		{name: "version", args: []string{"version"}, wantOut: "docmodel version " + version},
		{name: "types", args: []string{"types"}, wantOut: "docx\nepub\nhtm\nhtml\nodt\n"},
		{name: "help", args: []string{"help"}, wantOut: "Usage: docmodel"},
		{name: "no args", args: nil, wantErr: true},
		{name: "unknown", args: []string{"frobnicate"}, wantErr: true},
		{name: "parse without files", args: []string{"parse"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if tt.wantErr {
				if !errors.Is(err, errUsage) {
					t.Errorf("run() error = %v, want usage error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestRun_ParseStdout(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	first := writeFile(t, dir, "first.html", "<h1>One</h1>")
	second := writeFile(t, dir, "second.htm", "<p>Two</p>")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"parse", first, second}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v\n%s", err, stderr.String())
	}

	dec := json.NewDecoder(&stdout)
	var got []string
	for dec.More() {
		var doc model.Document
		if err := dec.Decode(&doc); err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, filepath.Base(doc.Filename))
	}
	if strings.Join(got, ",") != "first.html,second.htm" {
		t.Errorf("documents = %v, want input order", got)
	}
}

func TestRun_ParseOutputDir(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "page.html", "<p>Hello</p>")
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"parse", "-o", out, in}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v\n%s", err, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", stdout.String())
	}

	data, err := os.ReadFile(filepath.Join(out, "page.json"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := doc.Layouts[0].Paragraphs()[0].Text(); got != "Hello" {
		t.Errorf("text = %q", got)
	}
}

func TestRun_ParseFailures(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.html", "<p>ok</p>")
	pdf := writeFile(t, dir, "doc.pdf", "%PDF-1.4")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"parse", good, pdf, filepath.Join(dir, "missing.docx")}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "2 of 3 files failed") {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "good.html") {
		t.Error("the good file should still be written")
	}
	if !strings.Contains(stderr.String(), "parse failed") {
		t.Errorf("stderr = %q, want failure log", stderr.String())
	}
}

func TestRun_ParseForcedType(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "page.txt", "<p>typed</p>")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"parse", "-type", "HTML", in}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v\n%s", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "typed") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_ParseSizeLimit(t *testing.T) {
	cleanEnv(t)
	t.Setenv("DOCMODEL_MAX_FILE_MB", "1")
	dir := t.TempDir()
	big := writeFile(t, dir, "big.html", "<p>"+strings.Repeat("x", 1<<20)+"</p>")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"parse", big}, &stdout, &stderr)
	if err == nil {
		t.Fatal("run() expected error for an oversized file")
	}
	if !strings.Contains(stderr.String(), "limit is") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"report.docx":        "report.json",
		"/tmp/a/b.page.html": "b.page.json",
		"noext":              "noext.json",
	}
	for in, want := range tests {
		if got := outputName(in); got != want {
			t.Errorf("outputName(%q) = %q, want %q", in, got, want)
		}
	}
}
