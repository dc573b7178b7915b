package docmodel

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/text/cases"

	"github.com/tsawler/docmodel/model"
)

// Reader converts the raw bytes of one file type into a Document.
type Reader interface {
	Read(buf []byte, fileName string) (*model.Document, error)
}

// Factory builds a Reader. The registry calls it once per parse, so
// readers never share per-call state.
type Factory func() Reader

// Registry maps file types to reader factories. It is safe for concurrent
// use; registration may race with parsing.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *slog.Logger
}

// NewRegistry creates an empty registry that logs to slog.Default().
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// SetLogger replaces the registry's logger. A nil logger restores
// slog.Default().
func (r *Registry) SetLogger(l *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

func (r *Registry) log() *slog.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.logger == nil {
		return slog.Default()
	}
	return r.logger
}

// foldKey case-folds a file type. Keys otherwise match exactly.
func foldKey(fileType string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(fileType)
}

// Register associates a file type with a factory, replacing any earlier
// registration of the same type.
func (r *Registry) Register(fileType string, f Factory) error {
	key := foldKey(fileType)
	if key == "" {
		return fmt.Errorf("docmodel: empty file type")
	}
	if f == nil {
		return fmt.Errorf("docmodel: nil factory for %q", fileType)
	}

	r.mu.Lock()
	_, replaced := r.factories[key]
	r.factories[key] = f
	r.mu.Unlock()

	r.log().Debug("registered reader", "file_type", key, "replaced", replaced)
	return nil
}

// Lookup returns the factory registered for a file type.
func (r *Registry) Lookup(fileType string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[foldKey(fileType)]
	return f, ok
}

// FileTypes returns the registered file types in sorted order.
func (r *Registry) FileTypes() []string {
	r.mu.RLock()
	types := make([]string, 0, len(r.factories))
	for key := range r.factories {
		types = append(types, key)
	}
	r.mu.RUnlock()

	sort.Strings(types)
	return types
}

// Parse dispatches buf to the reader registered for fileType. An
// unregistered type returns *UnsupportedFormatError without touching buf;
// reader failures are returned as *ParseError.
func (r *Registry) Parse(buf []byte, fileType, fileName string) (*model.Document, error) {
	logger := r.log()

	f, ok := r.Lookup(fileType)
	if !ok {
		logger.Debug("no reader for file type", "file_type", fileType, "file", fileName)
		return nil, &UnsupportedFormatError{FileType: fileType}
	}

	key := foldKey(fileType)
	doc, err := f().Read(buf, fileName)
	if err != nil {
		logger.Warn("parse failed", "file_type", key, "file", fileName, "error", err)
		return nil, &ParseError{FileType: key, FileName: fileName, Err: err}
	}

	logger.Debug("parsed document",
		"file_type", key,
		"file", fileName,
		"uid", doc.UID,
		"layouts", doc.LayoutCount(),
	)
	return doc, nil
}
