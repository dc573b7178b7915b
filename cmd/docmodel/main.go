// Command docmodel converts word-processing documents to their JSON
// content model.
//
// Usage:
//
//	docmodel parse [-type T] [-config F] [-o DIR] file...
//	docmodel types
//	docmodel version
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/docmodel"
	"github.com/tsawler/docmodel/config"
	"github.com/tsawler/docmodel/model"
)

const version = "0.1.0"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "docmodel:", err)
		}
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmodel <command> [arguments]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  parse [-type T] [-config F] [-o DIR] file...   Parse files to JSON")
	fmt.Fprintln(w, "  types                                          List supported file types")
	fmt.Fprintln(w, "  version                                        Show version information")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		usage(stderr)
		return errUsage
	}

	switch args[0] {
	case "parse":
		return runParse(ctx, args[1:], stdout, stderr)
	case "types":
		for _, t := range docmodel.DefaultRegistry().FileTypes() {
			fmt.Fprintln(stdout, t)
		}
		return nil
	case "version":
		fmt.Fprintf(stdout, "docmodel version %s\n", version)
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		usage(stderr)
		return errUsage
	}
}

// parseJob holds the settings shared by every file of one parse command.
type parseJob struct {
	cfg      *config.Config
	fileType string
	registry *docmodel.Registry
	logger   *slog.Logger
}

func runParse(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fileType := fs.String("type", "", "file type (default: detect from name and content)")
	configPath := fs.String("config", "", "path to YAML config file")
	outDir := fs.String("o", "", "write <name>.json files to this directory")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "parse: no input files")
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	registry := docmodel.DefaultRegistry()
	registry.SetLogger(logger)

	job := &parseJob{cfg: cfg, fileType: *fileType, registry: registry, logger: logger}
	return job.run(ctx, fs.Args(), stdout)
}

// run parses files concurrently, bounded by the configured worker count.
// Output keeps the order of files. A file that fails is logged and the
// rest continue; the command fails if any file did.
func (j *parseJob) run(ctx context.Context, files []string, stdout io.Writer) error {
	if j.cfg.OutputDir != "" {
		if err := os.MkdirAll(j.cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	outputs := make([][]byte, len(files))
	failed := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.cfg.Workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := j.parseFile(path)
			if err != nil {
				j.logger.Error("parse failed", "file", path, "error", err)
				failed[i] = true
				return nil
			}

			data, err := j.encode(doc)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", path, err)
			}

			if j.cfg.OutputDir == "" {
				outputs[i] = data
				return nil
			}
			out := filepath.Join(j.cfg.OutputDir, outputName(path))
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			j.logger.Info("wrote document", "file", path, "output", out, "layouts", doc.LayoutCount())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, data := range outputs {
		if data == nil {
			continue
		}
		if _, err := stdout.Write(data); err != nil {
			return err
		}
	}

	n := 0
	for _, f := range failed {
		if f {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

// parseFile enforces the size limit before reading, then parses.
func (j *parseJob) parseFile(path string) (*model.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if limit := j.cfg.MaxFileBytes(); limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("file is %d bytes, limit is %d", info.Size(), limit)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fileType := j.fileType
	if fileType == "" {
		fileType = docmodel.DetectFileType(path, data)
	}
	return j.registry.Parse(data, fileType, filepath.Base(path))
}

func (j *parseJob) encode(doc *model.Document) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if j.cfg.Indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// outputName returns the JSON file name for an input path.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
