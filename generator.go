// Package propflow converts React components from PropTypes declarations to
// Flow type aliases.
//
// The fluent Generator is the entry point for converting files:
//
//	res, err := propflow.FromFiles("src/Button.js", "src/List.js").
//	    Indent("\t").
//	    ToDir(ctx, "./out")
//
// Lower-level building blocks live in subpackages: convert turns a single
// descriptor into a type annotation, flow prints annotations, and transform
// rewrites one file.
package propflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/broady/propflow/sink"
	"github.com/broady/propflow/transform"
)

// OutputFile is a rewritten file.
type OutputFile struct {
	// Path is slash-separated and relative to the base directory.
	Path    string
	Content []byte

	// Components are the converted component names in source order.
	Components []string
}

// SkippedComponent is a component left unconverted.
type SkippedComponent struct {
	File      string
	Component string
	Err       error
}

// FailedFile is an input file that could not be parsed. It is left as is.
type FailedFile struct {
	File string
	Err  error
}

// GenerateResult is the outcome of a conversion run.
type GenerateResult struct {
	Files     []OutputFile
	Skipped   []SkippedComponent
	Unchanged []string
	Failed    []FailedFile
}

// Generator provides a fluent API for converting files.
// Create one with FromFiles and configure it with method chaining.
type Generator struct {
	cfg    Config
	logger *slog.Logger
	sink   sink.OutputSink
}

// FromFiles creates a Generator for the given files.
func FromFiles(paths ...string) *Generator {
	return &Generator{cfg: Config{Files: paths}}
}

// FromConfig creates a Generator from a complete Config.
func FromConfig(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Namespace sets the React namespace stripped from descriptors.
func (g *Generator) Namespace(ns string) *Generator {
	g.cfg.Namespace = ns
	return g
}

// RequiredMarker sets the member that marks a descriptor as required.
func (g *Generator) RequiredMarker(m string) *Generator {
	g.cfg.RequiredMarker = m
	return g
}

// Element sets the qualified type emitted for element and node descriptors.
func (g *Generator) Element(name string) *Generator {
	g.cfg.Element = name
	return g
}

// Indent sets the indentation unit of emitted aliases.
func (g *Generator) Indent(indent string) *Generator {
	g.cfg.Indent = indent
	return g
}

// Export emits exported type aliases.
func (g *Generator) Export() *Generator {
	g.cfg.Export = true
	return g
}

// Suffix sets the alias name suffix.
func (g *Generator) Suffix(s string) *Generator {
	g.cfg.Suffix = s
	return g
}

// BaseDir sets the directory input paths are relative to.
func (g *Generator) BaseDir(dir string) *Generator {
	g.cfg.BaseDir = dir
	return g
}

// WithLogger sets the logger. The default is slog.Default().
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// WithSink sends rewritten files to s instead of the filesystem.
func (g *Generator) WithSink(s sink.OutputSink) *Generator {
	g.sink = s
	return g
}

// Config returns a copy of the accumulated configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// ToDir converts the files and writes rewritten ones below dir, keeping
// their paths relative to the base directory.
func (g *Generator) ToDir(ctx context.Context, dir string) (*GenerateResult, error) {
	g.cfg.OutDir = dir
	g.cfg.InPlace = false
	return Generate(ctx, &g.cfg, g.options()...)
}

// InPlace converts the files and overwrites the ones that changed.
func (g *Generator) InPlace(ctx context.Context) (*GenerateResult, error) {
	g.cfg.OutDir = ""
	g.cfg.InPlace = true
	return Generate(ctx, &g.cfg, g.options()...)
}

// Generate converts the files. Rewritten files are returned, and written
// only when a sink was set with WithSink.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	return Generate(ctx, &g.cfg, g.options()...)
}

func (g *Generator) options() []Option {
	var opts []Option
	if g.logger != nil {
		opts = append(opts, WithLogger(g.logger))
	}
	if g.sink != nil {
		opts = append(opts, WithSink(g.sink))
	}
	return opts
}

// Option configures Generate.
type Option func(*options)

type options struct {
	logger *slog.Logger
	sink   sink.OutputSink
}

// WithLogger sets the logger used by Generate.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSink sets the destination of rewritten files, overriding OutDir and
// InPlace.
func WithSink(s sink.OutputSink) Option {
	return func(o *options) { o.sink = s }
}

// Generate validates cfg and converts every file it names, several at a
// time. Results keep the order of cfg.Files. Components that cannot be
// converted are reported in GenerateResult.Skipped and files that cannot be
// parsed in GenerateResult.Failed; unreadable files and failed writes abort
// the run.
func Generate(ctx context.Context, cfg *Config, opts ...Option) (*GenerateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	base := cfg.BaseDir
	if base == "" {
		base = "."
	}
	out := o.sink
	switch {
	case out != nil:
	case cfg.InPlace:
		out = sink.NewFilesystemSink(base)
	case cfg.OutDir != "":
		out = sink.NewFilesystemSink(cfg.OutDir)
	}

	t := &transform.Transformer{
		Splicer:   cfg.splicer(),
		Converter: cfg.converter(),
		Logger:    o.logger,
	}

	results := make([]*transform.Result, len(cfg.Files))
	failures := make([]error, len(cfg.Files))
	paths := make([]string, len(cfg.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range cfg.Files {
		g.Go(func() error {
			rel, err := relPath(base, file)
			if err != nil {
				return err
			}
			src, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(rel)))
			if err != nil {
				return Errorf(CodeReadFailed, "reading %s: %w", rel, err).WithDetail("file", rel)
			}

			paths[i] = rel
			tr, err := t.Transform(gctx, rel, src)
			if err != nil {
				if gctx.Err() != nil {
					return AsError(err)
				}
				o.logger.WarnContext(gctx, "file skipped", slog.String("file", rel), slog.Any("error", err))
				failures[i] = Errorf(CodeParseFailed, "%w", err).WithDetail("file", rel)
				return nil
			}
			if tr.Changed && out != nil {
				if err := out.WriteFile(gctx, rel, tr.Output); err != nil {
					return Errorf(CodeWriteFailed, "writing %s: %w", rel, err).WithDetail("file", rel)
				}
			}
			results[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &GenerateResult{}
	for i, tr := range results {
		rel := paths[i]
		if failures[i] != nil {
			res.Failed = append(res.Failed, FailedFile{File: rel, Err: failures[i]})
			continue
		}
		for _, s := range tr.Skipped {
			res.Skipped = append(res.Skipped, SkippedComponent{File: rel, Component: s.Component, Err: s.Err})
		}
		if !tr.Changed {
			res.Unchanged = append(res.Unchanged, rel)
			continue
		}
		res.Files = append(res.Files, OutputFile{Path: rel, Content: tr.Output, Components: tr.Converted})
	}
	return res, nil
}

// relPath returns file as a clean slash-separated path relative to base.
func relPath(base, file string) (string, error) {
	rel := file
	if filepath.IsAbs(file) {
		absBase, err := filepath.Abs(base)
		if err != nil {
			return "", Errorf(CodeInvalidConfig, "resolving base directory: %w", err)
		}
		if rel, err = filepath.Rel(absBase, file); err != nil {
			return "", Errorf(CodeInvalidConfig, "%s is not below %s", file, base)
		}
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	if err := sink.ValidatePath(rel); err != nil {
		return "", Errorf(CodeInvalidConfig, "file %s: %w", file, err).WithDetail("file", file)
	}
	return rel, nil
}

func (r *GenerateResult) String() string {
	s := fmt.Sprintf("%d rewritten, %d unchanged, %d components skipped", len(r.Files), len(r.Unchanged), len(r.Skipped))
	if len(r.Failed) > 0 {
		s += fmt.Sprintf(", %d files failed", len(r.Failed))
	}
	return s
}
