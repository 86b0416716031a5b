// Package rewrite implements the transform command.
package rewrite

import (
	"fmt"
	"log/slog"

	"github.com/broady/propflow"
	"github.com/broady/propflow/cmd/propflow/internal/env"
)

type Cmd struct {
	Files   []string `arg:"" type:"existingfile" help:"Component files to convert."`
	Out     string   `help:"Write rewritten files below this directory." short:"o" xor:"dest"`
	Write   bool     `help:"Overwrite the input files." short:"w" xor:"dest"`
	BaseDir string   `help:"Directory input paths are relative to." default:"." name:"base-dir"`
	Export  bool     `help:"Emit exported type aliases."`
	Indent  string   `help:"Indentation unit of type aliases (default two spaces)."`
	Suffix  string   `help:"Suffix appended to component names to form alias names." default:"Props"`
}

func (c *Cmd) Run(e *env.Env) error {
	g := propflow.FromFiles(c.Files...).
		Namespace(e.Namespace).
		BaseDir(c.BaseDir).
		Indent(c.Indent).
		Suffix(c.Suffix).
		WithLogger(e.Logger)
	if c.Export {
		g = g.Export()
	}

	var (
		res *propflow.GenerateResult
		err error
	)
	switch {
	case c.Write:
		res, err = g.InPlace(e.Ctx)
	case c.Out != "":
		res, err = g.ToDir(e.Ctx, c.Out)
	default:
		res, err = g.Generate(e.Ctx)
	}
	if err != nil {
		return err
	}

	if !c.Write && c.Out == "" {
		for _, f := range res.Files {
			fmt.Fprintf(e.Stdout, "// %s\n%s", f.Path, f.Content)
		}
	}
	e.Logger.InfoContext(e.Ctx, "done",
		slog.Int("rewritten", len(res.Files)),
		slog.Int("unchanged", len(res.Unchanged)),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("failed", len(res.Failed)),
	)
	return nil
}
