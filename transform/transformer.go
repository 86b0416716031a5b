package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/broady/propflow/convert"
	"github.com/broady/propflow/flow"
	"github.com/broady/propflow/ir"
)

// ErrDuplicate is reported for a component whose propTypes were already
// declared once in the same file.
var ErrDuplicate = errors.New("propTypes declared more than once")

// Skipped records a component left untouched.
type Skipped struct {
	Component string
	Err       error
}

// Result describes the outcome of transforming one file.
type Result struct {
	// Changed reports whether at least one component was rewritten.
	Changed bool

	// Output is the rewritten source, or the input when nothing changed.
	Output []byte

	// Converted lists the rewritten components in source order.
	Converted []string

	// Skipped lists components whose propTypes could not be converted.
	Skipped []Skipped

	// Reason is set when the whole file was skipped by the Policy.
	Reason string
}

// Transformer rewrites the components of a file. Zero-valued fields use
// SyntaxLocator, an AliasSplicer with default emitter settings,
// DefaultPolicy, a default Converter and slog.Default().
type Transformer struct {
	Locator   Locator
	Splicer   Splicer
	Policy    Policy
	Converter *convert.Converter
	Logger    *slog.Logger
}

// Transform rewrites src. The edits of every component are computed against
// src and applied together. A component whose propTypes cannot be converted
// is reported in Result.Skipped and left as is.
func (t *Transformer) Transform(ctx context.Context, path string, src []byte) (*Result, error) {
	t = t.withDefaults()
	logger := t.Logger.With(slog.String("file", path))

	res := &Result{Output: src}
	ok, reason, err := t.Policy.Eligible(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !ok {
		logger.DebugContext(ctx, "file skipped", slog.String("reason", reason))
		res.Reason = reason
		return res, nil
	}

	comps, err := t.Locator.Locate(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var edits []Edit
	seen := make(map[string]bool)
	for _, c := range comps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ce, fields, err := t.component(src, c, seen)
		if err != nil {
			logger.WarnContext(ctx, "component skipped",
				slog.String("component", c.Name),
				slog.Any("error", err),
			)
			res.Skipped = append(res.Skipped, Skipped{Component: c.Name, Err: err})
			continue
		}
		logger.DebugContext(ctx, "component converted",
			slog.String("component", c.Name),
			slog.String("kind", c.Kind.String()),
			slog.Int("fields", len(fields)),
		)
		seen[c.Name] = true
		edits = append(edits, ce...)
		res.Converted = append(res.Converted, c.Name)
	}

	if len(res.Converted) == 0 {
		return res, nil
	}
	out, err := Apply(src, edits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if out, err = t.Policy.Finalize(ctx, out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	res.Changed = true
	res.Output = out
	logger.InfoContext(ctx, "file transformed", slog.Int("components", len(res.Converted)))
	return res, nil
}

// component converts the propTypes of c and returns its edits.
func (t *Transformer) component(src []byte, c Component, seen map[string]bool) ([]Edit, []*ir.Field, error) {
	if c.Err != nil {
		return nil, nil, c.Err
	}
	if seen[c.Name] {
		return nil, nil, fmt.Errorf("%s: %w", c.Name, ErrDuplicate)
	}
	fields, err := t.Converter.ConvertFields(c.Properties)
	if err != nil {
		return nil, nil, err
	}
	edits, err := t.Splicer.Splice(src, c, fields)
	if err != nil {
		return nil, nil, err
	}
	return edits, fields, nil
}

func (t *Transformer) withDefaults() *Transformer {
	c := *t
	t = &c
	if t.Locator == nil {
		t.Locator = SyntaxLocator{}
	}
	if t.Splicer == nil {
		t.Splicer = &AliasSplicer{Emitter: flow.NewEmitter(flow.DefaultConfig())}
	}
	if t.Policy == nil {
		t.Policy = DefaultPolicy{}
	}
	if t.Converter == nil {
		t.Converter = convert.New(convert.DefaultOptions())
	}
	if t.Logger == nil {
		t.Logger = slog.Default()
	}
	return t
}
