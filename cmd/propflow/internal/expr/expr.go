// Package expr implements the convert command.
package expr

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/broady/propflow/cmd/propflow/internal/env"
	"github.com/broady/propflow/flow"
	"github.com/broady/propflow/parse"
)

type Cmd struct {
	Exprs []string `arg:"" name:"descriptor" help:"PropTypes descriptors, e.g. 'PropTypes.arrayOf(PropTypes.string)'."`
	JSON  bool     `help:"Print the type annotation tree as JSON." short:"j"`
}

func (c *Cmd) Run(e *env.Env) error {
	conv := e.Converter()
	em := flow.NewEmitter(flow.DefaultConfig())

	var errs []error
	for _, src := range c.Exprs {
		d, err := parse.Expr(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src, err))
			continue
		}
		a, err := conv.Convert("", d, nil, nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src, err))
			continue
		}

		if c.JSON {
			b, err := json.MarshalIndent(a, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(e.Stdout, string(b))
			continue
		}
		s, err := em.EmitTypeExpr(a)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.Stdout, s)
	}
	return errors.Join(errs...)
}
