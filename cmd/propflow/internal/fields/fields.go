// Package fields implements the fields command.
package fields

import (
	"bytes"
	"fmt"

	"github.com/broady/propflow/cmd/propflow/internal/env"
	"github.com/broady/propflow/flow"
	"github.com/broady/propflow/parse"
)

type Cmd struct {
	File   string `arg:"" default:"-" help:"File holding a propTypes object literal, or - for stdin."`
	Name   string `help:"Type alias name." default:"Props" short:"n"`
	Export bool   `help:"Emit an exported type alias."`
	Indent string `help:"Indentation unit (default two spaces)."`
}

func (c *Cmd) Run(e *env.Env) error {
	src, err := e.ReadInput(c.File)
	if err != nil {
		return err
	}
	props, err := parse.Properties(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	fields, err := e.Converter().ConvertFields(props)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	cfg := flow.DefaultConfig()
	if c.Indent != "" {
		cfg.Indent = c.Indent
	}
	cfg.Export = c.Export
	var buf bytes.Buffer
	if err := flow.NewEmitter(cfg).EmitTypeAlias(&buf, c.Name, fields); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = e.Stdout.Write(buf.Bytes())
	return err
}
