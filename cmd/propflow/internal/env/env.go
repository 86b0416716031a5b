// Package env carries process-wide state shared by propflow subcommands.
package env

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/broady/propflow/convert"
)

// Env is bound into every command's Run method.
type Env struct {
	Ctx    context.Context
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer

	// Namespace is the React namespace set by the global --namespace flag.
	Namespace string
}

// Converter returns a converter honoring the global flags.
func (e *Env) Converter() *convert.Converter {
	return convert.New(convert.Options{Namespace: e.Namespace})
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// ReadInput reads the named file, or stdin for "-".
func (e *Env) ReadInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(e.Stdin)
	}
	return os.ReadFile(name)
}
