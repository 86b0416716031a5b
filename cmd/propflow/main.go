package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/broady/propflow"
	"github.com/broady/propflow/cmd/propflow/internal/env"
	"github.com/broady/propflow/cmd/propflow/internal/expr"
	"github.com/broady/propflow/cmd/propflow/internal/fields"
	"github.com/broady/propflow/cmd/propflow/internal/rewrite"
)

type CLI struct {
	Namespace string `help:"React namespace stripped from descriptors." default:"React" env:"PROPFLOW_NAMESPACE"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error" env:"PROPFLOW_LOG_LEVEL" name:"log-level"`

	Version   VersionCmd  `cmd:"" help:"Print version information."`
	Convert   expr.Cmd    `cmd:"" help:"Print the Flow type of PropTypes descriptors."`
	Fields    fields.Cmd  `cmd:"" help:"Print a Flow type alias for a propTypes object literal."`
	Transform rewrite.Cmd `cmd:"" help:"Replace propTypes with Flow type aliases in component files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(e *env.Env) error {
	fmt.Fprintln(e.Stdout, Version())
	return nil
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("propflow"),
		kong.Description("Convert React PropTypes declarations to Flow type annotations."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := newParser(cli, stdout, stderr)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return propflow.Errorf(propflow.CodeInvalidConfig, "%w", err)
	}

	logger, err := env.NewLogger(stderr, cli.LogLevel)
	if err != nil {
		return propflow.Errorf(propflow.CodeInvalidConfig, "%w", err)
	}
	return kctx.Run(&env.Env{
		Ctx:       ctx,
		Logger:    logger,
		Stdin:     stdin,
		Stdout:    stdout,
		Namespace: cli.Namespace,
	})
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "propflow: %v\n", err)
		stop()
		os.Exit(propflow.AsError(err).Code.ExitCode())
	}
}
