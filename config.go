package propflow

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/propflow/convert"
	"github.com/broady/propflow/flow"
	"github.com/broady/propflow/ir"
	"github.com/broady/propflow/transform"
)

var (
	validate = validator.New()
	jsIdent  = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

func init() {
	must(validate.RegisterValidation("jsident", func(fl validator.FieldLevel) bool {
		return jsIdent.MatchString(fl.Field().String())
	}))
	must(validate.RegisterValidation("indent", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), " \t") == ""
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Config holds the configuration for a conversion run.
type Config struct {
	// Namespace is the React namespace stripped from descriptors such as
	// React.PropTypes.string. Default: "React".
	Namespace string `validate:"omitempty,jsident"`

	// RequiredMarker is the member marking a descriptor as required.
	// Default: "isRequired".
	RequiredMarker string `validate:"omitempty,jsident"`

	// Element is the qualified type used for element and node descriptors.
	// Default: "React.Element".
	Element string `validate:"omitempty,max=128"`

	// Indent is the indentation unit of emitted type aliases.
	// Default: two spaces.
	Indent string `validate:"omitempty,max=8,indent"`

	// Export emits `export type` instead of `type`.
	Export bool

	// Suffix is appended to component names to form alias names.
	// Default: "Props".
	Suffix string `validate:"omitempty,jsident"`

	// BaseDir is the directory input paths are resolved against and output
	// paths are relative to. Default: ".".
	BaseDir string

	// OutDir receives rewritten files. Empty means files are only returned.
	OutDir string `validate:"excluded_with=InPlace"`

	// InPlace overwrites the input files.
	InPlace bool

	// Files are the input files, relative to BaseDir.
	Files []string `validate:"required,min=1,dive,required"`
}

// Validate checks the configuration. Failures are returned as an *Error
// with code CodeInvalidConfig and one detail per field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return AsError(err)
	}
	return nil
}

func (c *Config) converter() *convert.Converter {
	opts := convert.Options{
		Namespace:      c.Namespace,
		RequiredMarker: c.RequiredMarker,
	}
	if c.Element != "" {
		opts.Element = ir.ParseQualifiedName(c.Element)
	}
	return convert.New(opts)
}

func (c *Config) splicer() *transform.AliasSplicer {
	cfg := flow.DefaultConfig()
	if c.Indent != "" {
		cfg.Indent = c.Indent
	}
	cfg.Export = c.Export
	return &transform.AliasSplicer{Emitter: flow.NewEmitter(cfg), Suffix: c.Suffix}
}
