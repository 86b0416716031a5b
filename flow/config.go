package flow

// Config controls Flow output formatting.
type Config struct {
	// Indent is the string used per nesting level. Default: two spaces.
	Indent string

	// EmitComments preserves descriptor comments in the output.
	EmitComments bool

	// Export adds the 'export' modifier to type aliases.
	Export bool
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		Indent:       "  ",
		EmitComments: true,
	}
}
