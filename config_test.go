package propflow

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string // detail key, empty for valid configs
	}{
		{"minimal", Config{Files: []string{"a.js"}}, ""},
		{"full", Config{Files: []string{"a.js"}, Namespace: "R", RequiredMarker: "req", Indent: "\t", Suffix: "T", OutDir: "out"}, ""},
		{"in place", Config{Files: []string{"a.js"}, InPlace: true}, ""},
		{"empty file name", Config{Files: []string{""}}, "Config.Files[0]"},
		{"bad namespace", Config{Files: []string{"a.js"}, Namespace: "my-ns"}, "Config.Namespace"},
		{"bad marker", Config{Files: []string{"a.js"}, RequiredMarker: "1st"}, "Config.RequiredMarker"},
		{"bad indent", Config{Files: []string{"a.js"}, Indent: "--"}, "Config.Indent"},
		{"bad suffix", Config{Files: []string{"a.js"}, Suffix: "Props!"}, "Config.Suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var pfErr *Error
			if !errors.As(err, &pfErr) {
				t.Fatalf("Validate() error = %v, want *Error", err)
			}
			if pfErr.Code != CodeInvalidConfig {
				t.Errorf("Code = %s, want %s", pfErr.Code, CodeInvalidConfig)
			}
			if _, ok := pfErr.Details[tt.wantErr]; !ok {
				t.Errorf("Details = %v, want key %q", pfErr.Details, tt.wantErr)
			}
		})
	}
}

func TestConfig_Converter(t *testing.T) {
	cfg := Config{Element: "Preact.VNode"}
	opts := cfg.converter().Options()
	if opts.Element.Qualifier != "Preact" || opts.Element.Name != "VNode" {
		t.Errorf("Element = %+v", opts.Element)
	}
	if opts.Namespace != "React" || opts.RequiredMarker != "isRequired" {
		t.Errorf("defaults not applied: %+v", opts)
	}
}
