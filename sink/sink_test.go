package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"simple", "Button.js", ""},
		{"nested", "src/components/Button.js", ""},
		{"dotted name", "a..b.js", ""},
		{"empty", "", "empty"},
		{"absolute", "/etc/passwd", "absolute paths not allowed"},
		{"windows drive", "C:/x.js", "absolute paths not allowed"},
		{"traversal", "src/../x.js", "path traversal not allowed"},
		{"leading traversal", "../x.js", "path traversal not allowed"},
		{"unclean", "src//x.js", "not clean"},
		{"dot segment", "./x.js", "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidatePath(%q) error = %v", tt.path, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidatePath(%q) error = %v, want %q", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemSink_WriteFile(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "src/Button.js", []byte("/* @flow */\n")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "src", "Button.js"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "/* @flow */\n" {
		t.Errorf("content = %q", got)
	}

	// Overwrites keep the existing permission.
	full := filepath.Join(root, "src", "Button.js")
	if err := os.Chmod(full, 0600); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "src/Button.js", []byte("v2")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	fi, err := os.Stat(full)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Join(root, "src"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".propflow-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFilesystemSink_Errors(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	if err := s.WriteFile(context.Background(), "../escape.js", nil); err == nil {
		t.Error("WriteFile() should reject traversal")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.WriteFile(ctx, "x.js", nil); err != context.Canceled {
		t.Errorf("WriteFile() error = %v, want context.Canceled", err)
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	content := []byte("a")
	if err := s.WriteFile(ctx, "b.js", content); err != nil {
		t.Fatal(err)
	}
	content[0] = 'z'
	if err := s.WriteFile(ctx, "a.js", []byte("x")); err != nil {
		t.Fatal(err)
	}

	if got := string(s.Get("b.js")); got != "a" {
		t.Errorf("Get() = %q, want %q (sink must copy input)", got, "a")
	}
	if s.Get("missing.js") != nil {
		t.Error("Get() of a missing path should be nil")
	}
	if got := s.Paths(); len(got) != 2 || got[0] != "a.js" || got[1] != "b.js" {
		t.Errorf("Paths() = %v", got)
	}
	if err := s.WriteFile(ctx, "", nil); err == nil {
		t.Error("WriteFile() should reject an empty path")
	}
}
