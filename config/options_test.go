package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCursorOptions(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		dir     string
		pointer string
		wantErr string
	}{
		{
			name: "yaml", file: "theme.yaml",
			content: "dir: cursors\npointer:\n  name: hand\n  offset: {x: 4, y: 4}\n",
			dir:     "cursors", pointer: "hand",
		},
		{
			name: "yml extension", file: "theme.YML",
			content: "allScroll:\n  name: four-way\n",
		},
		{
			name: "toml", file: "theme.toml",
			content: "dir = 'cursors/toml'\n[pointer]\nname = 'hand'\n",
			dir:     "cursors/toml", pointer: "hand",
		},
		{name: "empty yaml", file: "empty.yaml", content: ""},
		{name: "unknown yaml key", file: "bad.yaml", content: "colour: red\n", wantErr: "decode"},
		{name: "unknown toml key", file: "bad.toml", content: "colour = 'red'\n", wantErr: "decode"},
		{name: "unsupported format", file: "theme.json", content: "{}", wantErr: "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			opts, err := LoadCursorOptions(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadCursorOptions() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCursorOptions() error = %v", err)
			}
			if opts.Dir != tt.dir {
				t.Errorf("Dir = %q, want %q", opts.Dir, tt.dir)
			}
			if tt.pointer != "" && (opts.Pointer == nil || opts.Pointer.Name != tt.pointer) {
				t.Errorf("Pointer = %+v, want %s", opts.Pointer, tt.pointer)
			}
		})
	}

	if _, err := LoadCursorOptions(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
