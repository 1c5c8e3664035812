package utils

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.config/tidystreak/tidystreak.db", filepath.Join(home, ".config/tidystreak/tidystreak.db")},
		{"/var/lib/tidystreak.db", "/var/lib/tidystreak.db"},
		{"relative/~/file.db", "relative/~/file.db"},
		{"postgres://user@localhost/tidystreak", "postgres://user@localhost/tidystreak"},
	}

	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
