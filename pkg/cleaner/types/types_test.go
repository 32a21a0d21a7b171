package types

import (
	"errors"
	"testing"
)

// TestParseSize verifies parsing of human-readable size strings.
func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"1024", 1024},
		{"512B", 512},
		{"100K", 100 * KiB},
		{"100KB", 100 * KiB},
		{"100KiB", 100 * KiB},
		{"50M", 50 * MiB},
		{"2G", 2 * GiB},
		{"1T", 1 * TiB},
		{"1.5M", int64(1.5 * float64(MiB))},
		{"  10M  ", 10 * MiB},
		{"10m", 10 * MiB},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseSizeErrors verifies invalid input is rejected.
func TestParseSizeErrors(t *testing.T) {
	for _, input := range []string{"", "abc", "10X", "M10"} {
		if _, err := ParseSize(input); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("ParseSize(%q): expected ErrInvalidSize, got %v", input, err)
		}
	}
	if _, err := ParseSize("-5M"); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("expected ErrNegativeSize, got %v", err)
	}
}

// TestFormatSize verifies IEC formatting.
func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1024, "1.0 KiB"},
		{1536 * 1024, "1.5 MiB"},
		{-1, "0 B"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

// TestCategoryString verifies category names.
func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryCache, "cache"},
		{CategoryTemp, "temp"},
		{CategoryBig, "big"},
		{Category(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

// TestJunkEntry verifies the entry helpers.
func TestJunkEntry(t *testing.T) {
	file := JunkEntry{Path: "/x/a.tmp", Kind: KindFile, Size: 2048, Category: CategoryTemp}
	if file.IsDir() {
		t.Error("file entry reported as directory")
	}
	if file.HumanSize() != "2.0 KiB" {
		t.Errorf("HumanSize = %q", file.HumanSize())
	}

	dir := JunkEntry{Path: "/x/empty", Kind: KindDir, Empty: true}
	if !dir.IsDir() {
		t.Error("directory entry not reported as directory")
	}
}
