package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "util.cpp", "int x;\n")
	writeFile(t, dir, "README.md", "# readme\n")

	d := New(dir, []string{".go", ".cpp"}, nil, 0)
	files, skipped, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("unexpected skips: %v", skipped)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	for _, f := range files {
		if f.RelPath == "README.md" {
			t.Error("markdown file should not be discovered")
		}
	}
}

func TestDiscoverAppliesExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/a.go", "package a\n")
	writeFile(t, dir, "vendor/dep/b.go", "package b\n")

	d := New(dir, []string{".go"}, []string{"vendor/**"}, 0)
	files, _, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].RelPath != "src/a.go" {
		t.Errorf("expected only src/a.go, got %+v", files)
	}
}

func TestDiscoverSkipsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.go", "package small\n")
	writeFile(t, dir, "big.go", strings.Repeat("x", 100))

	d := New(dir, []string{".go"}, nil, 50)
	files, skipped, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].RelPath != "small.go" {
		t.Errorf("expected only small.go, got %+v", files)
	}
	if len(skipped) != 1 || skipped[0].RelPath != "big.go" {
		t.Errorf("expected big.go skipped, got %+v", skipped)
	}
}

func TestLoadRejectsOversized(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.go", strings.Repeat("x", 200))

	_, err := Load(path, 100)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestLoadRange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "code.go", "one\ntwo\nthree\nfour\n")

	tests := []struct {
		name    string
		start   int
		end     int
		want    string
		wantErr bool
	}{
		{"middle", 2, 3, "two\nthree\n", false},
		{"whole file", 1, 4, "one\ntwo\nthree\nfour\n", false},
		{"end past eof", 3, 100, "three\nfour\n\n", false},
		{"start past eof", 50, 60, "", false},
		{"inverted range", 3, 2, "", true},
		{"zero start", 0, 2, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadRange(path, tt.start, tt.end, 0)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("LoadRange(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
