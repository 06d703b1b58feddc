// Package discovery finds and loads the source files to be scored.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInputTooLarge is returned when a file exceeds the configured size cap.
// Oversized files are rejected here, before the scoring engine ever sees
// their contents.
var ErrInputTooLarge = errors.New("input exceeds maximum file size")

// File is a discovered source file with its contents loaded.
type File struct {
	Path     string // absolute path
	RelPath  string // path relative to the discovery root
	Contents string
	Size     int64
}

// Skipped records a file that was found but not loaded, with the reason.
type Skipped struct {
	RelPath string
	Reason  string
}

// Discovery walks a root directory for source files.
type Discovery struct {
	root        string
	extensions  map[string]bool
	exclude     []string
	maxFileSize int64
}

// New creates a Discovery for the given root. Extensions are matched against
// filepath.Ext (leading dot included); exclude patterns are doublestar globs
// matched against root-relative paths.
func New(root string, extensions, exclude []string, maxFileSize int64) *Discovery {
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}
	return &Discovery{
		root:        root,
		extensions:  extSet,
		exclude:     exclude,
		maxFileSize: maxFileSize,
	}
}

// Discover walks the root and loads every matching source file. Files that
// exceed the size cap are reported in the skipped list rather than failing
// the whole walk.
func (d *Discovery) Discover() ([]File, []Skipped, error) {
	var files []File
	var skipped []Skipped

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(d.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if d.excluded(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.extensions[strings.ToLower(filepath.Ext(path))] || d.excluded(rel) {
			return nil
		}

		file, loadErr := Load(path, d.maxFileSize)
		if loadErr != nil {
			if errors.Is(loadErr, ErrInputTooLarge) {
				skipped = append(skipped, Skipped{RelPath: rel, Reason: loadErr.Error()})
				return nil
			}
			return loadErr
		}
		file.RelPath = rel
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error discovering files under %s: %w", d.root, err)
	}

	return files, skipped, nil
}

// excluded reports whether a root-relative path matches any exclude pattern.
func (d *Discovery) excluded(rel string) bool {
	for _, pattern := range d.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Load reads a single file, enforcing the size cap before reading.
func Load(path string, maxFileSize int64) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	if maxFileSize > 0 && info.Size() > maxFileSize {
		return File{}, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			ErrInputTooLarge, path, info.Size(), maxFileSize)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	return File{
		Path:     path,
		RelPath:  filepath.Base(path),
		Contents: string(contents),
		Size:     info.Size(),
	}, nil
}

// LoadRange reads the half-open line range [startLine, endLine] (1-based,
// inclusive) from a file. Lines outside the file are simply absent from the
// result.
func LoadRange(path string, startLine, endLine int, maxFileSize int64) (string, error) {
	if startLine < 1 || endLine < startLine {
		return "", fmt.Errorf("invalid line range %d-%d", startLine, endLine)
	}

	file, err := Load(path, maxFileSize)
	if err != nil {
		return "", err
	}

	lines := strings.Split(file.Contents, "\n")
	if startLine > len(lines) {
		return "", nil
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}

	var b strings.Builder
	for _, line := range lines[startLine-1 : endLine] {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
