package parser

import (
	"fmt"
	"os"
	"path/filepath"
)

// SourceProvider resolves include/incbin paths and reads file contents. The core parser depends
// only on this interface, never on the os package directly, so tests can substitute an in-memory
// provider without touching disk.
type SourceProvider interface {
	// Read returns the full contents of path.
	Read(path string) (string, error)
	// ReadBinary returns the full contents of path as raw bytes, for incbin.
	ReadBinary(path string) ([]byte, error)
	// Resolve returns the canonical path used as a lexer-stack key for `include`/`incbin`,
	// relative to the directory containing fromPath (the file doing the including).
	Resolve(fromPath, includePath string) (string, error)
}

// FileSource implements SourceProvider over the local filesystem. IncludePaths, when non-empty,
// are tried in order as additional roots for an include/incbin target that isn't found relative
// to the including file — the config package's assembler.include_paths setting feeds this.
type FileSource struct {
	IncludePaths []string
}

// NewFileSource returns a SourceProvider backed by os.ReadFile with no extra include search path.
func NewFileSource() FileSource { return FileSource{} }

// NewFileSourceWithIncludePaths returns a SourceProvider that additionally searches paths, in
// order, for an include/incbin target not found next to the including file.
func NewFileSourceWithIncludePaths(paths []string) FileSource {
	return FileSource{IncludePaths: paths}
}

func (FileSource) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func (FileSource) ReadBinary(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (f FileSource) Resolve(fromPath, includePath string) (string, error) {
	dir := filepath.Dir(fromPath)
	joined := filepath.Join(dir, includePath)
	if abs, err := filepath.Abs(joined); err == nil {
		if _, statErr := os.Stat(abs); statErr == nil {
			return abs, nil
		}
	}

	for _, root := range f.IncludePaths {
		candidate := filepath.Join(root, includePath)
		if abs, err := filepath.Abs(candidate); err == nil {
			if _, statErr := os.Stat(abs); statErr == nil {
				return abs, nil
			}
		}
	}

	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolving %s from %s: %w", includePath, fromPath, err)
	}
	return abs, nil
}
