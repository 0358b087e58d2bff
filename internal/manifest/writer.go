package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Write validates m and writes it as indented JSON to dir/package.json.
func Write(fsys afero.Fs, dir string, m *Manifest) (string, error) {
	result, err := Validate(m)
	if err != nil {
		return "", err
	}
	if !result.Valid {
		return "", &ValidationError{Issues: result.Issues}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, FileName)
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Read decodes the package.json at path.
func Read(fsys afero.Fs, path string) (*Package, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &pkg, nil
}
