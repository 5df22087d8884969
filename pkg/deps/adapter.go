package deps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/depdoc/pkg/errors"
)

// Adapter reads the installed packages of one ecosystem from a project directory.
type Adapter interface {
	// Manager returns the ecosystem this adapter reads.
	Manager() Manager
	// Detect reports whether dir contains a project of this ecosystem.
	Detect(dir string) bool
	// Installed reads the installed packages in dir. It fails when the
	// ecosystem's metadata files are missing or malformed.
	Installed(dir string) (*Inventory, error)
}

// Installed collects the installed packages of every adapter that detects
// dir, sorted by manager then name. The first adapter failure aborts.
func Installed(dir string, adapters ...Adapter) (*Inventory, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", dir)
	}

	var parts []*Inventory
	for _, a := range adapters {
		if !a.Detect(dir) {
			continue
		}
		inv, err := a.Installed(dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Manager(), err)
		}
		parts = append(parts, inv)
	}
	return NewInventory().Merge(parts...).Sorted(), nil
}

// Filter returns the adapters whose manager is listed in names.
// An empty names list keeps every adapter.
func Filter(adapters []Adapter, names []string) ([]Adapter, error) {
	if len(names) == 0 {
		return adapters, nil
	}
	want := make(map[Manager]bool, len(names))
	for _, n := range names {
		m, ok := LookupManager(n)
		if !ok || !IsSupported(m) {
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported package manager: %q", n)
		}
		want[m] = true
	}
	var out []Adapter
	for _, a := range adapters {
		if want[a.Manager()] {
			out = append(out, a)
		}
	}
	return out, nil
}

// ReadJSON decodes the JSON file at path into v. A missing or unreadable
// file is a filesystem error; malformed content is a parse error.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileSystem, err, "missing %s", filepath.Base(path))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileSystem, err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "decode %s", path)
	}
	return nil
}
