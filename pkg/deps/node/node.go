// Package node reads installed JavaScript packages from package.json and
// package-lock.json.
//
// Direct dependencies come from package.json ("dependencies" and
// "devDependencies"); installed versions come from the lockfile. Lockfile
// versions 2 and 3 are read from the "packages" map, version 1 from the
// nested "dependencies" map.
package node

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
)

const (
	// ProjectFile declares the project's direct dependencies.
	ProjectFile = "package.json"
	// LockFile records the installed version of every package.
	LockFile = "package-lock.json"
)

// Adapter implements deps.Adapter for npm projects.
type Adapter struct{}

var _ deps.Adapter = Adapter{}

func (Adapter) Manager() deps.Manager { return deps.Node }

// Detect reports whether dir contains a package.json.
func (Adapter) Detect(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ProjectFile))
	return err == nil && !info.IsDir()
}

// Installed returns the direct dependencies of the project in dir with
// their locked versions, sorted by name.
func (Adapter) Installed(dir string) (*deps.Inventory, error) {
	var pkg packageFile
	if err := deps.ReadJSON(filepath.Join(dir, ProjectFile), &pkg); err != nil {
		return nil, err
	}
	var lock lockFile
	if err := deps.ReadJSON(filepath.Join(dir, LockFile), &lock); err != nil {
		return nil, err
	}

	var b deps.Builder
	add := func(declared map[string]string, group string) error {
		for name := range declared {
			if err := errors.ValidatePackageName(name); err != nil {
				return errors.Wrap(errors.ErrCodeParse, err, "%s: invalid dependency", ProjectFile)
			}
			version, ok := lock.version(name)
			if !ok {
				return errors.New(errors.ErrCodeParse, "%s: %s is declared but not locked; run npm install", LockFile, name)
			}
			b.Add(deps.Package{Manager: deps.Node, Name: name, Version: version, Group: group})
		}
		return nil
	}
	if err := add(pkg.Dependencies, deps.DefaultGroup); err != nil {
		return nil, err
	}
	if err := add(pkg.DevDependencies, deps.DevGroup); err != nil {
		return nil, err
	}

	return b.Inventory().Sorted(), nil
}

type packageFile struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type lockFile struct {
	LockfileVersion int                    `json:"lockfileVersion"`
	Packages        map[string]lockedEntry `json:"packages"`
	Dependencies    map[string]lockedEntry `json:"dependencies"`
}

type lockedEntry struct {
	Version string `json:"version"`
}

// version looks up the top-level installed version of name.
func (l lockFile) version(name string) (string, bool) {
	if e, ok := l.Packages["node_modules/"+name]; ok && e.Version != "" {
		return e.Version, true
	}
	if e, ok := l.Dependencies[name]; ok && e.Version != "" {
		return e.Version, true
	}
	return "", false
}
