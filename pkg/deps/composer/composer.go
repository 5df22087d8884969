// Package composer reads installed PHP packages from composer.json and
// composer.lock.
//
// Direct requirements come from composer.json ("require" and "require-dev");
// the installed version of each is taken from composer.lock. Development
// requirements are placed in the [deps.DevGroup] group. Platform
// requirements (php, ext-*, lib-*, composer-*-api) are not packages and are
// skipped.
package composer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
)

const (
	// ProjectFile declares the project's direct requirements.
	ProjectFile = "composer.json"
	// LockFile records the installed version of every package.
	LockFile = "composer.lock"
)

// Adapter implements deps.Adapter for composer projects.
type Adapter struct{}

var _ deps.Adapter = Adapter{}

func (Adapter) Manager() deps.Manager { return deps.Composer }

// Detect reports whether dir contains a composer.json.
func (Adapter) Detect(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ProjectFile))
	return err == nil && !info.IsDir()
}

// Installed returns the direct requirements of the project in dir with
// their locked versions, sorted by name.
func (Adapter) Installed(dir string) (*deps.Inventory, error) {
	var comp composerFile
	if err := deps.ReadJSON(filepath.Join(dir, ProjectFile), &comp); err != nil {
		return nil, err
	}
	var lock lockFile
	if err := deps.ReadJSON(filepath.Join(dir, LockFile), &lock); err != nil {
		return nil, err
	}

	locked := lock.versions()

	var b deps.Builder
	add := func(reqs map[string]string, group string) error {
		for name := range reqs {
			if isPlatformRequirement(name) {
				continue
			}
			if err := errors.ValidatePackageName(name); err != nil {
				return errors.Wrap(errors.ErrCodeParse, err, "%s: invalid requirement", ProjectFile)
			}
			version, ok := locked[strings.ToLower(name)]
			if !ok {
				return errors.New(errors.ErrCodeParse, "%s: %s is required but not locked; run composer install", LockFile, name)
			}
			b.Add(deps.Package{Manager: deps.Composer, Name: name, Version: version, Group: group})
		}
		return nil
	}
	if err := add(comp.Require, deps.DefaultGroup); err != nil {
		return nil, err
	}
	if err := add(comp.RequireDev, deps.DevGroup); err != nil {
		return nil, err
	}

	return b.Inventory().Sorted(), nil
}

// isPlatformRequirement reports whether name is a platform package rather
// than an installable dependency.
func isPlatformRequirement(name string) bool {
	name = strings.ToLower(name)
	switch {
	case name == "php", name == "hhvm", name == "composer":
		return true
	case name == "composer-plugin-api", name == "composer-runtime-api":
		return true
	case strings.HasPrefix(name, "php-"), strings.HasPrefix(name, "ext-"), strings.HasPrefix(name, "lib-"):
		return true
	}
	return false
}

type composerFile struct {
	Name       string            `json:"name"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

type lockFile struct {
	Packages    []lockedPackage `json:"packages"`
	PackagesDev []lockedPackage `json:"packages-dev"`
}

type lockedPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// versions indexes locked versions by lowercase package name;
// composer package names are case-insensitive.
func (l lockFile) versions() map[string]string {
	out := make(map[string]string, len(l.Packages)+len(l.PackagesDev))
	for _, list := range [][]lockedPackage{l.Packages, l.PackagesDev} {
		for _, p := range list {
			out[strings.ToLower(p.Name)] = p.Version
		}
	}
	return out
}
