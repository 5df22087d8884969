package deps

import (
	"fmt"
	"strings"
)

// DefaultGroup is the implicit group of packages listed before any group heading.
const DefaultGroup = ""

// DevGroup holds development-only dependencies (require-dev, devDependencies).
const DevGroup = "dev"

// Package is a single documented or installed dependency.
type Package struct {
	Manager Manager // Ecosystem the package belongs to
	Name    string  // Package name, unique within manager and group
	Version string  // Opaque version string (exact, range, or locked ref)
	Group   string  // Group label; DefaultGroup when empty
}

// Key returns the identity of the package within an inventory.
func (p Package) Key() Key {
	return Key{Manager: p.Manager, Group: p.Group, Name: p.Name}
}

// String renders the package as "manager:name@version".
func (p Package) String() string {
	if p.Group != DefaultGroup {
		return fmt.Sprintf("%s/%s:%s@%s", p.Manager, p.Group, p.Name, p.Version)
	}
	return fmt.Sprintf("%s:%s@%s", p.Manager, p.Name, p.Version)
}

// Key identifies a package by manager, group and name.
type Key struct {
	Manager Manager
	Group   string
	Name    string
}

// VersionsEqual reports whether two version strings are equal.
// Versions are opaque: they are compared verbatim after trimming whitespace.
func VersionsEqual(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
