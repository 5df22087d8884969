package deps

import (
	"slices"
	"strings"
)

// Manager identifies a package ecosystem (e.g., "composer", "node").
type Manager string

// Known managers, in canonical order.
const (
	Composer Manager = "composer"
	Node     Manager = "node"
	Pip      Manager = "pip"
	Bundler  Manager = "bundler"
	Cargo    Manager = "cargo"
	Maven    Manager = "maven"
	Go       Manager = "go"
)

// known lists every manager a manifest may name, in canonical order.
var known = []Manager{Composer, Node, Pip, Bundler, Cargo, Maven, Go}

// supported lists managers that have an installed-package adapter.
var supported = []Manager{Composer, Node}

// aliases maps lowercase heading text to a manager.
var aliases = map[string]Manager{
	"composer":   Composer,
	"php":        Composer,
	"packagist":  Composer,
	"node":       Node,
	"nodejs":     Node,
	"node.js":    Node,
	"npm":        Node,
	"javascript": Node,
	"pip":        Pip,
	"python":     Pip,
	"pypi":       Pip,
	"bundler":    Bundler,
	"ruby":       Bundler,
	"rubygems":   Bundler,
	"cargo":      Cargo,
	"rust":       Cargo,
	"crates":     Cargo,
	"maven":      Maven,
	"java":       Maven,
	"go":         Go,
	"golang":     Go,
}

// LookupManager resolves heading text to a known manager.
// Matching is case-insensitive and ignores surrounding whitespace.
func LookupManager(name string) (Manager, bool) {
	m, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// KnownManagers returns all managers a manifest may name, in canonical order.
func KnownManagers() []Manager { return slices.Clone(known) }

// SupportedManagers returns the managers that have an adapter, in canonical order.
func SupportedManagers() []Manager { return slices.Clone(supported) }

// IsSupported reports whether an adapter exists for m.
func IsSupported(m Manager) bool { return slices.Contains(supported, m) }

// Rank returns the canonical sort position of m.
// Unknown managers sort after all known ones.
func (m Manager) Rank() int {
	if i := slices.Index(known, m); i >= 0 {
		return i
	}
	return len(known)
}

// Title returns the display name used for manifest headings.
func (m Manager) Title() string {
	if m == "" {
		return ""
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

// CompareManagers orders managers canonically, falling back to name order
// for managers outside the known set.
func CompareManagers(a, b Manager) int {
	if ra, rb := a.Rank(), b.Rank(); ra != rb {
		return ra - rb
	}
	return strings.Compare(string(a), string(b))
}
