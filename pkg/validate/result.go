package validate

import (
	"fmt"
	"slices"

	"github.com/matzehuels/depdoc/pkg/deps"
)

// Kind tags a discrepancy Result.
type Kind int

// Discrepancy kinds, in report order within a manager.
const (
	KindMissing Kind = iota
	KindExtra
	KindVersionMismatch
	KindUnsupportedManager
)

var kindNames = map[Kind]string{
	KindMissing:            "missing",
	KindExtra:              "extra",
	KindVersionMismatch:    "version_mismatch",
	KindUnsupportedManager: "unsupported_manager",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name for JSON and YAML reports.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown discrepancy kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown discrepancy kind %q", b)
}

// Result is one discrepancy between the installed and documented inventories.
// Which fields are set depends on Kind:
//
//	KindVersionMismatch:    Manager, Group, Name, Documented, Installed
//	KindMissing:            Manager, Group, Name, Documented
//	KindExtra:              Manager, Group, Name, Installed
//	KindUnsupportedManager: Manager
type Result struct {
	Kind       Kind         `json:"kind" yaml:"kind"`
	Manager    deps.Manager `json:"manager" yaml:"manager"`
	Group      string       `json:"group,omitempty" yaml:"group,omitempty"`
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Documented string       `json:"documented,omitempty" yaml:"documented,omitempty"`
	Installed  string       `json:"installed,omitempty" yaml:"installed,omitempty"`
}

// VersionMismatch reports a package whose documented and installed versions differ.
func VersionMismatch(m deps.Manager, group, name, documented, installed string) Result {
	return Result{Kind: KindVersionMismatch, Manager: m, Group: group, Name: name, Documented: documented, Installed: installed}
}

// MissingPackage reports a documented package that is not installed.
func MissingPackage(m deps.Manager, group, name, documented string) Result {
	return Result{Kind: KindMissing, Manager: m, Group: group, Name: name, Documented: documented}
}

// ExtraPackage reports an installed package that is not documented.
func ExtraPackage(m deps.Manager, group, name, installed string) Result {
	return Result{Kind: KindExtra, Manager: m, Group: group, Name: name, Installed: installed}
}

// UnsupportedManager reports a documented manager no adapter can read.
func UnsupportedManager(m deps.Manager) Result {
	return Result{Kind: KindUnsupportedManager, Manager: m}
}

// OfKind returns the results whose kind is one of kinds, in order.
func OfKind(results []Result, kinds ...Kind) []Result {
	var out []Result
	for _, r := range results {
		if slices.Contains(kinds, r.Kind) {
			out = append(out, r)
		}
	}
	return out
}

// String renders the result as a single human-readable line.
func (r Result) String() string {
	switch r.Kind {
	case KindVersionMismatch:
		return fmt.Sprintf("[%s] %s: version mismatch, documented %q but installed %q", r.Manager, r.label(), r.Documented, r.Installed)
	case KindMissing:
		return fmt.Sprintf("[%s] %s: documented with version %q but not installed", r.Manager, r.label(), r.Documented)
	case KindExtra:
		return fmt.Sprintf("[%s] %s: installed with version %q but not documented", r.Manager, r.label(), r.Installed)
	case KindUnsupportedManager:
		return fmt.Sprintf("[%s] package manager is documented but not supported", r.Manager)
	default:
		return fmt.Sprintf("[%s] %s: %s", r.Manager, r.label(), r.Kind)
	}
}

func (r Result) label() string {
	if r.Group != deps.DefaultGroup {
		return fmt.Sprintf("%s (%s)", r.Name, r.Group)
	}
	return r.Name
}
