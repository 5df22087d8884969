package validate

import (
	"cmp"
	"slices"

	"github.com/matzehuels/depdoc/pkg/deps"
)

// Compare reports the discrepancies between the installed and the
// documented inventory under policy.
//
// Managers are visited in canonical order. A documented manager without an
// adapter yields a single KindUnsupportedManager result and is not compared
// further, even when its section lists no packages. Within a manager, results are ordered by kind (missing, extra,
// version mismatch), then name, then group. Versions are compared as opaque
// strings after trimming whitespace.
//
// Compare never modifies its inputs; nil inventories are treated as empty.
// An empty result means the manifest matches.
func Compare(policy StrictMode, installed, documented *deps.Inventory) []Result {
	var results []Result
	for _, m := range managers(installed, documented) {
		if documented.HasManager(m) && !deps.IsSupported(m) {
			results = append(results, UnsupportedManager(m))
			continue
		}
		results = append(results, compareManager(policy, installed.ByManager(m), documented.ByManager(m), installed, documented)...)
	}
	return results
}

func compareManager(policy StrictMode, instPkgs, docPkgs []deps.Package, installed, documented *deps.Inventory) []Result {
	var out []Result
	for _, d := range docPkgs {
		i, ok := installed.Get(d.Key())
		switch {
		case !ok:
			if policy.IsStrictOnMissing() {
				out = append(out, MissingPackage(d.Manager, d.Group, d.Name, d.Version))
			}
		case !deps.VersionsEqual(d.Version, i.Version):
			if policy.IsStrictOnVersionMismatch() {
				out = append(out, VersionMismatch(d.Manager, d.Group, d.Name, d.Version, i.Version))
			}
		}
	}
	if policy.IsStrictOnExtra() {
		for _, i := range instPkgs {
			if !documented.Has(i.Key()) {
				out = append(out, ExtraPackage(i.Manager, i.Group, i.Name, i.Version))
			}
		}
	}

	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Group, b.Group),
		)
	})
	return out
}

// managers returns the union of managers of both inventories in canonical order.
func managers(invs ...*deps.Inventory) []deps.Manager {
	var out []deps.Manager
	for _, inv := range invs {
		for _, m := range inv.Managers() {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}
	slices.SortFunc(out, deps.CompareManagers)
	return out
}
