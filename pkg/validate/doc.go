// Package validate compares installed packages against a documented
// manifest and reports drift.
//
// # Comparison
//
// [Compare] takes a [StrictMode] policy and two inventories and returns an
// ordered list of [Result] values:
//
//	results := validate.Compare(validate.Strict(), installed, documented)
//	for _, r := range results {
//	    fmt.Println(r)
//	}
//
// Results are data, not errors: an empty list means the manifest matches,
// and callers decide how to treat a non-empty one.
//
// # Discrepancy Kinds
//
//   - [KindMissing]: documented, not installed
//   - [KindExtra]: installed, not documented
//   - [KindVersionMismatch]: present on both sides with different versions
//   - [KindUnsupportedManager]: documented manager without an adapter
//
// Missing, extra and version mismatch results are each gated by a
// [StrictMode] switch. Unsupported managers are always reported.
//
// # Ordering
//
// Output is grouped by manager in canonical order (see
// [deps.CompareManagers]), then by kind in the order above, then by package
// name. It does not depend on the order of the input inventories, so reports
// are diff-stable across runs.
package validate
