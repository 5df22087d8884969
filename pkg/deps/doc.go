// Package deps defines the package inventory model shared by the manifest
// parser, the package manager adapters and the validator.
//
// # Packages and Inventories
//
// A [Package] is a value: manager, name, version and an optional group
// label. An [Inventory] is an ordered collection of packages that is unique
// by [Key] (manager, group, name). The flat order is the source of truth;
// lookups go through an index built on construction:
//
//	inv := deps.NewInventory(
//	    deps.Package{Manager: deps.Composer, Name: "monolog/monolog", Version: "2.9.1"},
//	    deps.Package{Manager: deps.Node, Name: "lodash", Version: "4.17.21", Group: deps.DevGroup},
//	)
//	p, ok := inv.Get(deps.Key{Manager: deps.Node, Group: deps.DevGroup, Name: "lodash"})
//
// Adding a package whose key already exists replaces the stored package in
// place, so the last write wins and the first position is kept.
//
// # Managers
//
// [Manager] names an ecosystem. The known set (composer, node, pip, bundler,
// cargo, maven, go) has a fixed canonical order used for all output. Only
// composer and node have adapters; see [IsSupported].
//
// # Adapters
//
// An [Adapter] reads installed packages for one manager from a project
// directory. [Installed] runs every adapter that detects the directory and
// merges the results:
//
//	inv, err := deps.Installed(dir, composer.Adapter{}, node.Adapter{})
//
// Adapters live in subpackages:
//
//   - [composer]: composer.json + composer.lock
//   - [node]: package.json + package-lock.json
//
// [composer]: github.com/matzehuels/depdoc/pkg/deps/composer
// [node]: github.com/matzehuels/depdoc/pkg/deps/node
package deps
