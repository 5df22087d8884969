package deps

import (
	"cmp"
	"slices"
)

// Inventory is an ordered collection of packages, unique by Key.
//
// The flat slice is the source of truth for iteration order; the key index
// is derived from it on construction. An Inventory is read-only once built
// and safe for concurrent use.
type Inventory struct {
	pkgs     []Package
	index    map[Key]int
	managers []Manager
}

// NewInventory builds an inventory from pkgs in the given order.
// A package whose key was already seen replaces the earlier entry in place.
func NewInventory(pkgs ...Package) *Inventory {
	var b Builder
	for _, p := range pkgs {
		b.Add(p)
	}
	return b.Inventory()
}

// All returns a copy of the packages in iteration order.
func (inv *Inventory) All() []Package {
	if inv == nil {
		return nil
	}
	return slices.Clone(inv.pkgs)
}

// Len returns the number of packages.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.pkgs)
}

// Get returns the package stored under k.
func (inv *Inventory) Get(k Key) (Package, bool) {
	if inv == nil {
		return Package{}, false
	}
	i, ok := inv.index[k]
	if !ok {
		return Package{}, false
	}
	return inv.pkgs[i], true
}

// Has reports whether a package is stored under k.
func (inv *Inventory) Has(k Key) bool {
	_, ok := inv.Get(k)
	return ok
}

// Managers returns the distinct managers in order of first appearance,
// including managers declared without packages.
func (inv *Inventory) Managers() []Manager {
	if inv == nil {
		return nil
	}
	return slices.Clone(inv.managers)
}

// HasManager reports whether m has packages in inv or was declared.
func (inv *Inventory) HasManager(m Manager) bool {
	return inv != nil && slices.Contains(inv.managers, m)
}

// ByManager returns the packages of m in iteration order.
func (inv *Inventory) ByManager(m Manager) []Package {
	if inv == nil {
		return nil
	}
	var out []Package
	for _, p := range inv.pkgs {
		if p.Manager == m {
			out = append(out, p)
		}
	}
	return out
}

// Groups returns the packages of m keyed by group.
func (inv *Inventory) Groups(m Manager) map[string][]Package {
	out := make(map[string][]Package)
	for _, p := range inv.ByManager(m) {
		out[p.Group] = append(out[p.Group], p)
	}
	return out
}

// Sorted returns a new inventory ordered by manager (canonical order),
// then name, then group.
func (inv *Inventory) Sorted() *Inventory {
	pkgs := inv.All()
	slices.SortStableFunc(pkgs, func(a, b Package) int {
		if c := CompareManagers(a.Manager, b.Manager); c != 0 {
			return c
		}
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Group, b.Group))
	})
	managers := inv.Managers()
	slices.SortFunc(managers, CompareManagers)

	var b Builder
	for _, m := range managers {
		b.Declare(m)
	}
	for _, p := range pkgs {
		b.Add(p)
	}
	return b.Inventory()
}

// Merge returns a new inventory containing inv followed by others.
// Later inventories win on key collisions.
func (inv *Inventory) Merge(others ...*Inventory) *Inventory {
	var b Builder
	for _, o := range append([]*Inventory{inv}, others...) {
		for _, m := range o.Managers() {
			b.Declare(m)
		}
		for _, p := range o.All() {
			b.Add(p)
		}
	}
	return b.Inventory()
}

// Builder accumulates packages for an Inventory.
// The zero value is ready to use.
type Builder struct {
	pkgs     []Package
	index    map[Key]int
	managers []Manager
}

// Add appends p, or replaces the package already stored under its key
// while keeping the original position.
func (b *Builder) Add(p Package) {
	if b.index == nil {
		b.index = make(map[Key]int)
	}
	b.Declare(p.Manager)
	k := p.Key()
	if i, ok := b.index[k]; ok {
		b.pkgs[i] = p
		return
	}
	b.index[k] = len(b.pkgs)
	b.pkgs = append(b.pkgs, p)
}

// Declare records m as present even if no package of m is added.
// A manifest section that lists nothing still names its manager.
func (b *Builder) Declare(m Manager) {
	if !slices.Contains(b.managers, m) {
		b.managers = append(b.managers, m)
	}
}

// Inventory returns the built inventory. The builder must not be reused.
func (b *Builder) Inventory() *Inventory {
	idx := b.index
	if idx == nil {
		idx = make(map[Key]int)
	}
	inv := &Inventory{pkgs: b.pkgs, index: idx, managers: b.managers}
	b.pkgs, b.index, b.managers = nil, nil, nil
	return inv
}
