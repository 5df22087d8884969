package deps

import (
	"reflect"
	"testing"
)

func TestNewInventory_LastWriteWins(t *testing.T) {
	inv := NewInventory(
		Package{Manager: Composer, Name: "foo", Version: "1.0.0"},
		Package{Manager: Composer, Name: "bar", Version: "2.0.0"},
		Package{Manager: Composer, Name: "foo", Version: "1.1.0"},
	)

	if inv.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", inv.Len())
	}

	got := inv.All()
	if got[0].Name != "foo" || got[0].Version != "1.1.0" {
		t.Errorf("first package = %v, want foo@1.1.0 in first position", got[0])
	}
	if got[1].Name != "bar" {
		t.Errorf("second package = %v, want bar", got[1])
	}
}

func TestInventory_KeyIncludesGroup(t *testing.T) {
	inv := NewInventory(
		Package{Manager: Node, Name: "jest", Version: "29.0.0"},
		Package{Manager: Node, Name: "jest", Version: "29.7.0", Group: DevGroup},
	)
	if inv.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (same name in different groups)", inv.Len())
	}

	p, ok := inv.Get(Key{Manager: Node, Group: DevGroup, Name: "jest"})
	if !ok || p.Version != "29.7.0" {
		t.Errorf("Get(dev/jest) = %v, %v; want 29.7.0, true", p, ok)
	}
	if inv.Has(Key{Manager: Composer, Name: "jest"}) {
		t.Error("Has() matched a package of another manager")
	}
}

func TestInventory_AllReturnsCopy(t *testing.T) {
	inv := NewInventory(Package{Manager: Composer, Name: "foo", Version: "1.0.0"})
	pkgs := inv.All()
	pkgs[0].Version = "mutated"

	p, _ := inv.Get(Key{Manager: Composer, Name: "foo"})
	if p.Version != "1.0.0" {
		t.Errorf("inventory was mutated through All(): %v", p)
	}
}

func TestInventory_Nil(t *testing.T) {
	var inv *Inventory
	if inv.Len() != 0 {
		t.Error("nil inventory Len() != 0")
	}
	if inv.All() != nil {
		t.Error("nil inventory All() != nil")
	}
	if inv.Has(Key{Name: "x"}) {
		t.Error("nil inventory Has() = true")
	}
	if got := inv.Sorted().Len(); got != 0 {
		t.Errorf("nil inventory Sorted().Len() = %d", got)
	}
}

func TestInventory_Sorted(t *testing.T) {
	inv := NewInventory(
		Package{Manager: Node, Name: "b"},
		Package{Manager: Cargo, Name: "serde"},
		Package{Manager: Composer, Name: "z"},
		Package{Manager: Node, Name: "a", Group: DevGroup},
		Package{Manager: Node, Name: "a"},
		Package{Manager: Composer, Name: "a"},
	)

	var got []string
	for _, p := range inv.Sorted().All() {
		got = append(got, p.String())
	}
	want := []string{
		"composer:a@",
		"composer:z@",
		"node:a@",
		"node/dev:a@",
		"node:b@",
		"cargo:serde@",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestInventory_ManagersAndGroups(t *testing.T) {
	inv := NewInventory(
		Package{Manager: Node, Name: "express"},
		Package{Manager: Composer, Name: "foo"},
		Package{Manager: Node, Name: "jest", Group: DevGroup},
	)

	if got, want := inv.Managers(), []Manager{Node, Composer}; !reflect.DeepEqual(got, want) {
		t.Errorf("Managers() = %v, want %v", got, want)
	}

	groups := inv.Groups(Node)
	if len(groups[DefaultGroup]) != 1 || len(groups[DevGroup]) != 1 {
		t.Errorf("Groups(node) = %v", groups)
	}
	if got := len(inv.ByManager(Composer)); got != 1 {
		t.Errorf("ByManager(composer) returned %d packages, want 1", got)
	}
}

func TestInventory_Merge(t *testing.T) {
	a := NewInventory(Package{Manager: Composer, Name: "foo", Version: "1"})
	b := NewInventory(
		Package{Manager: Node, Name: "bar", Version: "2"},
		Package{Manager: Composer, Name: "foo", Version: "3"},
	)

	merged := a.Merge(b)
	if merged.Len() != 2 {
		t.Fatalf("Merge Len() = %d, want 2", merged.Len())
	}
	p, _ := merged.Get(Key{Manager: Composer, Name: "foo"})
	if p.Version != "3" {
		t.Errorf("Merge kept %q, want later version 3", p.Version)
	}
	if a.Len() != 1 {
		t.Error("Merge mutated its receiver")
	}
}

func TestBuilder_Declare(t *testing.T) {
	var b Builder
	b.Declare(Pip)
	b.Add(Package{Manager: Composer, Name: "foo", Version: "1"})
	b.Declare(Composer)
	inv := b.Inventory()

	if got, want := inv.Managers(), []Manager{Pip, Composer}; !reflect.DeepEqual(got, want) {
		t.Errorf("Managers() = %v, want %v", got, want)
	}
	if !inv.HasManager(Pip) || inv.Len() != 1 {
		t.Errorf("HasManager(pip) = %v, Len() = %d", inv.HasManager(Pip), inv.Len())
	}
	if got, want := inv.Sorted().Managers(), []Manager{Composer, Pip}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted().Managers() = %v, want %v", got, want)
	}
	if !NewInventory().Merge(inv).HasManager(Pip) {
		t.Error("Merge dropped a declared manager")
	}
	var nilInv *Inventory
	if nilInv.HasManager(Composer) {
		t.Error("nil inventory HasManager() = true")
	}
}

func TestVersionsEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0.0", "1.0.0", true},
		{" 1.0.0 ", "1.0.0", true},
		{"1.0.0", "1.0.1", false},
		{"^1.0", "1.0.0", false},
		{"v1.0.0", "1.0.0", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := VersionsEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("VersionsEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
