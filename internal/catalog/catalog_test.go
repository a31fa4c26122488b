package catalog

import "testing"

func TestLookupKnownArchetypes(t *testing.T) {
	for _, a := range All() {
		spec, ok := Lookup(a)
		if !ok {
			t.Errorf("Lookup(%q) = _, false; want ok", a)
			continue
		}
		if spec.Name != a {
			t.Errorf("Lookup(%q).Name = %q, want %q", a, spec.Name, a)
		}
		if spec.MaxHull <= 0 {
			t.Errorf("%q: MaxHull = %d, want > 0", a, spec.MaxHull)
		}
		if spec.MaxSpeed <= 0 {
			t.Errorf("%q: MaxSpeed = %v, want > 0", a, spec.MaxSpeed)
		}
		if spec.Weapon.FireIntervalTicks <= 0 {
			t.Errorf("%q: Weapon.FireIntervalTicks = %d, want > 0", a, spec.Weapon.FireIntervalTicks)
		}
	}
}

func TestLookupUnknownArchetypeRejected(t *testing.T) {
	if _, ok := Lookup(Archetype("NOT_A_SHIP")); ok {
		t.Fatal("Lookup of an unregistered archetype must return ok=false")
	}
}

func TestMustLookupPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustLookup of an unknown archetype should panic")
		}
	}()
	MustLookup(Archetype("NOT_A_SHIP"))
}

func TestAllHasNoDuplicates(t *testing.T) {
	seen := make(map[Archetype]bool)
	for _, a := range All() {
		if seen[a] {
			t.Errorf("All() contains duplicate archetype %q", a)
		}
		seen[a] = true
	}
}
