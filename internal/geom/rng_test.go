package geom

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	for i := 0; i < 20; i++ {
		if av, bv := a.Float64(), b.Float64(); av != bv {
			t.Fatalf("same-seed RNGs diverged at draw %d: %v != %v", i, av, bv)
		}
	}
}

func TestRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("RNGs with different seeds produced identical draws")
	}
}

func TestVec2InWithinRadius(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 100; i++ {
		v := rng.Vec2In(10)
		if v.Length() > 10+1e-9 {
			t.Fatalf("Vec2In(10) returned point outside radius: %+v (len %v)", v, v.Length())
		}
	}
}
