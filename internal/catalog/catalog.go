// Package catalog is the frozen, process-wide ship archetype table.
// It is a pure data lookup, not a type hierarchy: new ship types are added
// as table rows, never as new Go types.
package catalog

import "fmt"

// Archetype names a ship type. Unknown archetypes are rejected at join
// time by Lookup returning ok=false.
type Archetype string

const (
	Scout      Archetype = "SCOUT"
	Destroyer  Archetype = "DESTROYER"
	Cruiser    Archetype = "CRUISER"
	Battleship Archetype = "BATTLESHIP"
	Assault    Archetype = "ASSAULT"
	Starbase   Archetype = "STARBASE"
)

// WeaponProfile describes one archetype's projectile weapon.
type WeaponProfile struct {
	Damage            int     // hull damage per hit
	MuzzleSpeed       float64 // units/sec
	TTLTicks          int     // projectile lifetime
	FireIntervalTicks int     // cooldown between shots
	MaxAimSlewRadians float64 // max |aim_yaw - heading| at spawn
}

// Spec is the tuning record for one ship archetype.
type Spec struct {
	Name            Archetype
	MaxSpeed        float64 // units/sec
	Acceleration    float64 // units/sec^2 applied via throttle
	TurnRate        float64 // radians/sec at full steer
	Drag            float64 // fraction of velocity bled per second
	MaxHull         int
	CollisionRadius float64
	Weapon          WeaponProfile
}

// table is keyed by Archetype and populated in init. The six archetypes
// span a fast/fragile-to-slow/tanky spectrum for max speed, acceleration,
// turn rate, hull, and weapon damage, rescaled to this simulation's
// continuous float64 kinematics: Scout is fastest/squishiest, Starbase
// slowest/tankiest, with the rest interpolating between them.
var table = map[Archetype]Spec{
	Scout: {
		Name: Scout, MaxSpeed: 120, Acceleration: 60, TurnRate: 3.4, Drag: 0.6,
		MaxHull: 75, CollisionRadius: 18,
		Weapon: WeaponProfile{Damage: 25, MuzzleSpeed: 260, TTLTicks: 48, FireIntervalTicks: 9, MaxAimSlewRadians: 0.35},
	},
	Destroyer: {
		Name: Destroyer, MaxSpeed: 100, Acceleration: 50, TurnRate: 2.6, Drag: 0.55,
		MaxHull: 85, CollisionRadius: 20,
		Weapon: WeaponProfile{Damage: 30, MuzzleSpeed: 240, TTLTicks: 60, FireIntervalTicks: 10, MaxAimSlewRadians: 0.3},
	},
	Cruiser: {
		Name: Cruiser, MaxSpeed: 90, Acceleration: 42, TurnRate: 2.0, Drag: 0.5,
		MaxHull: 100, CollisionRadius: 24,
		Weapon: WeaponProfile{Damage: 40, MuzzleSpeed: 220, TTLTicks: 72, FireIntervalTicks: 12, MaxAimSlewRadians: 0.3},
	},
	Battleship: {
		Name: Battleship, MaxSpeed: 80, Acceleration: 30, TurnRate: 1.1, Drag: 0.45,
		MaxHull: 130, CollisionRadius: 30,
		Weapon: WeaponProfile{Damage: 40, MuzzleSpeed: 220, TTLTicks: 72, FireIntervalTicks: 14, MaxAimSlewRadians: 0.25},
	},
	Assault: {
		Name: Assault, MaxSpeed: 80, Acceleration: 36, TurnRate: 1.6, Drag: 0.5,
		MaxHull: 200, CollisionRadius: 28,
		Weapon: WeaponProfile{Damage: 30, MuzzleSpeed: 260, TTLTicks: 55, FireIntervalTicks: 9, MaxAimSlewRadians: 0.35},
	},
	Starbase: {
		Name: Starbase, MaxSpeed: 20, Acceleration: 12, TurnRate: 0.5, Drag: 0.4,
		MaxHull: 600, CollisionRadius: 45,
		Weapon: WeaponProfile{Damage: 40, MuzzleSpeed: 220, TTLTicks: 80, FireIntervalTicks: 12, MaxAimSlewRadians: 0.2},
	},
}

// Lookup returns the tuning record for name, or ok=false if name is not a
// known archetype. Callers at join time must reject unknown archetypes
// rather than defaulting to one.
func Lookup(name Archetype) (Spec, bool) {
	s, ok := table[name]
	return s, ok
}

// MustLookup is Lookup for call sites that already validated name (e.g.
// internal tests); it panics on an unknown archetype.
func MustLookup(name Archetype) Spec {
	s, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown archetype %q", name))
	}
	return s
}

// All returns every known archetype name, in a stable order, for clients
// that need to present a selection list.
func All() []Archetype {
	return []Archetype{Scout, Destroyer, Cruiser, Battleship, Assault, Starbase}
}
