package entity

import (
	"slices"
	"testing"

	"github.com/vovakirdan/gameland/internal/core"
)

var (
	red  = core.RGB{R: 255}
	blue = core.RGB{B: 255}
)

func TestSpawnReplacesWholesale(t *testing.T) {
	r := NewRegistry()
	r.Spawn("hero", 0, 0, 10, 10, red)
	r.SetVelocity("hero", 3, 0)
	r.Spawn("hero", 5, 5, 20, 20, blue)

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", r.Len())
	}

	e, ok := r.Get("hero")
	if !ok {
		t.Fatal("hero should exist")
	}
	if e.X != 5 || e.Y != 5 {
		t.Errorf("position = (%v, %v), expected (5, 5)", e.X, e.Y)
	}
	if e.W != 20 || e.H != 20 {
		t.Errorf("size = (%v, %v), expected (20, 20)", e.W, e.H)
	}
	if e.Color != blue {
		t.Errorf("color = %v, expected %v", e.Color, blue)
	}
	if e.VX != 0 || e.VY != 0 {
		t.Errorf("velocity = (%v, %v), expected (0, 0)", e.VX, e.VY)
	}
}

func TestUnknownEntitySafety(t *testing.T) {
	r := NewRegistry()
	r.Spawn("hero", 1, 2, 3, 4, red)
	before, _ := r.Get("hero")

	r.SetVelocity("ghost", 1, 1)
	r.SetPosition("ghost", 1, 1)

	if r.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", r.Len())
	}
	if after, _ := r.Get("hero"); after != before {
		t.Errorf("hero changed from %+v to %+v", before, after)
	}
	if _, _, ok := r.Position("ghost"); ok {
		t.Error("Position(ghost) should report absent")
	}
	if _, ok := r.Get("ghost"); ok {
		t.Error("Get(ghost) should report absent")
	}
}

func TestIntegrate(t *testing.T) {
	r := NewRegistry()
	r.Spawn("ball", 0, 0, 1, 1, red)
	r.SetVelocity("ball", 10, 0)

	r.Integrate(0.5)
	if x, y, _ := r.Position("ball"); x != 5 || y != 0 {
		t.Errorf("after first step position = (%v, %v), expected (5, 0)", x, y)
	}

	r.Integrate(0.5)
	if x, y, _ := r.Position("ball"); x != 10 || y != 0 {
		t.Errorf("after second step position = (%v, %v), expected (10, 0)", x, y)
	}
}

func TestIntegrateZeroDt(t *testing.T) {
	r := NewRegistry()
	r.Spawn("ball", 7, 8, 1, 1, red)
	r.SetVelocity("ball", 100, -100)
	r.Integrate(0)

	if x, y, _ := r.Position("ball"); x != 7 || y != 8 {
		t.Errorf("position = (%v, %v), expected (7, 8)", x, y)
	}
}

func TestSetPosition(t *testing.T) {
	r := NewRegistry()
	r.Spawn("hero", 0, 0, 1, 1, red)
	r.SetPosition("hero", 42, -3)

	x, y, ok := r.Position("hero")
	if !ok || x != 42 || y != -3 {
		t.Errorf("Position() = (%v, %v, %v), expected (42, -3, true)", x, y, ok)
	}
}

func TestEachCreationOrderStableAcrossReplacement(t *testing.T) {
	r := NewRegistry()
	r.Spawn("a", 0, 0, 1, 1, red)
	r.Spawn("b", 0, 0, 1, 1, red)
	r.Spawn("c", 0, 0, 1, 1, red)
	r.Spawn("a", 9, 9, 1, 1, blue) // replace in place

	var got []string
	r.Each(func(e Entity) {
		got = append(got, e.Name)
	})

	expected := []string{"a", "b", "c"}
	if !slices.Equal(got, expected) {
		t.Errorf("Each order = %v, expected %v", got, expected)
	}
	if !slices.Equal(r.Names(), expected) {
		t.Errorf("Names() = %v, expected %v", r.Names(), expected)
	}

	var first Entity
	r.Each(func(e Entity) {
		if e.Name == "a" {
			first = e
		}
	})
	if first.X != 9 || first.Color != blue {
		t.Errorf("replaced entity = %+v, expected new values", first)
	}
}

func TestEachVisitsCopies(t *testing.T) {
	r := NewRegistry()
	r.Spawn("hero", 1, 1, 1, 1, red)
	r.Each(func(e Entity) {
		e.X = 100
	})
	if x, _, _ := r.Position("hero"); x != 1 {
		t.Errorf("visitor mutated registry: x = %v", x)
	}
}
