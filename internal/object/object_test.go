package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/debugbird/internal/config"
)

func TestActorFallIntegratesVelocity(t *testing.T) {
	a := NewActor(config.DefaultTuning().Actor)
	a.Fall()
	if a.VY != 0.5 || a.Y != 200.5 {
		t.Fatalf("after one tick VY=%v Y=%v, want 0.5 and 200.5", a.VY, a.Y)
	}

	a.Jump()
	if a.VY != -8 {
		t.Fatalf("VY after jump = %v, want -8", a.VY)
	}
	a.Fall()
	if a.VY != -7.5 || a.Y != 193 {
		t.Fatalf("after jump tick VY=%v Y=%v, want -7.5 and 193", a.VY, a.Y)
	}
}

func TestTintColors(t *testing.T) {
	if TintNormal.Color() != ColorActor || TintPowered.Color() != ColorPowered || TintDamaged.Color() != ColorDamaged {
		t.Fatal("tint colors do not match the palette")
	}
	if TintPowered.String() != "powered" {
		t.Fatalf("TintPowered.String() = %q", TintPowered.String())
	}
}

func TestHazardAdvanceOnlySpinsSpinners(t *testing.T) {
	e := &Hazard{X: 100, Size: 40, Kind: KindError}
	s := &Hazard{X: 100, Size: 40, Kind: KindSpinner}
	e.Advance(2, 0.1)
	s.Advance(2, 0.1)

	if e.X != 98 || s.X != 98 {
		t.Fatalf("x after advance = %v, %v, want 98", e.X, s.X)
	}
	if e.Rotation != 0 {
		t.Fatalf("error hazard rotated to %v", e.Rotation)
	}
	if s.Rotation != 0.1 {
		t.Fatalf("spinner rotation = %v, want 0.1", s.Rotation)
	}
}

func TestRandomKindCoversAllKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[HazardKind]bool{}
	for i := 0; i < 200; i++ {
		k := RandomKind(rng)
		if k < KindError || k > KindSpinner {
			t.Fatalf("RandomKind returned %v", k)
		}
		seen[k] = true
	}
	if len(seen) != 3 {
		t.Fatalf("saw kinds %v, want all three", seen)
	}
}

func TestBurstVelocitiesWithinSpread(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ps := Burst(rng, 10, 20, ColorBonus, 8, 30, 6)
	if len(ps) != 8 {
		t.Fatalf("len = %d, want 8", len(ps))
	}
	for _, p := range ps {
		if p.X != 10 || p.Y != 20 {
			t.Fatalf("particle spawned at (%v,%v), want (10,20)", p.X, p.Y)
		}
		if math.Abs(p.VX) >= 3 || math.Abs(p.VY) >= 3 {
			t.Fatalf("velocity (%v,%v) outside spread", p.VX, p.VY)
		}
		if p.Life != 30 || p.Alpha() != 1 {
			t.Fatalf("life=%d alpha=%v, want 30 and 1", p.Life, p.Alpha())
		}
	}
}

func TestParticleUpdateRemovesAtZero(t *testing.T) {
	p := Particle{VX: 1, VY: -1, Life: 2, MaxLife: 2}
	if p.Update() {
		t.Fatal("removed with life left")
	}
	if p.Alpha() != 0.5 {
		t.Fatalf("alpha = %v, want 0.5", p.Alpha())
	}
	if !p.Update() {
		t.Fatal("not removed at zero life")
	}
	if p.X != 2 || p.Y != -2 {
		t.Fatalf("position = (%v,%v), want (2,-2)", p.X, p.Y)
	}
}
