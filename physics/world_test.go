package physics

import (
	"testing"

	"github.com/milk9111/arcade/common"
)

func TestEnableBodyIdempotent(t *testing.T) {
	w := newTestWorld()
	sp := NewSprite(10, 20, 8, 8)

	first := w.EnableBody(sp, DynamicBody)
	second := w.EnableBody(sp, DynamicBody)

	if first == nil {
		t.Fatalf("EnableBody returned nil")
	}
	if first != second {
		t.Fatalf("second EnableBody should return the existing body")
	}
	if w.NumBodies() != 1 {
		t.Fatalf("NumBodies = %d, want 1", w.NumBodies())
	}
}

func TestEnableBodyNonEmbodied(t *testing.T) {
	w := newTestWorld()
	if b := w.EnableBody(&plainEntity{}, DynamicBody); b != nil {
		t.Fatalf("non-embodied entity should not get a body")
	}
	if w.NumBodies() != 0 {
		t.Fatalf("NumBodies = %d, want 0", w.NumBodies())
	}
}

func TestEnableBodyStartsAtEntityPosition(t *testing.T) {
	w := newTestWorld()
	sp := NewSprite(123, 456, 8, 8)
	b := w.EnableBody(sp, DynamicBody)

	pos := b.Position()
	if pos.X != 123 || pos.Y != 456 {
		t.Fatalf("body position = %v, want (123, 456)", pos)
	}
}

func TestDisableBody(t *testing.T) {
	w := newTestWorld()
	sp := NewSprite(0, 0, 8, 8)
	w.EnableBody(sp, DynamicBody)

	w.DisableBody(sp)

	if sp.Body() != nil {
		t.Fatalf("entity still references a body after disable")
	}
	if w.NumBodies() != 0 {
		t.Fatalf("NumBodies = %d, want 0", w.NumBodies())
	}

	// Disabling again is a no-op.
	w.DisableBody(sp)
	if w.NumBodies() != 0 {
		t.Fatalf("NumBodies = %d after double disable, want 0", w.NumBodies())
	}
}

func TestStaticBodyIgnoresGravity(t *testing.T) {
	w := NewWorld(WorldConfig{
		GravityY: 900,
		Bounds:   common.Rect{Width: 800, Height: 600},
	})
	sp := NewSprite(100, 100, 16, 16)
	w.EnableBody(sp, StaticBody)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	x, y := sp.Position()
	if x != 100 || y != 100 {
		t.Fatalf("static body moved to (%v, %v)", x, y)
	}
}

func TestStepSyncsOwnerPosition(t *testing.T) {
	w := newTestWorld()
	sp := NewSprite(50, 50, 8, 8)
	b := w.EnableBody(sp, DynamicBody)

	b.SetVelocity(60, 0)
	w.Step(1.0)

	x, _ := sp.Position()
	if x <= 50 {
		t.Fatalf("sprite X = %v, expected it to follow the body rightwards", x)
	}
	if x != b.Position().X {
		t.Fatalf("sprite X = %v, body X = %v; owner should mirror the body", x, b.Position().X)
	}
}

func TestSetBounds(t *testing.T) {
	w := newTestWorld()
	r := common.Rect{X: 10, Y: 10, Width: 100, Height: 100}
	w.SetBounds(r)
	if w.Bounds() != r {
		t.Fatalf("Bounds = %+v, want %+v", w.Bounds(), r)
	}
}
