package physics

import (
	"math"
	"testing"

	"github.com/milk9111/arcade/common"
)

func newTestBody(t *testing.T, w *World) *Body {
	t.Helper()
	sp := NewSprite(400, 300, 8, 8)
	b := w.EnableBody(sp, DynamicBody)
	if b == nil {
		t.Fatalf("EnableBody returned nil for an embodied entity")
	}
	return b
}

func TestBodySettersMutateState(t *testing.T) {
	cases := []struct {
		name  string
		apply func(b *Body)
		check func(t *testing.T, b *Body)
	}{
		{
			"velocity_components",
			func(b *Body) { b.SetVelocityX(12); b.SetVelocityY(-3) },
			func(t *testing.T, b *Body) {
				v := b.Velocity()
				if v.X != 12 || v.Y != -3 {
					t.Fatalf("velocity = (%v, %v), want (12, -3)", v.X, v.Y)
				}
			},
		},
		{
			"acceleration",
			func(b *Body) { b.SetAccelerationX(4); b.SetAccelerationY(5) },
			func(t *testing.T, b *Body) {
				if b.accel.X != 4 || b.accel.Y != 5 {
					t.Fatalf("accel = %v, want (4, 5)", b.accel)
				}
			},
		},
		{
			"bounce_components",
			func(b *Body) { b.SetBounceX(0.3); b.SetBounceY(0.8) },
			func(t *testing.T, b *Body) {
				if b.bounce.X != 0.3 || b.bounce.Y != 0.8 {
					t.Fatalf("bounce = %v, want (0.3, 0.8)", b.bounce)
				}
			},
		},
		{
			"friction_components",
			func(b *Body) { b.SetFrictionX(0.2); b.SetFrictionY(0.6) },
			func(t *testing.T, b *Body) {
				if b.friction.X != 0.2 || b.friction.Y != 0.6 {
					t.Fatalf("friction = %v, want (0.2, 0.6)", b.friction)
				}
			},
		},
		{
			"disable_sheds_velocity",
			func(b *Body) { b.SetVelocity(100, 100); b.SetEnable(false) },
			func(t *testing.T, b *Body) {
				if b.Enabled() {
					t.Fatalf("body should be disabled")
				}
				if v := b.Velocity(); v.X != 0 || v.Y != 0 {
					t.Fatalf("disabled body kept velocity (%v, %v)", v.X, v.Y)
				}
			},
		},
		{
			"mass",
			func(b *Body) { b.SetMass(3) },
			func(t *testing.T, b *Body) {
				if b.Mass() != 3 {
					t.Fatalf("mass = %v, want 3", b.Mass())
				}
			},
		},
		{
			"mass_rejects_nonpositive",
			func(b *Body) { b.SetMass(0); b.SetMass(-2) },
			func(t *testing.T, b *Body) {
				if b.Mass() != 1 {
					t.Fatalf("mass = %v, want untouched default 1", b.Mass())
				}
			},
		},
		{
			"bounds_rect",
			func(b *Body) { b.SetBoundsRect(common.Rect{X: 1, Y: 2, Width: 3, Height: 4}) },
			func(t *testing.T, b *Body) {
				if b.customBounds == nil || b.customBounds.Width != 3 {
					t.Fatalf("custom bounds not stored: %+v", b.customBounds)
				}
			},
		},
		{
			"allow_rotation_off_stops_spin",
			func(b *Body) { b.SetAngularVelocity(2); b.SetAllowRotation(false) },
			func(t *testing.T, b *Body) {
				if b.AngularVelocity() != 0 {
					t.Fatalf("angular velocity = %v, want 0", b.AngularVelocity())
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld()
			b := newTestBody(t, w)
			c.apply(b)
			c.check(t, b)
		})
	}
}

func TestImmovableStopsMotion(t *testing.T) {
	w := NewWorld(WorldConfig{
		GravityY: 500,
		Bounds:   common.Rect{Width: 800, Height: 600},
	})
	b := newTestBody(t, w)
	b.SetVelocity(50, 50)
	b.SetImmovable(true)

	start := b.Position()
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60.0)
	}

	if v := b.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("immovable body has velocity (%v, %v)", v.X, v.Y)
	}
	end := b.Position()
	if end.X != start.X || end.Y != start.Y {
		t.Fatalf("immovable body moved from %v to %v", start, end)
	}
}

func TestImmovableOffRestoresMass(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(t, w)
	b.SetMass(4)
	b.SetImmovable(true)
	b.SetImmovable(false)

	if b.Mass() != 4 {
		t.Fatalf("mass = %v, want restored 4", b.Mass())
	}

	// The body must move again once unpinned.
	b.SetVelocity(60, 0)
	start := b.Position()
	w.Step(1.0 / 60.0)
	if b.Position().X <= start.X {
		t.Fatalf("unpinned body did not move")
	}
}

func TestAllowGravityOffIgnoresWorldGravity(t *testing.T) {
	w := NewWorld(WorldConfig{
		GravityY: 900,
		Bounds:   common.Rect{Width: 800, Height: 600},
	})
	b := newTestBody(t, w)
	b.SetAllowGravity(false)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	if v := b.Velocity(); v.Y != 0 {
		t.Fatalf("gravity-exempt body gained Y velocity %v", v.Y)
	}
}

func TestMaxVelocityClampsIntegration(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(t, w)
	b.SetMaxVelocityX(50)
	b.SetAccelerationX(10000)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}

	if v := b.Velocity().X; v > 50+1e-9 {
		t.Fatalf("velocity X = %v, want clamped to 50", v)
	}
}

func TestDragDeceleratesUndrivenAxis(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(t, w)
	b.SetVelocity(100, 0)
	b.SetDragX(200)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	if v := b.Velocity().X; math.Abs(v) > 1e-6 {
		t.Fatalf("velocity X = %v, want dragged to 0", v)
	}
}

func TestWorldBoundsConfine(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(t, w)
	b.SetCollideWorldBounds(true)
	b.SetBounceX(1)
	b.SetBounceY(1)
	b.SetVelocity(5000, -4000)

	bounds := w.Bounds()
	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60.0)
		pos := b.Position()
		if pos.X < bounds.X || pos.X > bounds.Right() ||
			pos.Y < bounds.Y || pos.Y > bounds.Bottom() {
			t.Fatalf("step %d: body escaped bounds at %v", i, pos)
		}
	}
}

func TestCustomBoundsRectConfines(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(t, w)
	box := common.Rect{X: 300, Y: 200, Width: 200, Height: 200}
	b.SetBoundsRect(box)
	b.SetCollideWorldBounds(true)
	b.SetVelocity(2000, 0)

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60.0)
	}

	pos := b.Position()
	if pos.X < box.X || pos.X > box.Right() {
		t.Fatalf("body escaped custom bounds at %v", pos)
	}
}
