package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arcade/common"
)

// Embodied is an entity that can carry a physics body. The body itself
// is owned by the World; the entity only holds a reference to it.
type Embodied interface {
	Body() *Body
	SetBody(b *Body)
	Position() (x, y float64)
	SetPosition(x, y float64)
}

// Sized lets an entity choose its own collision box. Entities that
// don't implement it get a defaultBodySize square.
type Sized interface {
	Size() (w, h float64)
}

// Rotatable receives the body angle after each world step.
type Rotatable interface {
	SetAngle(radians float64)
}

// Body is a dynamic arcade-style body backed by a Chipmunk body and box
// shape. Acceleration, drag, per-body gravity, and velocity limits are
// integrated in a custom velocity update func installed by the World;
// collisions between bodies stay Chipmunk's business.
//
// Setters deliberately carry no nil-receiver guards: calling them on a
// missing body is a programming error and should fault at the call
// site.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	owner Embodied

	width, height float64

	enabled            bool
	accel              cp.Vector
	gravity            cp.Vector
	drag               cp.Vector
	maxVelocity        cp.Vector
	bounce             cp.Vector
	friction           cp.Vector
	angularAccel       float64
	angularDrag        float64
	allowDrag          bool
	allowGravity       bool
	allowRotation      bool
	collideWorldBounds bool
	customBounds       *common.Rect
	immovable          bool
	mass               float64
}

const defaultMaxVelocity = 10000

func newBody(owner Embodied, cpBody *cp.Body, shape *cp.Shape, w, h float64) *Body {
	return &Body{
		body:          cpBody,
		shape:         shape,
		owner:         owner,
		width:         w,
		height:        h,
		enabled:       true,
		maxVelocity:   cp.Vector{X: defaultMaxVelocity, Y: defaultMaxVelocity},
		allowDrag:     true,
		allowGravity:  true,
		allowRotation: true,
		mass:          1,
	}
}

// updateVelocity is installed as the body's cp velocity update func.
// It applies world+body gravity, then acceleration, drag, and the
// per-axis velocity limit on top of Chipmunk's integration.
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	if b == nil || body == nil {
		return
	}
	if !b.enabled || b.immovable {
		body.SetVelocity(0, 0)
		body.SetAngularVelocity(0)
		return
	}

	g := cp.Vector{}
	if b.allowGravity {
		g = gravity.Add(b.gravity)
	}
	cp.BodyUpdateVelocity(body, g, damping, dt)

	v := body.Velocity()
	v = v.Add(b.accel.Mult(dt))
	if b.allowDrag {
		// Drag only decelerates axes that aren't being driven.
		if b.accel.X == 0 {
			v.X = common.TowardZero(v.X, b.drag.X*dt)
		}
		if b.accel.Y == 0 {
			v.Y = common.TowardZero(v.Y, b.drag.Y*dt)
		}
	}
	v.X = common.Clamp(v.X, -b.maxVelocity.X, b.maxVelocity.X)
	v.Y = common.Clamp(v.Y, -b.maxVelocity.Y, b.maxVelocity.Y)
	body.SetVelocity(v.X, v.Y)

	if !b.allowRotation {
		body.SetAngularVelocity(0)
		return
	}
	w := body.AngularVelocity() + b.angularAccel*dt
	if b.angularAccel == 0 {
		w = common.TowardZero(w, b.angularDrag*dt)
	}
	body.SetAngularVelocity(w)
}

// Velocity returns the current linear velocity.
func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

// Position returns the current body position.
func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

// SetPositionXY teleports the body.
func (b *Body) SetPositionXY(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// Angle returns the body rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// AngularVelocity returns the body spin in radians per second.
func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// Enabled reports whether the body participates in simulation.
func (b *Body) Enabled() bool {
	return b.enabled
}

// Mass returns the configured mass, ignoring immovability.
func (b *Body) Mass() float64 {
	return b.mass
}

// Immovable reports whether the body has been pinned in place.
func (b *Body) Immovable() bool {
	return b.immovable
}

// CollideWorldBounds reports whether the body is confined to bounds.
func (b *Body) CollideWorldBounds() bool {
	return b.collideWorldBounds
}

// Setters below map one-to-one onto the optional per-member defaults a
// physics group can apply at attach time.

func (b *Body) SetCollideWorldBounds(v bool) {
	b.collideWorldBounds = v
}

// SetBoundsRect confines the body to a custom rectangle instead of the
// world bounds. Only consulted when CollideWorldBounds is on.
func (b *Body) SetBoundsRect(r common.Rect) {
	b.customBounds = &r
}

func (b *Body) SetAccelerationX(v float64) {
	b.accel.X = v
}

func (b *Body) SetAccelerationY(v float64) {
	b.accel.Y = v
}

func (b *Body) SetAllowDrag(v bool) {
	b.allowDrag = v
}

func (b *Body) SetAllowGravity(v bool) {
	b.allowGravity = v
}

func (b *Body) SetAllowRotation(v bool) {
	b.allowRotation = v
	if !v {
		b.body.SetAngularVelocity(0)
	}
}

func (b *Body) SetBounceX(v float64) {
	b.bounce.X = v
	b.shape.SetElasticity(math.Max(b.bounce.X, b.bounce.Y))
}

func (b *Body) SetBounceY(v float64) {
	b.bounce.Y = v
	b.shape.SetElasticity(math.Max(b.bounce.X, b.bounce.Y))
}

func (b *Body) SetDragX(v float64) {
	b.drag.X = v
}

func (b *Body) SetDragY(v float64) {
	b.drag.Y = v
}

// SetEnable toggles simulation for the body. A disabled body keeps its
// position but sheds all velocity.
func (b *Body) SetEnable(v bool) {
	b.enabled = v
	if !v {
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
	}
}

func (b *Body) SetGravityX(v float64) {
	b.gravity.X = v
}

func (b *Body) SetGravityY(v float64) {
	b.gravity.Y = v
}

func (b *Body) SetFrictionX(v float64) {
	b.friction.X = v
	b.shape.SetFriction(math.Max(b.friction.X, b.friction.Y))
}

func (b *Body) SetFrictionY(v float64) {
	b.friction.Y = v
	b.shape.SetFriction(math.Max(b.friction.X, b.friction.Y))
}

func (b *Body) SetMaxVelocityX(v float64) {
	b.maxVelocity.X = v
}

func (b *Body) SetMaxVelocityY(v float64) {
	b.maxVelocity.Y = v
}

func (b *Body) SetVelocity(x, y float64) {
	b.body.SetVelocity(x, y)
}

func (b *Body) SetVelocityX(v float64) {
	cur := b.body.Velocity()
	b.body.SetVelocity(v, cur.Y)
}

func (b *Body) SetVelocityY(v float64) {
	cur := b.body.Velocity()
	b.body.SetVelocity(cur.X, v)
}

func (b *Body) SetAngularVelocity(v float64) {
	b.body.SetAngularVelocity(v)
}

func (b *Body) SetAngularAcceleration(v float64) {
	b.angularAccel = v
}

func (b *Body) SetAngularDrag(v float64) {
	b.angularDrag = v
}

func (b *Body) SetMass(v float64) {
	if v <= 0 {
		return
	}
	b.mass = v
	if !b.immovable {
		b.body.SetMass(v)
		b.body.SetMoment(cp.MomentForBox(v, b.width, b.height))
	}
}

// SetImmovable pins the body by switching it to a kinematic Chipmunk
// body, which collides as an infinite mass. Turning it back off makes
// the body dynamic again and restores the configured mass.
func (b *Body) SetImmovable(v bool) {
	if b.immovable == v {
		return
	}
	b.immovable = v
	if v {
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
		b.body.SetType(cp.BODY_KINEMATIC)
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	b.body.SetMass(b.mass)
	b.body.SetMoment(cp.MomentForBox(b.mass, b.width, b.height))
}

func (b *Body) syncOwner() {
	if b == nil || b.owner == nil {
		return
	}
	pos := b.body.Position()
	b.owner.SetPosition(pos.X, pos.Y)
	if r, ok := b.owner.(Rotatable); ok {
		r.SetAngle(b.body.Angle())
	}
}
