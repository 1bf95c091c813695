// Package physics layers arcade-style bodies and pooled physics groups
// on top of a Chipmunk space. The World owns body lifetimes; entities
// reference their body weakly and groups decide when bodies come and
// go.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arcade/common"
	"github.com/milk9111/arcade/group"
)

// BodyKind selects how a body participates in simulation.
type BodyKind int

const (
	// DynamicBody is subject to forces and velocity integration.
	DynamicBody BodyKind = iota
	// StaticBody never moves and only blocks dynamic bodies.
	StaticBody
)

const (
	defaultBodySize   = 16.0
	defaultIterations = 10
	collisionTypeBody cp.CollisionType = 1
)

// WorldConfig configures a new World.
type WorldConfig struct {
	GravityX   float64
	GravityY   float64
	Iterations uint
	Bounds     common.Rect
}

// World wraps a Chipmunk space and tracks the bodies it has attached
// to entities.
type World struct {
	space  *cp.Space
	bounds common.Rect
	bodies []*Body
}

// NewWorld creates a simulation world.
func NewWorld(cfg WorldConfig) *World {
	space := cp.NewSpace()
	if cfg.Iterations == 0 {
		cfg.Iterations = defaultIterations
	}
	space.Iterations = cfg.Iterations
	space.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})
	return &World{
		space:  space,
		bounds: cfg.Bounds,
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Bounds returns the world bounds rectangle.
func (w *World) Bounds() common.Rect {
	if w == nil {
		return common.Rect{}
	}
	return w.bounds
}

// SetBounds replaces the world bounds rectangle.
func (w *World) SetBounds(r common.Rect) {
	if w == nil {
		return
	}
	w.bounds = r
}

// NumBodies returns how many bodies the world currently manages.
func (w *World) NumBodies() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// EnableBody attaches a body of the given kind to e if it doesn't
// already carry one. Entities that aren't Embodied are ignored and nil
// is returned. The call is idempotent: an entity with a body keeps it.
func (w *World) EnableBody(e group.Entity, kind BodyKind) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	em, ok := e.(Embodied)
	if !ok {
		return nil
	}
	if b := em.Body(); b != nil {
		return b
	}

	width, height := defaultBodySize, defaultBodySize
	if s, ok := e.(Sized); ok {
		if sw, sh := s.Size(); sw > 0 && sh > 0 {
			width, height = sw, sh
		}
	}

	var cpBody *cp.Body
	if kind == StaticBody {
		cpBody = cp.NewStaticBody()
	} else {
		mass := 1.0
		cpBody = cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	}
	x, y := em.Position()
	cpBody.SetPosition(cp.Vector{X: x, Y: y})

	shape := cp.NewBox(cpBody, width, height, 0)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFriction(0)
	shape.SetElasticity(0)

	b := newBody(em, cpBody, shape, width, height)
	if kind == DynamicBody {
		cpBody.SetVelocityUpdateFunc(b.updateVelocity)
	}

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	em.SetBody(b)
	w.bodies = append(w.bodies, b)
	return b
}

// DisableBody detaches e's body from the space. No-op when e has no
// body.
func (w *World) DisableBody(e group.Entity) {
	if w == nil || w.space == nil {
		return
	}
	em, ok := e.(Embodied)
	if !ok {
		return
	}
	b := em.Body()
	if b == nil {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	for i, tracked := range w.bodies {
		if tracked == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	em.SetBody(nil)
}

// Step advances the simulation by dt seconds, confines bodies that
// collide with their bounds, and writes positions back to the owning
// entities.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
	for _, b := range w.bodies {
		if b.enabled && b.collideWorldBounds {
			w.confine(b)
		}
		b.syncOwner()
	}
}

// confine clamps b inside its bounds rectangle and reflects its
// velocity scaled by the body bounce, matching arcade-style world
// bounds behavior rather than adding static wall shapes.
func (w *World) confine(b *Body) {
	bounds := w.bounds
	if b.customBounds != nil {
		bounds = *b.customBounds
	}
	if bounds.Empty() {
		return
	}

	halfW := b.width / 2
	halfH := b.height / 2
	pos := b.body.Position()
	vel := b.body.Velocity()
	hit := false

	if pos.X-halfW < bounds.X {
		pos.X = bounds.X + halfW
		vel.X = -vel.X * b.bounce.X
		hit = true
	} else if pos.X+halfW > bounds.Right() {
		pos.X = bounds.Right() - halfW
		vel.X = -vel.X * b.bounce.X
		hit = true
	}
	if pos.Y-halfH < bounds.Y {
		pos.Y = bounds.Y + halfH
		vel.Y = -vel.Y * b.bounce.Y
		hit = true
	} else if pos.Y+halfH > bounds.Bottom() {
		pos.Y = bounds.Bottom() - halfH
		vel.Y = -vel.Y * b.bounce.Y
		hit = true
	}

	if hit {
		b.body.SetPosition(pos)
		b.body.SetVelocity(vel.X, vel.Y)
	}
}
