package physics

import (
	"github.com/milk9111/arcade/common"
	"github.com/milk9111/arcade/group"
)

// BodyDefaults is the optional per-member property set a physics group
// applies to every body it attaches. Nil fields are unset and never
// applied; there is no zero-value fallback.
type BodyDefaults struct {
	CollideWorldBounds  *bool
	BoundsRect          *common.Rect
	AccelerationX       *float64
	AccelerationY       *float64
	AllowDrag           *bool
	AllowGravity        *bool
	AllowRotation       *bool
	BounceX             *float64
	BounceY             *float64
	DragX               *float64
	DragY               *float64
	Enable              *bool
	GravityX            *float64
	GravityY            *float64
	FrictionX           *float64
	FrictionY           *float64
	MaxVelocityX        *float64
	MaxVelocityY        *float64
	VelocityX           *float64
	VelocityY           *float64
	AngularVelocity     *float64
	AngularAcceleration *float64
	AngularDrag         *float64
	Mass                *float64
	Immovable           *bool
}

type defaultEntry struct {
	name  string
	apply func(b *Body)
}

// entries expands the set fields into an ordered setter list. The
// order is load-bearing: the bounds rectangle must land before the
// collide flag takes effect on a step, and velocity after its limits.
func (d BodyDefaults) entries() []defaultEntry {
	var out []defaultEntry
	add := func(name string, apply func(b *Body)) {
		out = append(out, defaultEntry{name: name, apply: apply})
	}
	if d.CollideWorldBounds != nil {
		v := *d.CollideWorldBounds
		add("collideWorldBounds", func(b *Body) { b.SetCollideWorldBounds(v) })
	}
	if d.BoundsRect != nil {
		v := *d.BoundsRect
		add("boundsRect", func(b *Body) { b.SetBoundsRect(v) })
	}
	if d.AccelerationX != nil {
		v := *d.AccelerationX
		add("accelerationX", func(b *Body) { b.SetAccelerationX(v) })
	}
	if d.AccelerationY != nil {
		v := *d.AccelerationY
		add("accelerationY", func(b *Body) { b.SetAccelerationY(v) })
	}
	if d.AllowDrag != nil {
		v := *d.AllowDrag
		add("allowDrag", func(b *Body) { b.SetAllowDrag(v) })
	}
	if d.AllowGravity != nil {
		v := *d.AllowGravity
		add("allowGravity", func(b *Body) { b.SetAllowGravity(v) })
	}
	if d.AllowRotation != nil {
		v := *d.AllowRotation
		add("allowRotation", func(b *Body) { b.SetAllowRotation(v) })
	}
	if d.BounceX != nil {
		v := *d.BounceX
		add("bounceX", func(b *Body) { b.SetBounceX(v) })
	}
	if d.BounceY != nil {
		v := *d.BounceY
		add("bounceY", func(b *Body) { b.SetBounceY(v) })
	}
	if d.DragX != nil {
		v := *d.DragX
		add("dragX", func(b *Body) { b.SetDragX(v) })
	}
	if d.DragY != nil {
		v := *d.DragY
		add("dragY", func(b *Body) { b.SetDragY(v) })
	}
	if d.Enable != nil {
		v := *d.Enable
		add("enable", func(b *Body) { b.SetEnable(v) })
	}
	if d.GravityX != nil {
		v := *d.GravityX
		add("gravityX", func(b *Body) { b.SetGravityX(v) })
	}
	if d.GravityY != nil {
		v := *d.GravityY
		add("gravityY", func(b *Body) { b.SetGravityY(v) })
	}
	if d.FrictionX != nil {
		v := *d.FrictionX
		add("frictionX", func(b *Body) { b.SetFrictionX(v) })
	}
	if d.FrictionY != nil {
		v := *d.FrictionY
		add("frictionY", func(b *Body) { b.SetFrictionY(v) })
	}
	if d.MaxVelocityX != nil {
		v := *d.MaxVelocityX
		add("maxVelocityX", func(b *Body) { b.SetMaxVelocityX(v) })
	}
	if d.MaxVelocityY != nil {
		v := *d.MaxVelocityY
		add("maxVelocityY", func(b *Body) { b.SetMaxVelocityY(v) })
	}
	if d.VelocityX != nil {
		v := *d.VelocityX
		add("velocityX", func(b *Body) { b.SetVelocityX(v) })
	}
	if d.VelocityY != nil {
		v := *d.VelocityY
		add("velocityY", func(b *Body) { b.SetVelocityY(v) })
	}
	if d.AngularVelocity != nil {
		v := *d.AngularVelocity
		add("angularVelocity", func(b *Body) { b.SetAngularVelocity(v) })
	}
	if d.AngularAcceleration != nil {
		v := *d.AngularAcceleration
		add("angularAcceleration", func(b *Body) { b.SetAngularAcceleration(v) })
	}
	if d.AngularDrag != nil {
		v := *d.AngularDrag
		add("angularDrag", func(b *Body) { b.SetAngularDrag(v) })
	}
	if d.Mass != nil {
		v := *d.Mass
		add("mass", func(b *Body) { b.SetMass(v) })
	}
	if d.Immovable != nil {
		v := *d.Immovable
		add("immovable", func(b *Body) { b.SetImmovable(v) })
	}
	return out
}

// GroupConfig configures a physics group: the wrapped collection plus
// the body defaults applied to every member at attach time.
type GroupConfig struct {
	group.Config
	Defaults BodyDefaults
}

// Group decorates a group.Group so that every member carries a dynamic
// body in the World. Member add attaches a body and applies the
// defaults table; member remove detaches the body.
//
// The group assumes the single-threaded cooperative model of the game
// loop; nothing here locks.
type Group struct {
	world    *World
	members  *group.Group
	defaults []defaultEntry
}

// NewGroup creates an empty physics group with default configuration.
func NewGroup(w *World) *Group {
	return NewGroupWith(w, GroupConfig{})
}

// NewGroupWith creates a physics group from a config record. The
// internal create/remove callbacks of the wrapped group are always this
// group's body handlers, overriding anything the caller set; the
// user-facing callbacks are left alone. A missing entity factory
// defaults to NewSprite.
func NewGroupWith(w *World, cfg GroupConfig) *Group {
	g := &Group{
		world:    w,
		defaults: cfg.Defaults.entries(),
	}
	gc := cfg.Config
	if gc.New == nil {
		gc.New = defaultSpriteFactory
	}
	gc.InternalCreateCallback = g.createCallbackHandler
	gc.InternalRemoveCallback = g.removeCallbackHandler
	g.members = group.New(gc)
	return g
}

// NewGroupOf creates a physics group over pre-built entities. Each
// entity gets a body on the way in.
func NewGroupOf(w *World, entities ...group.Entity) *Group {
	g := NewGroupWith(w, GroupConfig{})
	g.members.AddMultiple(entities)
	return g
}

// NewGroupFromConfigs creates a physics group from a list of config
// records. Only the first record's body defaults feed the shared
// handlers; every record's factory and quantity are honored for its
// own batch. The asymmetry is deliberate and kept from the original
// API.
func NewGroupFromConfigs(w *World, cfgs []GroupConfig) *Group {
	if len(cfgs) == 0 {
		return NewGroupWith(w, GroupConfig{})
	}

	first := cfgs[0]
	first.Quantity = 0
	g := NewGroupWith(w, first)

	for _, cfg := range cfgs {
		factory := cfg.New
		if factory == nil {
			factory = defaultSpriteFactory
		}
		for i := 0; i < cfg.Quantity; i++ {
			e := factory()
			if e == nil {
				break
			}
			e.SetActive(!cfg.StartInactive)
			if !g.members.Add(e) {
				break
			}
		}
	}
	return g
}

func defaultSpriteFactory() group.Entity {
	return NewSprite(0, 0, defaultBodySize, defaultBodySize)
}

// PhysicsType reports the kind of body this group manages. Physics
// groups only ever manage dynamic bodies.
func (g *Group) PhysicsType() BodyKind {
	return DynamicBody
}

// World returns the simulation world the group attaches bodies to.
func (g *Group) World() *World {
	if g == nil {
		return nil
	}
	return g.world
}

// Members returns the wrapped collection for operations the physics
// layer doesn't mediate.
func (g *Group) Members() *group.Group {
	if g == nil {
		return nil
	}
	return g.members
}

// SetDefaults replaces the defaults table. Existing members keep their
// body state; only members attached afterwards see the new defaults.
func (g *Group) SetDefaults(d BodyDefaults) {
	if g == nil {
		return
	}
	g.defaults = d.entries()
}

// createCallbackHandler gives a new member a dynamic body if it lacks
// one, then applies every set default in declared order. Applying to a
// member that already had a body is a plain overwrite.
func (g *Group) createCallbackHandler(e group.Entity) {
	if g == nil || e == nil {
		return
	}
	em, ok := e.(Embodied)
	if !ok {
		return
	}
	if em.Body() == nil {
		g.world.EnableBody(e, DynamicBody)
	}
	b := em.Body()
	if b == nil {
		return
	}
	for _, entry := range g.defaults {
		entry.apply(b)
	}
}

// removeCallbackHandler detaches a leaving member's body, if any.
func (g *Group) removeCallbackHandler(e group.Entity) {
	if g == nil || e == nil {
		return
	}
	em, ok := e.(Embodied)
	if !ok {
		return
	}
	if em.Body() != nil {
		g.world.DisableBody(e)
	}
}

// Create builds one member through the wrapped group.
func (g *Group) Create() group.Entity {
	return g.members.Create()
}

// CreateMultiple builds n members through the wrapped group.
func (g *Group) CreateMultiple(n int) []group.Entity {
	return g.members.CreateMultiple(n)
}

// Add inserts a pre-built entity, attaching a body to it.
func (g *Group) Add(e group.Entity) bool {
	return g.members.Add(e)
}

// Remove takes an entity out of the group, detaching its body.
func (g *Group) Remove(e group.Entity) bool {
	return g.members.Remove(e)
}

// Clear removes every member, detaching all bodies.
func (g *Group) Clear() {
	g.members.Clear()
}

// Children returns the current ordered member slice.
func (g *Group) Children() []group.Entity {
	return g.members.Children()
}

// Len returns the current member count.
func (g *Group) Len() int {
	return g.members.Len()
}

// CountActive forwards to the wrapped group.
func (g *Group) CountActive(active bool) int {
	return g.members.CountActive(active)
}

// GetFirstDead forwards to the wrapped group.
func (g *Group) GetFirstDead() group.Entity {
	return g.members.GetFirstDead()
}

// SetVelocity sets each member's velocity to (x+i*step, y+i*step) for
// the i-th member of the current children snapshot. Members are
// expected to carry bodies; one without faults at the call site.
// Returns the group for chaining.
func (g *Group) SetVelocity(x, y float64, step ...float64) *Group {
	s := stepOf(step)
	for i, e := range g.Children() {
		n := float64(i)
		e.(Embodied).Body().SetVelocity(x+n*s, y+n*s)
	}
	return g
}

// SetVelocityX sets each member's X velocity to value+i*step, leaving
// Y untouched.
func (g *Group) SetVelocityX(value float64, step ...float64) *Group {
	s := stepOf(step)
	for i, e := range g.Children() {
		e.(Embodied).Body().SetVelocityX(value + float64(i)*s)
	}
	return g
}

// SetVelocityY sets each member's Y velocity to value+i*step, leaving
// X untouched.
func (g *Group) SetVelocityY(value float64, step ...float64) *Group {
	s := stepOf(step)
	for i, e := range g.Children() {
		e.(Embodied).Body().SetVelocityY(value + float64(i)*s)
	}
	return g
}

func stepOf(step []float64) float64 {
	if len(step) > 0 {
		return step[0]
	}
	return 0
}
