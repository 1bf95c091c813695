// Package group provides an ordered, pooled collection of game entities
// with create/remove callbacks. It knows nothing about physics or
// rendering; decorators such as physics.Group hook into membership
// changes through the internal callbacks on Config.
package group

// Entity is a member of a Group. Implementations are opaque to the
// group beyond their active flag, which drives pooling.
type Entity interface {
	Active() bool
	SetActive(active bool)
}

// Callback observes a membership change for a single entity.
type Callback func(e Entity)

// Config describes how a Group creates and tracks members.
//
// InternalCreateCallback and InternalRemoveCallback are reserved for
// decorating layers and always fire before the user-facing callbacks.
type Config struct {
	// New builds a fresh member for Create and CreateMultiple.
	New func() Entity

	// Quantity is how many members to create up front.
	Quantity int

	// MaxSize caps the group size. Zero or negative means unbounded.
	MaxSize int

	// StartInactive marks members created by this group as inactive,
	// which is the usual setup for a recycling pool.
	StartInactive bool

	CreateCallback Callback
	RemoveCallback Callback

	InternalCreateCallback Callback
	InternalRemoveCallback Callback
}

// Group is an ordered member collection with optional pooling.
type Group struct {
	cfg     Config
	members []Entity
	present map[Entity]struct{}
}

// New creates a group and pre-creates cfg.Quantity members when a
// factory is configured.
func New(cfg Config) *Group {
	g := &Group{
		cfg:     cfg,
		present: make(map[Entity]struct{}),
	}
	if cfg.Quantity > 0 && cfg.New != nil {
		g.CreateMultiple(cfg.Quantity)
	}
	return g
}

// Add appends e to the group and fires the creation callbacks.
// Adding a nil entity, an existing member, or adding to a full group
// is a no-op and returns false.
func (g *Group) Add(e Entity) bool {
	if g == nil || e == nil || g.IsFull() {
		return false
	}
	if _, ok := g.present[e]; ok {
		return false
	}
	g.members = append(g.members, e)
	g.present[e] = struct{}{}
	if g.cfg.InternalCreateCallback != nil {
		g.cfg.InternalCreateCallback(e)
	}
	if g.cfg.CreateCallback != nil {
		g.cfg.CreateCallback(e)
	}
	return true
}

// AddMultiple adds each entity in order, stopping early if the group
// fills up. It returns the number of entities added.
func (g *Group) AddMultiple(entities []Entity) int {
	added := 0
	for _, e := range entities {
		if !g.Add(e) {
			continue
		}
		added++
	}
	return added
}

// Remove takes e out of the group and fires the removal callbacks.
func (g *Group) Remove(e Entity) bool {
	if g == nil || e == nil {
		return false
	}
	if _, ok := g.present[e]; !ok {
		return false
	}
	for i, m := range g.members {
		if m == e {
			g.members = append(g.members[:i], g.members[i+1:]...)
			break
		}
	}
	delete(g.present, e)
	if g.cfg.InternalRemoveCallback != nil {
		g.cfg.InternalRemoveCallback(e)
	}
	if g.cfg.RemoveCallback != nil {
		g.cfg.RemoveCallback(e)
	}
	return true
}

// Clear removes every member, firing removal callbacks for each.
func (g *Group) Clear() {
	if g == nil {
		return
	}
	for len(g.members) > 0 {
		g.Remove(g.members[len(g.members)-1])
	}
}

// Create builds a member with the configured factory and adds it.
// It returns nil when the group is full or has no factory.
func (g *Group) Create() Entity {
	if g == nil || g.cfg.New == nil || g.IsFull() {
		return nil
	}
	e := g.cfg.New()
	if e == nil {
		return nil
	}
	e.SetActive(!g.cfg.StartInactive)
	if !g.Add(e) {
		return nil
	}
	return e
}

// CreateMultiple calls Create n times and returns the members built.
func (g *Group) CreateMultiple(n int) []Entity {
	var out []Entity
	for i := 0; i < n; i++ {
		e := g.Create()
		if e == nil {
			break
		}
		out = append(out, e)
	}
	return out
}

// Children returns the current ordered member slice. The slice is the
// group's own backing storage; callers must not mutate it.
func (g *Group) Children() []Entity {
	if g == nil {
		return nil
	}
	return g.members
}

// Len returns the current member count.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.members)
}

// IsFull reports whether the group is at its MaxSize cap.
func (g *Group) IsFull() bool {
	if g == nil {
		return false
	}
	return g.cfg.MaxSize > 0 && len(g.members) >= g.cfg.MaxSize
}

// Contains reports whether e is a member.
func (g *Group) Contains(e Entity) bool {
	if g == nil || e == nil {
		return false
	}
	_, ok := g.present[e]
	return ok
}

// CountActive returns how many members match the given active flag.
func (g *Group) CountActive(active bool) int {
	n := 0
	for _, e := range g.Children() {
		if e.Active() == active {
			n++
		}
	}
	return n
}

// GetFirst returns the first member in order whose active flag matches,
// or nil.
func (g *Group) GetFirst(active bool) Entity {
	for _, e := range g.Children() {
		if e.Active() == active {
			return e
		}
	}
	return nil
}

// GetFirstAlive returns the first active member, or nil.
func (g *Group) GetFirstAlive() Entity {
	return g.GetFirst(true)
}

// GetFirstDead returns the first inactive member, or nil. Pools use
// this to recycle members instead of allocating new ones.
func (g *Group) GetFirstDead() Entity {
	return g.GetFirst(false)
}

// Kill marks e inactive. It does not remove it from the group.
func (g *Group) Kill(e Entity) {
	if e == nil {
		return
	}
	e.SetActive(false)
}

// Revive marks e active again.
func (g *Group) Revive(e Entity) {
	if e == nil {
		return
	}
	e.SetActive(true)
}
