// Package script runs tengo hooks against group members. A hook script
// defines onCreate(body, index, total); the body argument exposes a
// small setter surface over the member's physics body.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/arcade/physics"
)

const createDispatchScript = `
onCreate(__body, __index, __total)
`

// CreateHook is a compiled per-member creation script. Compile once,
// run once per member.
type CreateHook struct {
	path     string
	compiled *tengo.Compiled
}

// NewCreateHook compiles src (loaded from path, which is only used for
// error context) into a runnable hook.
func NewCreateHook(path string, src []byte) (*CreateHook, error) {
	full := string(src) + "\n" + createDispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__body", map[string]any{})
	_ = s.Add("__index", 0)
	_ = s.Add("__total", 0)

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	return &CreateHook{path: path, compiled: compiled}, nil
}

// Path returns the script path the hook was loaded from.
func (h *CreateHook) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Run invokes onCreate for the index-th of total members.
func (h *CreateHook) Run(b *physics.Body, index, total int) error {
	if h == nil || h.compiled == nil {
		return fmt.Errorf("script: nil create hook")
	}
	if b == nil {
		return fmt.Errorf("script: %s: member has no body", h.path)
	}
	if err := h.compiled.Set("__body", buildBodyEngine(b)); err != nil {
		return err
	}
	if err := h.compiled.Set("__index", index); err != nil {
		return err
	}
	if err := h.compiled.Set("__total", total); err != nil {
		return err
	}
	if err := h.compiled.Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", h.path, err)
	}
	return nil
}

func buildBodyEngine(b *physics.Body) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	set1 := func(name string, apply func(v float64)) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			v, ok := objectAsFloat(args[0])
			if !ok {
				return tengo.FalseValue, nil
			}
			apply(v)
			return tengo.TrueValue, nil
		}}
	}
	set2 := func(name string, apply func(x, y float64)) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 2 {
				return tengo.FalseValue, nil
			}
			x, okX := objectAsFloat(args[0])
			y, okY := objectAsFloat(args[1])
			if !okX || !okY {
				return tengo.FalseValue, nil
			}
			apply(x, y)
			return tengo.TrueValue, nil
		}}
	}

	set2("set_velocity", b.SetVelocity)
	set1("set_velocity_x", b.SetVelocityX)
	set1("set_velocity_y", b.SetVelocityY)
	set1("set_acceleration_x", b.SetAccelerationX)
	set1("set_acceleration_y", b.SetAccelerationY)
	set1("set_bounce_x", b.SetBounceX)
	set1("set_bounce_y", b.SetBounceY)
	set1("set_gravity_x", b.SetGravityX)
	set1("set_gravity_y", b.SetGravityY)
	set1("set_angular_velocity", b.SetAngularVelocity)
	set1("set_mass", b.SetMass)
	set2("set_position", b.SetPositionXY)

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v := b.Velocity()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}, nil
	}}
	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p := b.Position()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch o := obj.(type) {
	case *tengo.Float:
		return o.Value, true
	case *tengo.Int:
		return float64(o.Value), true
	default:
		return 0, false
	}
}
