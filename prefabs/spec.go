// Package prefabs loads yaml group definitions. Body fields are
// pointers so that a field left out of the yaml stays unset and is
// never applied to a body.
package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/arcade/common"
	"github.com/milk9111/arcade/group"
	"github.com/milk9111/arcade/physics"
)

// GroupSpec describes a pooled physics group: how many members, what
// they look like, and the body defaults every member gets.
type GroupSpec struct {
	Name           string     `yaml:"name"`
	Quantity       int        `yaml:"quantity"`
	MaxSize        int        `yaml:"max_size"`
	StartInactive  bool       `yaml:"start_inactive"`
	Sprite         SpriteSpec `yaml:"sprite"`
	Body           BodySpec   `yaml:"body"`
	OnCreateScript string     `yaml:"on_create_script"`
}

type SpriteSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BodySpec mirrors physics.BodyDefaults field for field.
type BodySpec struct {
	CollideWorldBounds  *bool     `yaml:"collide_world_bounds"`
	BoundsRect          *RectSpec `yaml:"bounds_rect"`
	AccelerationX       *float64  `yaml:"acceleration_x"`
	AccelerationY       *float64  `yaml:"acceleration_y"`
	AllowDrag           *bool     `yaml:"allow_drag"`
	AllowGravity        *bool     `yaml:"allow_gravity"`
	AllowRotation       *bool     `yaml:"allow_rotation"`
	BounceX             *float64  `yaml:"bounce_x"`
	BounceY             *float64  `yaml:"bounce_y"`
	DragX               *float64  `yaml:"drag_x"`
	DragY               *float64  `yaml:"drag_y"`
	Enable              *bool     `yaml:"enable"`
	GravityX            *float64  `yaml:"gravity_x"`
	GravityY            *float64  `yaml:"gravity_y"`
	FrictionX           *float64  `yaml:"friction_x"`
	FrictionY           *float64  `yaml:"friction_y"`
	MaxVelocityX        *float64  `yaml:"max_velocity_x"`
	MaxVelocityY        *float64  `yaml:"max_velocity_y"`
	VelocityX           *float64  `yaml:"velocity_x"`
	VelocityY           *float64  `yaml:"velocity_y"`
	AngularVelocity     *float64  `yaml:"angular_velocity"`
	AngularAcceleration *float64  `yaml:"angular_acceleration"`
	AngularDrag         *float64  `yaml:"angular_drag"`
	Mass                *float64  `yaml:"mass"`
	Immovable           *bool     `yaml:"immovable"`
}

// LoadSpec reads and unmarshals a prefab file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadGroupSpec loads a group definition from groups/<name>.yaml.
func LoadGroupSpec(name string) (*GroupSpec, error) {
	path := name
	if !strings.Contains(path, "/") {
		path = "groups/" + path
	}
	if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
		path += ".yaml"
	}
	spec, err := LoadSpec[GroupSpec](path)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Defaults converts the set fields into a physics defaults table.
func (s BodySpec) Defaults() physics.BodyDefaults {
	d := physics.BodyDefaults{
		CollideWorldBounds:  s.CollideWorldBounds,
		AccelerationX:       s.AccelerationX,
		AccelerationY:       s.AccelerationY,
		AllowDrag:           s.AllowDrag,
		AllowGravity:        s.AllowGravity,
		AllowRotation:       s.AllowRotation,
		BounceX:             s.BounceX,
		BounceY:             s.BounceY,
		DragX:               s.DragX,
		DragY:               s.DragY,
		Enable:              s.Enable,
		GravityX:            s.GravityX,
		GravityY:            s.GravityY,
		FrictionX:           s.FrictionX,
		FrictionY:           s.FrictionY,
		MaxVelocityX:        s.MaxVelocityX,
		MaxVelocityY:        s.MaxVelocityY,
		VelocityX:           s.VelocityX,
		VelocityY:           s.VelocityY,
		AngularVelocity:     s.AngularVelocity,
		AngularAcceleration: s.AngularAcceleration,
		AngularDrag:         s.AngularDrag,
		Mass:                s.Mass,
		Immovable:           s.Immovable,
	}
	if s.BoundsRect != nil {
		d.BoundsRect = &common.Rect{
			X:      s.BoundsRect.X,
			Y:      s.BoundsRect.Y,
			Width:  s.BoundsRect.Width,
			Height: s.BoundsRect.Height,
		}
	}
	return d
}

// GroupConfig converts the spec into a physics group config whose
// factory builds colored sprites of the configured size.
func (s GroupSpec) GroupConfig() physics.GroupConfig {
	w := s.Sprite.Width
	h := s.Sprite.Height
	if w <= 0 {
		w = 16
	}
	if h <= 0 {
		h = 16
	}
	var fill color.Color
	if s.Sprite.Color != nil {
		fill = s.Sprite.Color.Color
	}
	return physics.GroupConfig{
		Config: group.Config{
			New: func() group.Entity {
				sp := physics.NewSprite(0, 0, w, h)
				if fill != nil {
					sp.Fill(fill)
				}
				return sp
			},
			Quantity:      s.Quantity,
			MaxSize:       s.MaxSize,
			StartInactive: s.StartInactive,
		},
		Defaults: s.Body.Defaults(),
	}
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa" scalars.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
