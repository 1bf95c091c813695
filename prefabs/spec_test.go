package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestBodySpecPartialUnmarshal(t *testing.T) {
	src := `
bounce_x: 0.4
allow_gravity: false
velocity_y: -250
bounds_rect:
  x: 10
  y: 20
  width: 100
  height: 50
`
	var spec BodySpec
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if spec.BounceX == nil || *spec.BounceX != 0.4 {
		t.Fatalf("BounceX = %v, want 0.4", spec.BounceX)
	}
	if spec.AllowGravity == nil || *spec.AllowGravity {
		t.Fatalf("AllowGravity should be set false")
	}
	if spec.VelocityY == nil || *spec.VelocityY != -250 {
		t.Fatalf("VelocityY = %v, want -250", spec.VelocityY)
	}
	if spec.BoundsRect == nil || spec.BoundsRect.Width != 100 {
		t.Fatalf("BoundsRect = %+v, want width 100", spec.BoundsRect)
	}

	// Everything the yaml didn't mention stays unset.
	if spec.BounceY != nil || spec.VelocityX != nil || spec.Mass != nil || spec.Immovable != nil {
		t.Fatalf("untouched fields must remain nil: %+v", spec)
	}
}

func TestBodySpecDefaultsConversion(t *testing.T) {
	v := 1.5
	b := true
	spec := BodySpec{
		BounceX:            &v,
		CollideWorldBounds: &b,
		BoundsRect:         &RectSpec{X: 1, Y: 2, Width: 3, Height: 4},
	}

	d := spec.Defaults()
	if d.BounceX == nil || *d.BounceX != 1.5 {
		t.Fatalf("BounceX not carried over")
	}
	if d.CollideWorldBounds == nil || !*d.CollideWorldBounds {
		t.Fatalf("CollideWorldBounds not carried over")
	}
	if d.BoundsRect == nil || d.BoundsRect.Height != 4 {
		t.Fatalf("BoundsRect = %+v, want height 4", d.BoundsRect)
	}
	if d.VelocityX != nil || d.Mass != nil {
		t.Fatalf("unset fields must stay nil")
	}
}

func TestLoadGroupSpecEmbedded(t *testing.T) {
	cases := []struct {
		name         string
		wantQuantity int
		wantScript   bool
	}{
		{"crates", 6, true},
		{"balls", 10, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := LoadGroupSpec(c.name)
			if err != nil {
				t.Fatalf("LoadGroupSpec(%s): %v", c.name, err)
			}
			if spec.Name != c.name {
				t.Fatalf("Name = %q, want %q", spec.Name, c.name)
			}
			if spec.Quantity != c.wantQuantity {
				t.Fatalf("Quantity = %d, want %d", spec.Quantity, c.wantQuantity)
			}
			if (spec.OnCreateScript != "") != c.wantScript {
				t.Fatalf("OnCreateScript = %q, want script: %v", spec.OnCreateScript, c.wantScript)
			}
			if spec.Body.CollideWorldBounds == nil || !*spec.Body.CollideWorldBounds {
				t.Fatalf("both demo groups confine to world bounds")
			}
		})
	}
}

func TestGroupSpecGroupConfig(t *testing.T) {
	spec, err := LoadGroupSpec("crates")
	if err != nil {
		t.Fatalf("LoadGroupSpec: %v", err)
	}

	cfg := spec.GroupConfig()
	if cfg.New == nil {
		t.Fatalf("config must carry a sprite factory")
	}
	if cfg.Quantity != spec.Quantity || cfg.MaxSize != spec.MaxSize {
		t.Fatalf("pool settings not carried over: %+v", cfg.Config)
	}
	if cfg.Defaults.BounceX == nil {
		t.Fatalf("body defaults not carried over")
	}
}

func TestYAMLColorUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `"#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, false},
		{"rgba", `"#ff800080"`, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0x80}, false},
		{"bad_length", `"#ff80"`, color.NRGBA{}, true},
		{"bad_hex", `"#zzzzzz"`, color.NRGBA{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var col YAMLColor
			err := yaml.Unmarshal([]byte(c.src), &col)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", c.src)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if col.Color != c.want {
				t.Fatalf("color = %+v, want %+v", col.Color, c.want)
			}
		})
	}
}
