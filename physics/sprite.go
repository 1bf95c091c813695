package physics

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is the standard physics-enabled entity type groups fall back
// to when no factory is configured. Position is the sprite center, in
// world coordinates.
type Sprite struct {
	image         *ebiten.Image
	body          *Body
	x, y          float64
	width, height float64
	angle         float64
	active        bool
}

// NewSprite creates an active sprite centered at (x, y).
func NewSprite(x, y, w, h float64) *Sprite {
	return &Sprite{
		x:      x,
		y:      y,
		width:  w,
		height: h,
		active: true,
	}
}

// Active reports whether the sprite is live in its group.
func (s *Sprite) Active() bool {
	return s.active
}

// SetActive flips the sprite's live flag.
func (s *Sprite) SetActive(active bool) {
	s.active = active
}

// Body returns the attached physics body, or nil.
func (s *Sprite) Body() *Body {
	return s.body
}

// SetBody attaches or clears the physics body reference. The body
// itself belongs to the World.
func (s *Sprite) SetBody(b *Body) {
	s.body = b
}

// Position returns the sprite center.
func (s *Sprite) Position() (x, y float64) {
	return s.x, s.y
}

// SetPosition moves the sprite center. The World calls this after each
// step to mirror the body position.
func (s *Sprite) SetPosition(x, y float64) {
	s.x = x
	s.y = y
}

// Size returns the sprite extents, which also size its collision box.
func (s *Sprite) Size() (w, h float64) {
	return s.width, s.height
}

// Angle returns the sprite rotation in radians.
func (s *Sprite) Angle() float64 {
	return s.angle
}

// SetAngle rotates the sprite about its center.
func (s *Sprite) SetAngle(radians float64) {
	s.angle = radians
}

// Image returns the sprite image, or nil when none was set.
func (s *Sprite) Image() *ebiten.Image {
	return s.image
}

// SetImage replaces the sprite image.
func (s *Sprite) SetImage(img *ebiten.Image) {
	s.image = img
}

// Fill replaces the sprite image with a solid rectangle of its own
// size in the given color.
func (s *Sprite) Fill(c color.Color) {
	w := int(s.width)
	h := int(s.height)
	if w <= 0 || h <= 0 {
		return
	}
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	s.image = img
}

// Draw renders the sprite rotated about its center. Inactive sprites
// and sprites without an image draw nothing.
func (s *Sprite) Draw(screen *ebiten.Image) {
	if s == nil || !s.active || s.image == nil {
		return
	}
	bounds := s.image.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
	op.GeoM.Rotate(s.angle)
	op.GeoM.Translate(s.x, s.y)
	screen.DrawImage(s.image, op)
}
