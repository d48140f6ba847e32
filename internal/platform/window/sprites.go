package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/slimekoban/internal/level"
)

// sprite identifies one tile-sized image.
type sprite int

const (
	spriteGround sprite = iota
	spriteWall
	spriteGoal
	spriteDark
	spriteBox
	spriteBoxOnGoal
	spritePlayer
	spriteCount
)

// Palette, one entry per sprite: base fill and detail color.
var palette = [spriteCount][2]color.RGBA{
	spriteGround:    {{0x3a, 0x32, 0x2c, 0xff}, {0x45, 0x3c, 0x35, 0xff}},
	spriteWall:      {{0x6b, 0x6b, 0x7a, 0xff}, {0x4a, 0x4a, 0x56, 0xff}},
	spriteGoal:      {{0x3a, 0x32, 0x2c, 0xff}, {0xe8, 0xc5, 0x47, 0xff}},
	spriteDark:      {{0x08, 0x08, 0x0c, 0xff}, {0x08, 0x08, 0x0c, 0xff}},
	spriteBox:       {{0xb8, 0x6b, 0x2e, 0xff}, {0x7a, 0x42, 0x16, 0xff}},
	spriteBoxOnGoal: {{0x5d, 0xbb, 0x63, 0xff}, {0x2e, 0x7d, 0x32, 0xff}},
	spritePlayer:    {{0x00, 0x00, 0x00, 0x00}, {0x7c, 0xd9, 0x6a, 0xff}},
}

// tileSprite returns the sprite for a static tile. Spawn tiles draw as ground.
func tileSprite(k level.TileKind) sprite {
	switch k {
	case level.Wall:
		return spriteWall
	case level.Goal:
		return spriteGoal
	case level.Darkness:
		return spriteDark
	default:
		return spriteGround
	}
}

// spriteArt draws sprite s at size×size pixels.
func spriteArt(s sprite, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	base, detail := palette[s][0], palette[s][1]
	inset := max(size/8, 1)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := base
			switch s {
			case spriteWall:
				// Brick courses, offset every other row.
				row := y / max(size/4, 1)
				off := 0
				if row%2 == 1 {
					off = size / 4
				}
				if y%max(size/4, 1) == 0 || (x+off)%max(size/2, 1) == 0 {
					c = detail
				}
			case spriteGround:
				if (x+y)%max(size/3, 2) == 0 && x%2 == 0 {
					c = detail
				}
			case spriteGoal:
				if inRing(x, y, size, inset) {
					c = detail
				}
			case spriteBox, spriteBoxOnGoal:
				edge := x < inset || y < inset || x >= size-inset || y >= size-inset
				if edge || x == y || x == size-1-y {
					c = detail
				}
			case spritePlayer:
				if inBlob(x, y, size) {
					c = detail
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// inRing reports whether (x, y) lies on a ring centered in the tile.
func inRing(x, y, size, width int) bool {
	c := size / 2
	dx, dy := x-c, y-c
	d2 := dx*dx + dy*dy
	outer := size/2 - width
	inner := outer - width
	return d2 <= outer*outer && d2 >= inner*inner
}

// inBlob reports whether (x, y) lies inside the slime: a half disc resting
// on the bottom of the tile.
func inBlob(x, y, size int) bool {
	r := size * 3 / 8
	cx, cy := size/2, size-size/8
	if y > cy {
		return false
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// spriteSheet lazily converts sprite art into ebiten images.
type spriteSheet struct {
	size   int
	images [spriteCount]*ebiten.Image
}

func newSpriteSheet(size int) *spriteSheet {
	return &spriteSheet{size: size}
}

func (s *spriteSheet) image(sp sprite) *ebiten.Image {
	if s.images[sp] == nil {
		s.images[sp] = ebiten.NewImageFromImage(spriteArt(sp, s.size))
	}
	return s.images[sp]
}
