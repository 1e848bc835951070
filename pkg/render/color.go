// pkg/render/color.go
package render

import (
	"hash/fnv"
	"image/color"
)

// Palette holds every colour the lane renderer uses.
type Palette struct {
	Background color.RGBA
	Cell       color.RGBA
	GridLine   color.RGBA
	Spawn      color.RGBA
	Goal       color.RGBA
	Enemy      color.RGBA
	Slowed     color.RGBA
	Projectile color.RGBA
	Path       color.RGBA
	HealthBack color.RGBA
	HealthFill color.RGBA
	Progress   color.RGBA
	Selection  color.RGBA
	Text       color.RGBA
	Alert      color.RGBA
}

// DefaultPalette: тёмная тема по умолчанию.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 18, G: 20, B: 26, A: 255},
		Cell:       color.RGBA{R: 38, G: 44, B: 54, A: 255},
		GridLine:   color.RGBA{R: 58, G: 64, B: 76, A: 255},
		Spawn:      color.RGBA{R: 60, G: 170, B: 90, A: 255},
		Goal:       color.RGBA{R: 190, G: 60, B: 60, A: 255},
		Enemy:      color.RGBA{R: 230, G: 120, B: 60, A: 255},
		Slowed:     color.RGBA{R: 120, G: 190, B: 240, A: 255},
		Projectile: color.RGBA{R: 250, G: 240, B: 150, A: 255},
		Path:       color.RGBA{R: 90, G: 90, B: 120, A: 255},
		HealthBack: color.RGBA{R: 60, G: 20, B: 20, A: 255},
		HealthFill: color.RGBA{R: 90, G: 210, B: 90, A: 255},
		Progress:   color.RGBA{R: 240, G: 200, B: 70, A: 255},
		Selection:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Text:       color.RGBA{R: 225, G: 225, B: 230, A: 255},
		Alert:      color.RGBA{R: 255, G: 90, B: 90, A: 255},
	}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// TowerColor derives a stable colour from a tower type ID.
func TowerColor(typeID string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(typeID))
	v := h.Sum32()
	return color.RGBA{
		R: 80 + uint8(v&0x7f),
		G: 80 + uint8((v>>8)&0x7f),
		B: 80 + uint8((v>>16)&0x7f),
		A: 255,
	}
}
