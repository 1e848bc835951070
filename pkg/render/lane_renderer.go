// pkg/render/lane_renderer.go
package render

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

const (
	hudHeight = 96
	margin    = 16
)

// Selection is the viewer state the renderer highlights.
type Selection struct {
	TowerType string
	Towers    []types.EntityID
	Hover     grid.Cell
	HasHover  bool
	Message   string
}

// LaneRenderer draws a match as flat rectangles and circles with a text HUD.
type LaneRenderer struct {
	grid         *grid.Grid
	screenWidth  int
	screenHeight int
	scale        float64 // pixels per world unit
	offsetX      float64
	offsetY      float64
	palette      Palette
	fontFace     font.Face
}

func NewLaneRenderer(g *grid.Grid, screenWidth, screenHeight int) *LaneRenderer {
	worldW := float64(g.Width) * g.CellSize
	worldH := float64(g.Height) * g.CellSize
	scale := math.Min(
		float64(screenWidth-2*margin)/worldW,
		float64(screenHeight-hudHeight-2*margin)/worldH,
	)
	return &LaneRenderer{
		grid:         g,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		scale:        scale,
		offsetX:      (float64(screenWidth) - worldW*scale) / 2,
		offsetY:      hudHeight + margin,
		palette:      DefaultPalette(),
		fontFace:     basicfont.Face7x13,
	}
}

// WorldToScreen converts a world point to screen pixels.
func (r *LaneRenderer) WorldToScreen(p grid.Vec2) (float32, float32) {
	x := r.offsetX + (p.X-r.grid.Origin.X)*r.scale
	y := r.offsetY + (p.Y-r.grid.Origin.Y)*r.scale
	return float32(x), float32(y)
}

// ScreenToCell converts screen pixels to the grid cell under them.
func (r *LaneRenderer) ScreenToCell(x, y int) (grid.Cell, bool) {
	world := grid.Vec2{
		X: (float64(x)-r.offsetX)/r.scale + r.grid.Origin.X,
		Y: (float64(y)-r.offsetY)/r.scale + r.grid.Origin.Y,
	}
	c := r.grid.WorldToGrid(world)
	return c, r.grid.InBounds(c)
}

func (r *LaneRenderer) Draw(screen *ebiten.Image, game *app.Game, sel Selection) {
	screen.Fill(r.palette.Background)
	r.drawCells(screen, game, sel)
	r.drawPaths(screen, game)
	r.drawTowers(screen, game, sel)
	r.drawEnemies(screen, game)
	r.drawProjectiles(screen, game)
	r.drawHUD(screen, game, sel)
}

func (r *LaneRenderer) cellRect(c grid.Cell) (x, y, size float32) {
	corner := grid.Vec2{
		X: r.grid.Origin.X + float64(c.X)*r.grid.CellSize,
		Y: r.grid.Origin.Y + float64(c.Y)*r.grid.CellSize,
	}
	x, y = r.WorldToScreen(corner)
	return x, y, float32(r.grid.CellSize * r.scale)
}

func (r *LaneRenderer) drawCells(screen *ebiten.Image, game *app.Game, sel Selection) {
	for cy := 0; cy < r.grid.Height; cy++ {
		for cx := 0; cx < r.grid.Width; cx++ {
			c := grid.Cell{X: cx, Y: cy}
			x, y, size := r.cellRect(c)
			fill := r.palette.Cell
			switch c {
			case game.Spawn():
				fill = r.palette.Spawn
			case game.Goal():
				fill = r.palette.Goal
			}
			vector.DrawFilledRect(screen, x, y, size, size, fill, false)
			vector.StrokeRect(screen, x, y, size, size, 1, r.palette.GridLine, false)
		}
	}
	if sel.HasHover {
		x, y, size := r.cellRect(sel.Hover)
		clr := r.palette.Selection
		if !game.CanPlaceTower(sel.Hover) {
			clr = r.palette.Alert
		}
		vector.StrokeRect(screen, x+1, y+1, size-2, size-2, 2, clr, false)
	}
}

func (r *LaneRenderer) drawPaths(screen *ebiten.Image, game *app.Game) {
	for _, enemy := range game.Enemies() {
		if !enemy.Active {
			continue
		}
		px, py := r.WorldToScreen(enemy.Position)
		for _, p := range enemy.Path {
			x, y := r.WorldToScreen(p)
			vector.StrokeLine(screen, px, py, x, y, 1, r.palette.Path, false)
			px, py = x, y
		}
	}
}

func (r *LaneRenderer) drawTowers(screen *ebiten.Image, game *app.Game, sel Selection) {
	size := float32(r.grid.CellSize * r.scale)
	for _, tower := range game.Towers() {
		x, y := r.WorldToScreen(tower.Position)
		clr := TowerColor(tower.TypeID)
		if tower.Mode != "idle" || tower.Locked {
			clr = DarkenColor(clr)
		}
		half := size * 0.4
		vector.DrawFilledRect(screen, x-half, y-half, 2*half, 2*half, clr, false)
		if slices.Contains(sel.Towers, tower.ID) {
			vector.StrokeRect(screen, x-half-2, y-half-2, 2*half+4, 2*half+4, 2, r.palette.Selection, false)
			if tower.Stats.Range > 0 {
				vector.StrokeCircle(screen, x, y, float32(tower.Stats.Range*r.scale), 1, r.palette.Selection, true)
			}
		}
		r.drawBar(screen, x-half, y+half+2, 2*half, tower.Health/tower.MaxHealth, r.palette.HealthFill)
		if tower.Mode != "idle" {
			r.drawBar(screen, x-half, y-half-5, 2*half, tower.Progress, r.palette.Progress)
		}
		if tower.Tier > 0 {
			text.Draw(screen, fmt.Sprintf("%d", tower.Tier), r.fontFace, int(x-half)+2, int(y-half)+12, r.palette.Text)
		}
	}
}

func (r *LaneRenderer) drawEnemies(screen *ebiten.Image, game *app.Game) {
	radius := float32(r.grid.CellSize * r.scale * 0.25)
	for _, enemy := range game.Enemies() {
		if !enemy.Active {
			continue
		}
		x, y := r.WorldToScreen(enemy.Position)
		clr := r.palette.Enemy
		if enemy.SlowMultiplier < 1 {
			clr = r.palette.Slowed
		}
		vector.DrawFilledCircle(screen, x, y, radius, clr, true)
		if enemy.Attacking != 0 {
			vector.StrokeCircle(screen, x, y, radius+2, 1, r.palette.Alert, true)
		}
		r.drawBar(screen, x-radius, y-radius-5, 2*radius, enemy.Health/enemy.MaxHealth, r.palette.HealthFill)
	}
}

func (r *LaneRenderer) drawProjectiles(screen *ebiten.Image, game *app.Game) {
	for _, p := range game.Projectiles() {
		x, y := r.WorldToScreen(p)
		vector.DrawFilledCircle(screen, x, y, 3, r.palette.Projectile, true)
	}
}

func (r *LaneRenderer) drawBar(screen *ebiten.Image, x, y, w float32, fraction float64, fill color.RGBA) {
	fraction = math.Max(0, math.Min(1, fraction))
	vector.DrawFilledRect(screen, x, y, w, 3, r.palette.HealthBack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(fraction), 3, fill, false)
}

func (r *LaneRenderer) drawHUD(screen *ebiten.Image, game *app.Game, sel Selection) {
	wave := game.WaveInfo()
	session := game.Session()

	var essence []string
	for kind, n := range game.Essence() {
		essence = append(essence, fmt.Sprintf("%s:%d", kind, n))
	}
	slices.Sort(essence)
	lines := []string{
		fmt.Sprintf("Gold %d   Essence [%s]   Lives %d   Escapes %d   Mode %s",
			game.Gold(), strings.Join(essence, " "), session.Lives, session.Escapes, session.Mode),
		fmt.Sprintf("Wave %d   %s %.1fs   Alive %d   Build: %s",
			wave.Number, wave.State, wave.Timer, wave.Alive, sel.TowerType),
	}
	if next := game.PreviewWaves(3); len(next) > 0 {
		var parts []string
		for _, p := range next {
			parts = append(parts, fmt.Sprintf("%d:%s x%d", p.Wave, p.EnemyID, p.Count))
		}
		lines = append(lines, "Next "+strings.Join(parts, "  "))
	}
	if sel.Message != "" {
		lines = append(lines, sel.Message)
	}
	for i, line := range lines {
		text.Draw(screen, line, r.fontFace, margin, margin+14*(i+1), r.palette.Text)
	}

	if session.Defeated || session.Victorious {
		msg := "DEFEAT: " + session.Reason
		if session.Victorious {
			msg = "VICTORY: " + session.Reason
		}
		text.Draw(screen, msg, r.fontFace, r.screenWidth/2-len(msg)*7/2, r.screenHeight/2, r.palette.Alert)
	}
}
