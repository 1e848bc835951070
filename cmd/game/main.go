// cmd/game/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/render"
)

var numberKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type AppGame struct {
	game           *app.Game
	renderer       *render.LaneRenderer
	lastUpdateTime time.Time
	paused         bool
	speed          float64

	buildable []string
	selection render.Selection
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now

	a.handleInput()
	if !a.paused {
		// Ускорение: несколько шагов за кадр, каждый не длиннее MaxDeltaTime.
		for i := 0; i < int(a.speed); i++ {
			a.game.Tick(deltaTime)
		}
	}
	return nil
}

func (a *AppGame) handleInput() {
	for i, key := range numberKeys {
		if i < len(a.buildable) && inpututil.IsKeyJustPressed(key) {
			a.selection.TowerType = a.buildable[i]
		}
	}

	x, y := ebiten.CursorPosition()
	a.selection.Hover, a.selection.HasHover = a.renderer.ScreenToCell(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && a.selection.HasHover {
		a.click()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && a.selection.HasHover {
		if id, ok := a.game.ECS.TowerAt(a.selection.Hover); ok {
			if refund, err := a.game.SellTower(id); err != nil {
				a.selection.Message = fmt.Sprintf("sell: %v", err)
			} else {
				a.selection.Message = fmt.Sprintf("sold for %d", refund)
			}
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		if id, ok := a.lastSelected(); ok {
			a.report("upgrade", func() error { return a.game.UpgradeTower(id) })
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if id, ok := a.lastSelected(); ok {
			a.report("repair", func() error { return a.game.RepairTower(id) })
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if n := len(a.selection.Towers); n >= 2 {
			host, partner := a.selection.Towers[n-2], a.selection.Towers[n-1]
			a.report("fuse", func() error {
				_, err := a.game.FuseTowers(host, partner)
				return err
			})
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if !a.game.RequestNextWave() {
			a.selection.Message = "next wave: not now"
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.paused = !a.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		a.speed = min(a.speed+1, 4)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		a.speed = max(a.speed-1, 1)
	}
}

// click selects a tower under the cursor, or builds the selected type on an empty cell.
func (a *AppGame) click() {
	cell := a.selection.Hover
	if id, ok := a.game.ECS.TowerAt(cell); ok {
		a.selection.Towers = append(a.selection.Towers, id)
		if len(a.selection.Towers) > 2 {
			a.selection.Towers = a.selection.Towers[len(a.selection.Towers)-2:]
		}
		if n := len(a.selection.Towers); n == 2 {
			if result, ok := a.game.PreviewFusion(a.selection.Towers[0], a.selection.Towers[1]); ok {
				a.selection.Message = "F fuses into " + result
			}
		}
		return
	}
	a.report("build", func() error {
		_, err := a.game.PlaceTower(cell, a.selection.TowerType)
		return err
	})
}

func (a *AppGame) lastSelected() (types.EntityID, bool) {
	if n := len(a.selection.Towers); n > 0 {
		return a.selection.Towers[n-1], true
	}
	return 0, false
}

func (a *AppGame) report(action string, fn func() error) {
	if err := fn(); err != nil {
		a.selection.Message = fmt.Sprintf("%s: %v", action, err)
		return
	}
	a.selection.Message = action + ": ok"
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.game, a.selection)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settingsPath := flag.String("settings", "", "settings YAML file (defaults built in)")
	catalogPath := flag.String("catalog", "", "catalog JSON/YAML file (defaults built in)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "bad -log-level: %v\n", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	settings := config.DefaultSettings()
	if *settingsPath != "" {
		var err error
		if settings, err = config.LoadSettings(*settingsPath); err != nil {
			logger.Error("failed to load settings", "err", err)
			os.Exit(1)
		}
	}
	catalog, err := loadCatalog(*catalogPath, logger)
	if err != nil {
		logger.Error("failed to load catalog", "err", err)
		os.Exit(1)
	}

	game, err := app.NewGame(settings, catalog, logger)
	if err != nil {
		logger.Error("failed to create game", "err", err)
		os.Exit(1)
	}
	game.Initialize()
	defer game.Teardown()

	appGame := &AppGame{
		game:           game,
		renderer:       render.NewLaneRenderer(game.Grid, config.ScreenWidth, config.ScreenHeight),
		lastUpdateTime: time.Now(),
		speed:          1,
		buildable:      catalog.Buildable(),
	}
	if len(appGame.buildable) > 0 {
		appGame.selection.TowerType = appGame.buildable[0]
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Lane Defense")
	if err := ebiten.RunGame(appGame); err != nil {
		logger.Error("game loop failed", "err", err)
		os.Exit(1)
	}
}

func loadCatalog(path string, logger *slog.Logger) (*defs.Catalog, error) {
	if path == "" {
		return defs.DefaultCatalog(logger)
	}
	return defs.LoadCatalog(path, logger)
}
