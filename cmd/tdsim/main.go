// cmd/tdsim/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/utils"
)

// result is the outcome of one simulated match.
type result struct {
	ID      uuid.UUID
	Seed    int64
	Wave    int
	Outcome string
	Reason  string
	Gold    int
	Towers  int
	Kills   int
	Escapes int
	Seconds float64
}

func main() {
	settingsPath := flag.String("settings", "", "settings YAML file (defaults built in)")
	catalogPath := flag.String("catalog", "", "catalog JSON/YAML file (defaults built in)")
	runs := flag.Int("runs", 8, "number of matches")
	workers := flag.Int("workers", 4, "matches simulated in parallel")
	seconds := flag.Float64("seconds", 600, "simulated seconds per match")
	seed := flag.Int64("seed", 1, "seed of the first match; match i uses seed+i")
	logLevel := flag.String("log-level", "warn", "debug, info, warn or error")
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
	var (
		catalog *defs.Catalog
		err     error
	)
	if *catalogPath == "" {
		catalog, err = defs.DefaultCatalog(logger)
	} else {
		catalog, err = defs.LoadCatalog(*catalogPath, logger)
	}
	if err != nil {
		logger.Error("failed to load catalog", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runAll(ctx, settings, catalog, *runs, *workers, *seconds, *seed, logger)
	if err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
	printReport(results)
}

// runAll simulates runs matches with at most workers running at once. The
// catalog is shared read-only; every match owns the rest of its state.
func runAll(ctx context.Context, settings config.Settings, catalog *defs.Catalog, runs, workers int, seconds float64, seed int64, logger *slog.Logger) ([]result, error) {
	results := make([]result, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			s := settings
			s.Seed = seed + int64(i)
			res, err := runMatch(ctx, s, catalog, seconds, logger)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runMatch(ctx context.Context, settings config.Settings, catalog *defs.Catalog, seconds float64, logger *slog.Logger) (result, error) {
	game, err := app.NewGame(settings, catalog, logger)
	if err != nil {
		return result{}, err
	}
	game.Initialize()
	defer game.Teardown()

	b := newBot(game, utils.NewPRNGService(settings.Seed))
	steps := int(seconds / config.FixedTimeStep)
	for i := 0; i < steps && !game.Over(); i++ {
		if i%600 == 0 {
			if err := ctx.Err(); err != nil {
				return result{}, err
			}
		}
		b.Update(config.FixedTimeStep)
		game.Tick(config.FixedTimeStep)
	}

	res := result{
		ID:      game.ID(),
		Seed:    settings.Seed,
		Wave:    game.WaveInfo().Number,
		Outcome: "survived",
		Gold:    game.Gold(),
		Seconds: game.GameTime(),
	}
	session := game.Session()
	switch {
	case session.Defeated:
		res.Outcome = "defeat"
	case session.Victorious:
		res.Outcome = "victory"
	}
	res.Reason = session.Reason
	res.Escapes = session.Escapes
	for _, t := range game.Towers() {
		res.Towers++
		res.Kills += t.Kills
	}
	return res, nil
}

func printReport(results []result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCH\tSEED\tOUTCOME\tWAVE\tTIME\tGOLD\tTOWERS\tKILLS\tESCAPES\tREASON")
	outcomes := map[string]int{}
	totalWaves := 0
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%.0fs\t%d\t%d\t%d\t%d\t%s\n",
			r.ID.String()[:8], r.Seed, r.Outcome, r.Wave, r.Seconds, r.Gold, r.Towers, r.Kills, r.Escapes, r.Reason)
		outcomes[r.Outcome]++
		totalWaves += r.Wave
	}
	w.Flush()
	if len(results) > 0 {
		fmt.Printf("\n%d runs: %d victory, %d defeat, %d survived, average wave %.1f\n",
			len(results), outcomes["victory"], outcomes["defeat"], outcomes["survived"],
			float64(totalWaves)/float64(len(results)))
	}
}
