// Command citysim runs the city development simulation server.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/metropolis/internal/api"
	"github.com/talgya/metropolis/internal/catalog"
	"github.com/talgya/metropolis/internal/city"
	"github.com/talgya/metropolis/internal/config"
	"github.com/talgya/metropolis/internal/engine"
	"github.com/talgya/metropolis/internal/entropy"
	"github.com/talgya/metropolis/internal/persistence"
	"github.com/talgya/metropolis/internal/visual"
	"github.com/talgya/metropolis/internal/worldgen"
)

func main() {
	configPath := flag.String("config", "citysim.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	tickInterval, err := time.ParseDuration(cfg.Server.TickInterval)
	if err != nil {
		slog.Error("bad tick_interval", "value", cfg.Server.TickInterval, "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.Server.DBPath), 0755)
	db, err := persistence.Open(cfg.Server.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Server.DBPath)

	// ── Engine ────────────────────────────────────────────────────────
	var notifier visual.Notifier = visual.Nop{}
	if cfg.Server.VisualURL != "" {
		notifier = visual.NewHTTP(cfg.Server.VisualURL)
	}
	eng := engine.New(cfg.Engine, catalog.New(), entropy.NewSeeded(cfg.Server.Seed), notifier)

	var tick uint64
	if db.HasCities() {
		slog.Info("found saved cities, loading...")
		cities, err := db.LoadCities()
		if err != nil {
			slog.Error("failed to load cities", "error", err)
			os.Exit(1)
		}
		eng.Restore(cities, nil)
		if v, err := db.GetMeta("last_tick"); err == nil {
			if n, err := strconv.ParseUint(v, 10, 64); err == nil {
				tick = n
			}
		}
		slog.Info("cities restored", "count", len(cities), "tick", tick)
	} else {
		slog.Info("seeding new region", "seed", cfg.Server.Seed, "cities", cfg.Server.SeedCities)
		gen := worldgen.DefaultGenConfig()
		gen.Seed = cfg.Server.Seed
		gen.Cities = cfg.Server.SeedCities
		founded := worldgen.Seed(eng, gen)
		linkTradePartners(founded)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	srv := &api.Server{Eng: eng, Port: cfg.Server.Port, AdminKey: cfg.Server.AdminKey}
	srv.Start()

	// ── Simulation loop ───────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	slog.Info("simulation started", "interval", tickInterval)

	for {
		select {
		case <-ticker.C:
			tick++
			for _, c := range eng.AllCities() {
				if _, err := eng.SimulateTimeStep(c.ID); err != nil {
					slog.Error("tick failed", "city", c.ID, "error", err)
				}
			}

			// Yearly report and snapshot, every 12 simulated months.
			if tick%12 == 0 {
				report(eng, tick)
				if err := db.SaveSnapshot(eng.AllCities(), eng.Events(), tick); err != nil {
					slog.Error("snapshot failed", "error", err)
				}
			}

		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
			if err := db.SaveSnapshot(eng.AllCities(), eng.Events(), tick); err != nil {
				slog.Error("final save failed", "error", err)
			}
			return
		}
	}
}

// report logs a one-line summary per city plus regional totals.
func report(eng *engine.Engine, tick uint64) {
	cities := eng.AllCities()
	totalPop := int64(0)
	totalOutput := 0.0
	for _, c := range cities {
		totalPop += c.Population
		totalOutput += c.EconomicOutput
		slog.Info("city report",
			"city", c.Name,
			"population", humanize.Comma(c.Population),
			"output", humanize.SIWithDigits(c.EconomicOutput, 1, ""),
			"qol", int(c.QualityOfLife),
			"attractiveness", int(c.Attractiveness),
			"unemployment", humanize.FtoaWithDigits(c.UnemploymentRate*100, 1)+"%",
			"specialization", c.CurrentSpecialization,
		)
	}
	slog.Info("regional report",
		"tick", tick,
		"year", tick/12,
		"cities", len(cities),
		"total_population", humanize.Comma(totalPop),
		"total_output", humanize.SIWithDigits(totalOutput, 1, ""),
	)
}

// linkTradePartners connects each city to its two nearest neighbors.
func linkTradePartners(cities []*city.City) {
	for _, c := range cities {
		type neighbor struct {
			id   string
			dist float64
		}
		var neighbors []neighbor
		for _, other := range cities {
			if other.ID == c.ID {
				continue
			}
			neighbors = append(neighbors, neighbor{
				id:   other.ID,
				dist: worldgen.Distance(c.Coordinates, other.Coordinates),
			})
		}
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].dist < neighbors[j].dist })
		for i := 0; i < len(neighbors) && i < 2; i++ {
			c.TradePartners = append(c.TradePartners, neighbors[i].id)
		}
	}
}
