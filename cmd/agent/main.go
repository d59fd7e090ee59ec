// Command agent is the standalone runner for the hearthold planning
// agent. A production host embeds internal/scheduler.Agent directly as a
// library and supplies its own gameiface.EngineView/CommandSink; this
// binary exists to drive the same Agent against a small self-contained
// fixture engine for local demonstration and manual soak-testing (spec
// §10.6), grounded on the teacher's cmd/teraglest entrypoint and
// other_examples' nstehr-vimy main.go for the context/signal shutdown
// shape.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hearthold/internal/config"
	"hearthold/internal/scheduler"
	"hearthold/internal/telemetry"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a YAML scenario file (defaults to a built-in two-seat skirmish)")
	settingsPath := flag.String("settings", "", "path to a YAML agent-settings file (defaults to config.Defaults())")
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	production := flag.Bool("production", false, "use JSON log encoding")
	tickRate := flag.Duration("tick-rate", 200*time.Millisecond, "wall-clock duration per simulated engine tick")
	snapshotEvery := flag.Int("snapshot-every", 50, "log a Snapshot() line every N ticks (0 disables)")
	flag.Parse()

	if err := telemetry.Init(*logLevel, *production); err != nil {
		panic(err)
	}
	defer telemetry.Sync()
	log := telemetry.L()

	scn, err := LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatal("failed to load scenario", zap.Error(err))
	}
	settings := config.Defaults()
	if *settingsPath != "" {
		settings, err = config.Load(*settingsPath)
		if err != nil {
			log.Fatal("failed to load settings", zap.Error(err))
		}
	}

	engine := newFixtureEngine(scn, log)

	agents := make(map[int]*scheduler.Agent, len(scn.Players))
	for _, pl := range scn.Players {
		seatLog := log.With(zap.Int("player", pl.ID))
		agents[pl.ID] = scheduler.New(pl.ID, engine.grid, engine, engine.sinkFor(pl.ID), settings, seatLog)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting hearthold agent",
		zap.Int("seats", len(agents)),
		zap.Int("map_width", scn.MapWidth),
		zap.Int("map_height", scn.MapHeight),
		zap.Duration("tick_rate", *tickRate),
	)

	runFixtureLoop(ctx, engine, agents, *tickRate, *snapshotEvery, log)

	log.Info("shutting down")
}

// runFixtureLoop advances the fixture engine and every seat's agent in
// lockstep until ctx is cancelled. A single tick call never blocks (spec
// §5); the context governs the process's overall lifetime, not any one
// planner call.
func runFixtureLoop(ctx context.Context, engine *fixtureEngine, agents map[int]*scheduler.Agent, tickRate time.Duration, snapshotEvery int, log *zap.Logger) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			engine.advance()
			for id, a := range agents {
				a.Tick()
				if snapshotEvery > 0 && int(engine.Tick())%snapshotEvery == 0 {
					snap := a.Snapshot()
					log.Info("snapshot",
						zap.Int("player", id),
						zap.Uint64("tick", snap.Tick),
						zap.Bool("defeated", snap.Defeated),
						zap.Int("buildings", snap.BuildingCount),
						zap.Int("enumerator_anchors", snap.EnumeratorAnchors),
					)
				}
			}
		}
	}
}
