// Package main is the entry point for levelforge.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/google/uuid"

	"github.com/samdwyer/levelforge/internal/blueprint"
	"github.com/samdwyer/levelforge/internal/config"
	"github.com/samdwyer/levelforge/internal/level"
	"github.com/samdwyer/levelforge/internal/telemetry"
)

func main() {
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	// Load .env file for local development
	// This makes HONEYCOMB_LEVELFORGE_API_KEY available
	cfg, err := config.Load()
	if err != nil {
		logger.Error(err, "loading configuration")
		os.Exit(1)
	}

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	flag.StringVar(&cfg.Blueprint, "blueprint", cfg.Blueprint, "complex or definition id to build")
	flag.StringVar(&cfg.Interior, "interior", cfg.Interior, "build a building interior with this name instead of a blueprint")
	flag.StringVar(&cfg.Output, "out", cfg.Output, "write the JSON snapshot to this file instead of stdout")
	flag.BoolVar(&cfg.ASCII, "ascii", cfg.ASCII, "print each level's grid to stderr")
	flag.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP")
	flag.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity")
	list := flag.Bool("list", false, "list available blueprints and exit")
	flag.Parse()

	stdr.SetVerbosity(cfg.Verbosity)

	registry, err := blueprint.LoadRegistry()
	if err != nil {
		logger.Error(err, "loading blueprints")
		os.Exit(1)
	}
	if *list {
		printBlueprints(registry)
		return
	}

	ctx := context.Background()

	if cfg.Telemetry {
		// Set up OTEL environment variables from our .env variables
		config.SetupOTelEnv()

		shutdown, err := telemetry.Setup(ctx, logger.WithName("otel"))
		if err != nil {
			logger.Info("telemetry setup failed, running without observability", "error", err.Error())
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error(err, "shutting down telemetry")
				}
			}()
		}
	}

	if err := run(ctx, cfg, registry, logger); err != nil {
		logger.Error(err, "generation failed")
		os.Exit(1)
	}
}

// run builds the configured blueprint or interior into a fresh store and writes it out.
func run(ctx context.Context, cfg config.Config, registry *blueprint.Registry, logger logr.Logger) error {
	seed := cfg.ResolvedSeed()

	store := level.NewMemoryStore()
	builder := level.NewBuilder(store, registry, config.NewRand(seed), level.WithLogger(logger.WithName("level")))

	// Stand-in for the overland map marker the level is entered from
	anchor := level.Anchor{MarkerID: uuid.New(), MapID: uuid.New()}
	if cfg.Interior != "" {
		logger.Info("building interior", "name", cfg.Interior)
		if _, err := builder.BuildInterior(ctx, anchor, cfg.Interior); err != nil {
			return err
		}
	} else {
		logger.Info("building", "blueprint", cfg.Blueprint, "seed", seed)
		if _, err := builder.BuildComplex(ctx, anchor, cfg.Blueprint); err != nil {
			return err
		}
	}

	snapshot := store.Snapshot()
	if cfg.ASCII {
		if err := printLevels(snapshot); err != nil {
			return err
		}
	}
	return writeSnapshot(cfg.Output, snapshot)
}

func writeSnapshot(path string, snapshot level.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printLevels(snapshot level.Snapshot) error {
	for _, lvl := range snapshot.Levels {
		grid, rooms, err := lvl.Geometry.Layout()
		if err != nil {
			return fmt.Errorf("decoding level %s: %w", lvl.Name, err)
		}
		fmt.Fprintf(os.Stderr, "== %s (depth %d, %d rooms, fingerprint %016x)\n",
			lvl.Name, lvl.Depth, len(rooms), grid.Fingerprint())
		fmt.Fprint(os.Stderr, grid.String())
	}
	return nil
}

func printBlueprints(registry *blueprint.Registry) {
	fmt.Println("Complexes:")
	for _, id := range registry.ComplexIDs() {
		c := registry.Complex(id)
		fmt.Printf("  %-14s %s (%d levels)\n", id, c.Name, len(c.Levels))
	}
	fmt.Println("Definitions:")
	for _, id := range registry.DefinitionIDs() {
		d := registry.Definition(id)
		cfg := d.Generator.WorldConfig()
		fmt.Printf("  %-14s %s (%dx%d, %d rooms)\n", id, d.Name, cfg.Width, cfg.Height, cfg.RoomCount)
	}
}
