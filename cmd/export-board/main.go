// Package main provides the export-board binary that converts an authored
// board scene and marker hierarchy into the engine's RON board description.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/duneboard/exporter/internal/config"
	"github.com/duneboard/exporter/internal/exporter"
	"github.com/duneboard/exporter/internal/markers"
	"github.com/duneboard/exporter/internal/observability"
	"github.com/duneboard/exporter/internal/scene"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	scenePath := flag.String("scene", "", "path to scene YAML file")
	markersPath := flag.String("markers", "", "path to markers YAML file")
	output := flag.String("output", "", "optional override for export.output")
	flag.Parse()

	if *scenePath == "" || *markersPath == "" {
		fmt.Fprintln(os.Stderr, "usage: export-board -scene <file> -markers <file> [-config <file>] [-output <file>]")
		os.Exit(1)
	}

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	} else {
		cfg = config.Default()
	}
	if *output != "" {
		cfg.Export.Output = *output
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	start := time.Now()

	s, err := scene.LoadFile(*scenePath)
	if err != nil {
		logger.Fatal("loading scene", zap.Error(err))
	}
	h, err := markers.LoadFile(*markersPath)
	if err != nil {
		logger.Fatal("loading markers", zap.Error(err))
	}

	exp, err := exporter.New(s, h,
		exporter.TopologyPolicy(cfg.Export.Policy),
		exporter.TerrainSets{
			Strongholds: cfg.Terrain.Strongholds,
			Rock:        cfg.Terrain.Rock,
		},
		logger,
	)
	if err != nil {
		logger.Fatal("constructing exporter", zap.Error(err))
	}

	model, err := exp.Run(cfg.Export.Output)
	if err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}

	fmt.Printf("wrote   %s  (%d locations)  in %s\n",
		cfg.Export.Output, model.Len(), time.Since(start).Round(time.Millisecond))
}
