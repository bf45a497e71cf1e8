package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/signalsfoundry/constellation-validator/internal/logging"
	"github.com/signalsfoundry/constellation-validator/internal/scenariogen"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("scenario-gen", flag.ExitOnError)
	count := fs.Int("count", scenariogen.DefaultCount, "number of scenarios to generate")
	seed := fs.Int64("seed", 0, "random seed (0 picks a time-based seed)")
	start := fs.String("start", "", "timestamp of the first scenario, RFC3339 (default: now)")
	step := fs.Duration("step", scenariogen.DefaultStep, "simulated time between consecutive scenarios")
	format := fs.String("format", "jsonl", "output format: json or jsonl")
	outPath := fs.String("o", "", "output file (default: stdout)")
	configPath := fs.String("config", "", "optional YAML generator config; explicit flags override its values")
	convertPath := fs.String("convert", "", "convert an existing JSON scenario array to JSONL instead of generating")
	fs.Parse(args)

	log := logging.NewFromEnv()
	ctx := context.Background()

	out := io.Writer(os.Stdout)
	var outFile *os.File
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error(ctx, "failed to create output file", logging.String("path", *outPath), logging.String("error", err.Error()))
			return 1
		}
		outFile = f
		out = f
	}
	closeOut := func() int {
		if outFile == nil {
			return 0
		}
		if err := outFile.Close(); err != nil {
			log.Error(ctx, "failed to close output file", logging.String("path", *outPath), logging.String("error", err.Error()))
			return 1
		}
		return 0
	}

	if *convertPath != "" {
		in, err := os.Open(*convertPath)
		if err != nil {
			log.Error(ctx, "failed to open scenario array", logging.String("path", *convertPath), logging.String("error", err.Error()))
			return 1
		}
		defer in.Close()

		n, err := scenariogen.ConvertJSONToJSONL(in, out)
		if err != nil {
			log.Error(ctx, "conversion failed", logging.String("path", *convertPath), logging.String("error", err.Error()))
			return 1
		}
		log.Info(ctx, "converted scenarios to JSONL", logging.Int("count", n))
		return closeOut()
	}

	cfg := scenariogen.DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			log.Error(ctx, "failed to open generator config", logging.String("path", *configPath), logging.String("error", err.Error()))
			return 1
		}
		cfg, err = scenariogen.LoadConfig(f)
		f.Close()
		if err != nil {
			log.Error(ctx, "failed to load generator config", logging.String("path", *configPath), logging.String("error", err.Error()))
			return 1
		}
	}

	var flagErr error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "count":
			cfg.Count = *count
		case "seed":
			cfg.Seed = *seed
		case "step":
			cfg.Step = *step
		case "start":
			t, err := time.Parse(time.RFC3339, *start)
			if err != nil {
				flagErr = fmt.Errorf("parse -start: %w", err)
				return
			}
			cfg.Start = t
		}
	})
	if flagErr != nil {
		log.Error(ctx, "invalid flag", logging.String("error", flagErr.Error()))
		return 1
	}

	gen, err := scenariogen.New(cfg, scenariogen.WithLogger(log))
	if err != nil {
		log.Error(ctx, "invalid generator config", logging.String("error", err.Error()))
		return 1
	}
	scenarios := gen.Generate()

	switch *format {
	case "json":
		err = scenariogen.WriteJSON(out, scenarios)
	case "jsonl":
		err = scenariogen.WriteJSONL(out, scenarios)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want json or jsonl)\n", *format)
		return 2
	}
	if err != nil {
		log.Error(ctx, "failed to write scenarios", logging.String("error", err.Error()))
		return 1
	}

	log.Info(ctx, "generated scenarios",
		logging.Int("count", len(scenarios)),
		logging.String("format", *format),
	)
	return closeOut()
}
