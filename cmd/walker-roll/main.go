// walker-roll draws weighted random samples from a TOML table of categories.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/urfave/cli/v3"

	"gitlab.com/zephyrtronium/walker"
)

var app = cli.Command{
	Name:  "walker-roll",
	Usage: "Draw weighted random samples in constant time per draw",

	Flags: []cli.Flag{
		&flagWeights,
		&flagInvert,
		&flagLog,
		&flagLogFormat,
	},
	Commands: []*cli.Command{
		{
			Name:  "roll",
			Usage: "Sample categories and print them",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "n",
					Usage: "Number of draws",
					Value: 10,
				},
				&cli.IntFlag{
					Name:  "seed",
					Usage: "Seed for a deterministic sampling source",
				},
				&cli.BoolFlag{
					Name:  "freq",
					Usage: "Print a frequency summary instead of raw draws",
				},
			},
			Action: cliRoll,
		},
		{
			Name:   "table",
			Usage:  "Print the alias table as JSON without sampling",
			Action: cliTable,
		},
	},

	Authors: []any{
		"Branden J Brown  @zephyrtronium",
	},
	Copyright: "Copyright 2024 Branden J Brown",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := app.Run(ctx, os.Args)
	if err != nil {
		fmt.Println(err)
	}
}

func cliRoll(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	names, table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no categories to sample")
	}
	var src walker.Source
	if cmd.IsSet("seed") {
		seed := uint64(cmd.Int("seed"))
		src = rand.New(rand.NewPCG(seed, seed))
	}
	counts := make([]int, len(names))
	n := cmd.Int("n")
	for range n {
		var i int
		if src != nil {
			i = table.NextWith(src)
		} else {
			i = table.Next()
		}
		counts[i]++
		if !cmd.Bool("freq") {
			fmt.Println(names[i])
		}
	}
	if cmd.Bool("freq") {
		for i, name := range names {
			fmt.Printf("%s\t%d\t%.4f\n", name, counts[i], float64(counts[i])/float64(n))
		}
	}
	return nil
}

func cliTable(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	_, table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	b, err := json.Marshal(table, jsontext.WithIndent("\t"))
	if err != nil {
		return fmt.Errorf("couldn't marshal table: %w", err)
	}
	fmt.Printf("%s\n", b)
	return nil
}

// loadTable builds the sampling table from the weights flag.
func loadTable(cmd *cli.Command) ([]string, *walker.Table, error) {
	r, err := os.Open(cmd.String("weights"))
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't open weights file: %w", err)
	}
	defer r.Close()
	cfg, err := Load(r)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't load weights: %w", err)
	}
	b := cfg.Builder()
	if cmd.Bool("invert") {
		b.Inverse()
	}
	table := b.Build()
	slog.Info("built table", slog.Int("categories", table.Len()), slog.Bool("invert", cmd.Bool("invert")))
	return cfg.Names(), table, nil
}

var (
	flagWeights = cli.StringFlag{
		Name:       "weights",
		Required:   true,
		Usage:      "TOML weights file",
		Persistent: true,
		Action: func(ctx context.Context, cmd *cli.Command, s string) error {
			i, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !i.Mode().IsRegular() {
				return errors.New("weights must be a regular file")
			}
			return nil
		},
	}

	flagInvert = cli.BoolFlag{
		Name:       "invert",
		Usage:      "Invert weights to favor the rare categories",
		Persistent: true,
	}

	flagLog = cli.StringFlag{
		Name:       "log",
		Usage:      "Logging level, one of debug, info, warn, error",
		Value:      "info",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			var l slog.Level
			return l.UnmarshalText([]byte(s))
		},
	}

	flagLogFormat = cli.StringFlag{
		Name:       "log-format",
		Usage:      "Logging format, either text or json",
		Value:      "text",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			switch strings.ToLower(s) {
			case "text", "json":
				return nil
			default:
				return errors.New("unknown logging format")
			}
		},
	}
)

func loggerFromFlags(cmd *cli.Command) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cmd.String("log"))); err != nil {
		panic(err)
	}
	var h slog.Handler
	switch strings.ToLower(cmd.String("log-format")) {
	case "text":
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	case "json":
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	}
	return slog.New(h)
}
