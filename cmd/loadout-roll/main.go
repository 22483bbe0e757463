// Package main rolls a loadout from a catalog directory and prints it.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/display"
	"github.com/ramonehamilton/helldivers-loadout/internal/export"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

// excludeFlag collects repeated -exclude values.
type excludeFlag []string

func (e *excludeFlag) String() string { return strings.Join(*e, ",") }

func (e *excludeFlag) Set(v string) error {
	*e = append(*e, v)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("loadout-roll", flag.ContinueOnError)
	dir := fs.String("catalog", "data", "Catalog directory")
	count := fs.Int("count", randomizer.DefaultStratagemCount, "Number of stratagems")
	warbonds := fs.String("warbonds", "", "Comma-separated owned warbonds (empty: all)")
	seed := fs.Uint64("seed", 0, "Seed for a reproducible roll (0: random)")
	format := fs.String("format", "table", "Output format: table, json, csv")
	rolls := fs.Int("n", 1, "Number of loadouts to roll")
	outPath := fs.String("out", "", "Write json or csv output to this file")
	force := fs.Bool("force", false, "Overwrite -out if it exists")
	stratagemsOnly := fs.Bool("stratagems", false, "Roll stratagems only")
	reroll := fs.Bool("reroll", false, "Draw a single replacement stratagem avoiding -exclude")
	debug := fs.Bool("debug", false, "Log sampler decisions")
	var exclude excludeFlag
	fs.Var(&exclude, "exclude", "Stratagem name to avoid (repeatable, with -reroll)")

	modeFlags := make(map[catalog.CategoryKey]*string, len(catalog.StratagemCategories))
	for _, key := range catalog.StratagemCategories {
		modeFlags[key] = fs.String(key.Param(), "normal", "Mode for "+string(key)+": normal, heavy, light, no, only")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rolls < 1 {
		return fmt.Errorf("-n must be at least 1")
	}
	asJSON := *format == "json"
	if *format != "table" {
		if _, err := export.ParseFormat(*format); err != nil {
			return err
		}
	}
	if (*reroll || *stratagemsOnly) && *format == "csv" {
		return errors.New("csv output requires a full loadout roll")
	}
	if *outPath != "" && (*format == "table" || *reroll || *stratagemsOnly) {
		return errors.New("-out requires a full loadout roll with -format json or csv")
	}

	modes := make(randomizer.ModeMap, len(modeFlags))
	for key, raw := range modeFlags {
		mode, ok := randomizer.ParseMode(*raw)
		if !ok {
			return fmt.Errorf("invalid mode %q for -%s", *raw, key.Param())
		}
		modes[key] = mode
	}
	if err := modes.Validate(); err != nil {
		log.Printf("Warning: %v; %s wins", err, randomizer.Resolve(modes).Only)
	}

	c, err := catalog.Load(*dir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	opts := []randomizer.Option{randomizer.WithDebug(*debug)}
	if *seed != 0 {
		opts = append(opts, randomizer.WithSeed(*seed))
	}
	sampler := randomizer.NewSampler(opts...)
	owned := catalog.ParseOwnership(*warbonds)
	displayer := display.NewLoadoutDisplayer(out)

	switch {
	case *reroll:
		item, err := sampler.RerollStratagem(c, randomizer.RerollRequest{
			Modes:   modes,
			Owned:   owned,
			Exclude: exclude,
		})
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, item)
		}
		return displayer.DisplayStratagems([]catalog.Item{item}, 1)

	case *stratagemsOnly:
		picked := sampler.SelectStratagems(c, randomizer.StratagemRequest{
			Modes: modes,
			Owned: owned,
			Count: *count,
		})
		if asJSON {
			return writeJSON(out, picked)
		}
		return displayer.DisplayStratagems(picked, *count)

	default:
		loadouts := make([]*randomizer.Loadout, *rolls)
		for i := range loadouts {
			loadouts[i] = sampler.RollLoadout(c, randomizer.LoadoutRequest{
				Modes: modes,
				Owned: owned,
				Count: *count,
			})
		}

		if *format == "table" {
			for _, l := range loadouts {
				if err := displayer.DisplayLoadout(l, *count); err != nil {
					return err
				}
			}
			return nil
		}
		if *outPath != "" {
			if err := export.ToFile(export.Options{
				Format:     export.Format(*format),
				FilePath:   *outPath,
				PrettyJSON: true,
				Overwrite:  *force,
			}, loadouts); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d loadouts to %s\n", len(loadouts), *outPath)
			return nil
		}
		return export.ToWriter(out, export.Format(*format), loadouts, true)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
