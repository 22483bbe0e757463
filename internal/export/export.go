// Package export writes rolled loadouts as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

// Format represents the export format.
type Format string

const (
	// FormatCSV writes one row per slot or stratagem.
	FormatCSV Format = "csv"
	// FormatJSON writes the loadouts as an array.
	FormatJSON Format = "json"
)

// ErrFileExists is returned when the target exists and Overwrite is unset.
var ErrFileExists = errors.New("file already exists")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Options holds configuration for export operations.
type Options struct {
	Format     Format
	FilePath   string
	PrettyJSON bool
	Overwrite  bool
}

// Row is one CSV line: a slot or stratagem of one loadout.
type Row struct {
	LoadoutID string
	Kind      string // equipment slot name, or "stratagem"
	Position  int    // 1-based stratagem position; 0 for equipment
	Name      string
	Category  string
	Warbond   string
}

var csvHeader = []string{"loadout_id", "kind", "position", "name", "category", "warbond"}

func (r Row) record() []string {
	pos := ""
	if r.Position > 0 {
		pos = strconv.Itoa(r.Position)
	}
	return []string{r.LoadoutID, r.Kind, pos, r.Name, r.Category, r.Warbond}
}

// Rows flattens loadouts into CSV rows. Empty equipment slots are skipped.
func Rows(loadouts []*randomizer.Loadout) []Row {
	rows := make([]Row, 0, len(loadouts)*(len(catalog.Slots)+randomizer.DefaultStratagemCount))
	for _, l := range loadouts {
		for _, slot := range catalog.Slots {
			if it := l.Slot(slot); it != nil {
				rows = append(rows, Row{LoadoutID: l.ID, Kind: string(slot), Name: it.Name, Warbond: it.Warbond})
			}
		}
		for i, s := range l.Stratagems {
			rows = append(rows, Row{
				LoadoutID: l.ID,
				Kind:      "stratagem",
				Position:  i + 1,
				Name:      s.Name,
				Category:  s.Category,
				Warbond:   s.Warbond,
			})
		}
	}
	return rows
}

// ToWriter writes loadouts to w in the given format.
func ToWriter(w io.Writer, format Format, loadouts []*randomizer.Loadout, pretty bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(loadouts); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil

	case FormatCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for i, row := range Rows(loadouts) {
			if err := writer.Write(row.record()); err != nil {
				return fmt.Errorf("failed to write CSV row %d: %w", i, err)
			}
		}
		writer.Flush()
		return writer.Error()

	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ToFile writes loadouts to opts.FilePath, creating parent directories.
func ToFile(opts Options, loadouts []*randomizer.Loadout) (err error) {
	if opts.FilePath == "" {
		return errors.New("file path is required")
	}
	if !opts.Overwrite {
		if _, statErr := os.Stat(opts.FilePath); statErr == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, opts.FilePath)
		}
	}
	if dir := filepath.Dir(opts.FilePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return ToWriter(file, opts.Format, loadouts, opts.PrettyJSON)
}
