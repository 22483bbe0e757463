package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

// MaxStratagemCount bounds the count query parameter.
const MaxStratagemCount = 12

// rollParams is the query shared by every stratagem-producing route.
type rollParams struct {
	Modes randomizer.ModeMap
	Owned catalog.Ownership
	Count int
}

// parseModes reads one mode per category from the query, keyed by the
// lowercase category name. Missing keys stay Normal. Unrecognized values
// fall back to Normal unless strict is set.
func parseModes(r *http.Request, strict bool) (randomizer.ModeMap, error) {
	q := r.URL.Query()
	modes := make(randomizer.ModeMap, len(catalog.StratagemCategories))
	for _, key := range catalog.StratagemCategories {
		raw := q.Get(key.Param())
		if raw == "" {
			continue
		}
		mode, ok := randomizer.ParseMode(raw)
		if !ok {
			if strict {
				return nil, fmt.Errorf("invalid mode %q for %s", raw, key.Param())
			}
			log.Printf("[Randomizer] Unknown mode %q for %s, using Normal", raw, key.Param())
		}
		modes[key] = mode
	}
	if strict {
		if err := modes.Validate(); err != nil {
			return nil, err
		}
	}
	return modes, nil
}

// parseOwnership accepts warbonds as a comma list, repeated, or both.
func parseOwnership(r *http.Request) catalog.Ownership {
	values := r.URL.Query()["warbonds"]
	return catalog.ParseOwnership(strings.Join(values, ","))
}

// parseCount reads the count parameter, falling back to def when absent.
func parseCount(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > MaxStratagemCount {
		return 0, fmt.Errorf("count must be an integer between 1 and %d", MaxStratagemCount)
	}
	return n, nil
}

// parseIndex reads the reroll slot index; absent means 0.
func parseIndex(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("index")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("index must be a non-negative integer")
	}
	return n, nil
}

// parseExclude collects the repeated exclude parameter, dropping blanks.
func parseExclude(r *http.Request) []string {
	values := r.URL.Query()["exclude"]
	exclude := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			exclude = append(exclude, v)
		}
	}
	return exclude
}

func parseRollParams(r *http.Request, defaultCount int, strict bool) (rollParams, error) {
	modes, err := parseModes(r, strict)
	if err != nil {
		return rollParams{}, err
	}
	count, err := parseCount(r, defaultCount)
	if err != nil {
		return rollParams{}, err
	}
	return rollParams{Modes: modes, Owned: parseOwnership(r), Count: count}, nil
}
