package randomizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
)

// ErrAmbiguousOnly indicates more than one category was set to Only.
var ErrAmbiguousOnly = errors.New("more than one category set to Only")

// Mode is the per-category stratagem selection rule.
type Mode int

const (
	// Normal places no constraint on the category.
	Normal Mode = iota
	// Heavy guarantees at least two stratagems from the category when it has them.
	Heavy
	// Light caps the category at one stratagem.
	Light
	// No excludes the category.
	No
	// Only draws exclusively from the category.
	Only
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Heavy:
		return "Heavy"
	case Light:
		return "Light"
	case No:
		return "No"
	case Only:
		return "Only"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name. Unknown names decode to Normal.
func (m *Mode) UnmarshalText(text []byte) error {
	*m, _ = ParseMode(string(text))
	return nil
}

// ParseMode converts a mode name to a Mode. Matching ignores case.
// Unrecognized or empty values resolve to Normal with ok=false.
func ParseMode(s string) (mode Mode, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return Normal, true
	case "heavy":
		return Heavy, true
	case "light":
		return Light, true
	case "no":
		return No, true
	case "only":
		return Only, true
	default:
		return Normal, false
	}
}

// ModeMap holds the requested mode for each stratagem category.
// Categories without an entry are Normal.
type ModeMap map[catalog.CategoryKey]Mode

// Get returns the mode for key, defaulting to Normal.
func (m ModeMap) Get(key catalog.CategoryKey) Mode {
	if mode, ok := m[key]; ok {
		return mode
	}
	return Normal
}

// Validate reports mode combinations that Resolve settles by tie-break.
// Resolve never needs a valid map; Validate exists for strict callers.
func (m ModeMap) Validate() error {
	var only []string
	for _, key := range catalog.StratagemCategories {
		if m.Get(key) == Only {
			only = append(only, string(key))
		}
	}
	if len(only) > 1 {
		return fmt.Errorf("%w: %s", ErrAmbiguousOnly, strings.Join(only, ", "))
	}
	return nil
}

// String renders the map in fixed category order for logging.
func (m ModeMap) String() string {
	parts := make([]string, 0, len(catalog.StratagemCategories))
	for _, key := range catalog.StratagemCategories {
		parts = append(parts, fmt.Sprintf("%s=%s", key, m.Get(key)))
	}
	return strings.Join(parts, " ")
}
