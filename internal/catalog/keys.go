package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a stratagem category key is not one of
// the four known categories.
var ErrUnknownCategory = errors.New("unknown stratagem category")

// ErrUnknownSlot is returned when an equipment slot name is not recognized.
var ErrUnknownSlot = errors.New("unknown equipment slot")

// CategoryKey identifies a stratagem category.
type CategoryKey string

const (
	Defense  CategoryKey = "DEFENSE"
	Eagles   CategoryKey = "EAGLES"
	Orbitals CategoryKey = "ORBITALS"
	Support  CategoryKey = "SUPPORT"
)

// StratagemCategories lists every stratagem category in the fixed order used
// for all deterministic iteration (plan resolution, pool building).
var StratagemCategories = []CategoryKey{Defense, Eagles, Orbitals, Support}

// ParseCategoryKey resolves a category name from catalog data or a query
// parameter. Matching ignores case and surrounding whitespace.
func ParseCategoryKey(s string) (CategoryKey, error) {
	key := CategoryKey(strings.ToUpper(strings.TrimSpace(s)))
	for _, k := range StratagemCategories {
		if k == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Param returns the lower-case query parameter name for the category
// (e.g. "defense").
func (k CategoryKey) Param() string {
	return strings.ToLower(string(k))
}

// Slot identifies a flat equipment pool.
type Slot string

const (
	SlotPrimary     Slot = "primary"
	SlotSecondary   Slot = "secondary"
	SlotGrenade     Slot = "grenade"
	SlotArmor       Slot = "armor"
	SlotBooster     Slot = "booster"
	SlotSideMission Slot = "side-mission"
)

// Slots lists the equipment slots in loadout display order.
var Slots = []Slot{SlotPrimary, SlotSecondary, SlotGrenade, SlotArmor, SlotBooster, SlotSideMission}

// slotFileKeys maps each slot to its top-level key in the items file.
var slotFileKeys = map[Slot]string{
	SlotPrimary:     "PRIMARY",
	SlotSecondary:   "SECONDARY",
	SlotGrenade:     "GRENADES",
	SlotArmor:       "ARMOR",
	SlotBooster:     "BOOSTERS",
	SlotSideMission: "SIDE MISSIONS",
}

// FileKey returns the items file key for the slot.
func (s Slot) FileKey() string {
	return slotFileKeys[s]
}

// ParseSlot resolves a slot from its route name ("side-mission") or its
// items file key ("SIDE MISSIONS").
func ParseSlot(s string) (Slot, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, slot := range Slots {
		if string(slot) == norm || strings.ToLower(slot.FileKey()) == norm {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}
