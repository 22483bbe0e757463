package randomizer

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
)

// LoadoutRequest describes a full loadout roll.
type LoadoutRequest struct {
	Modes ModeMap
	Owned catalog.Ownership
	Count int // stratagem count; values <= 0 mean DefaultStratagemCount
}

// Loadout is one randomized item per equipment slot plus a stratagem set.
// Slots whose pool was empty are nil.
type Loadout struct {
	ID          string         `json:"id"`
	RolledAt    time.Time      `json:"rolled_at"`
	Primary     *catalog.Item  `json:"primary"`
	Secondary   *catalog.Item  `json:"secondary"`
	Grenade     *catalog.Item  `json:"grenade"`
	Armor       *catalog.Item  `json:"armor"`
	Booster     *catalog.Item  `json:"booster"`
	SideMission *catalog.Item  `json:"sideMission"`
	Stratagems  []catalog.Item `json:"stratagems"`
}

// Slot returns the item rolled for an equipment slot.
func (l *Loadout) Slot(slot catalog.Slot) *catalog.Item {
	switch slot {
	case catalog.SlotPrimary:
		return l.Primary
	case catalog.SlotSecondary:
		return l.Secondary
	case catalog.SlotGrenade:
		return l.Grenade
	case catalog.SlotArmor:
		return l.Armor
	case catalog.SlotBooster:
		return l.Booster
	case catalog.SlotSideMission:
		return l.SideMission
	default:
		return nil
	}
}

// RollLoadout draws a complete loadout from the items of c allowed under
// req.Owned.
func (s *Sampler) RollLoadout(c *catalog.Catalog, req LoadoutRequest) *Loadout {
	owned := c.Owned(req.Owned)
	pick := func(slot catalog.Slot) *catalog.Item {
		item, ok := s.SelectItem(owned, slot, nil)
		if !ok {
			return nil
		}
		return &item
	}

	l := &Loadout{
		ID:          uuid.NewString(),
		RolledAt:    time.Now().UTC(),
		Primary:     pick(catalog.SlotPrimary),
		Secondary:   pick(catalog.SlotSecondary),
		Grenade:     pick(catalog.SlotGrenade),
		Armor:       pick(catalog.SlotArmor),
		Booster:     pick(catalog.SlotBooster),
		SideMission: pick(catalog.SlotSideMission),
	}
	l.Stratagems = s.SelectStratagems(owned, StratagemRequest{
		Modes: req.Modes,
		Count: req.Count,
	})

	s.logf("Generated random loadout %s", l.ID)
	return l
}
