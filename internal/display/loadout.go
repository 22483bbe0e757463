// Package display renders rolled loadouts for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

var slotLabels = map[catalog.Slot]string{
	catalog.SlotPrimary:     "Primary",
	catalog.SlotSecondary:   "Secondary",
	catalog.SlotGrenade:     "Grenade",
	catalog.SlotArmor:       "Armor",
	catalog.SlotBooster:     "Booster",
	catalog.SlotSideMission: "Side Mission",
}

// LoadoutDisplayer writes loadouts in a readable format.
type LoadoutDisplayer struct {
	out io.Writer
}

// NewLoadoutDisplayer creates a displayer writing to out.
func NewLoadoutDisplayer(out io.Writer) *LoadoutDisplayer {
	return &LoadoutDisplayer{out: out}
}

// DisplayLoadout writes every slot followed by the stratagem list.
func (d *LoadoutDisplayer) DisplayLoadout(l *randomizer.Loadout, requested int) error {
	title := "Loadout " + l.ID
	fmt.Fprintf(d.out, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))

	tw := tabwriter.NewWriter(d.out, 0, 0, 2, ' ', 0)
	for _, slot := range catalog.Slots {
		fmt.Fprintf(tw, "%s\t%s\n", slotLabels[slot], itemLabel(l.Slot(slot)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return d.DisplayStratagems(l.Stratagems, requested)
}

// DisplayStratagems writes a numbered stratagem list. A short result is
// called out so restrictive options are visible to the user.
func (d *LoadoutDisplayer) DisplayStratagems(stratagems []catalog.Item, requested int) error {
	fmt.Fprintf(d.out, "\nStratagems (%d of %d)\n", len(stratagems), requested)
	if len(stratagems) == 0 {
		fmt.Fprintln(d.out, "  No stratagems available with current options.")
		return nil
	}

	tw := tabwriter.NewWriter(d.out, 0, 0, 2, ' ', 0)
	for i, s := range stratagems {
		fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\n", i+1, s.Name, s.Category, s.Warbond)
	}
	return tw.Flush()
}

func itemLabel(it *catalog.Item) string {
	if it == nil {
		return "-"
	}
	if it.Warbond != "" {
		return fmt.Sprintf("%s (%s)", it.Name, it.Warbond)
	}
	return it.Name
}
