package randomizer

import "github.com/ramonehamilton/helldivers-loadout/internal/catalog"

// RerollRequest describes the replacement of one displayed stratagem slot.
type RerollRequest struct {
	Modes ModeMap
	Owned catalog.Ownership

	// Exclude holds the names currently on screen. Callers pass the whole
	// visible set, including the slot being replaced.
	Exclude []string

	// Index is the slot being replaced. It only appears in logs.
	Index int
}

// RerollStratagem draws a single stratagem that collides with none of the
// excluded names. Modes decide category membership only: Heavy quotas and
// Light caps are not applied to a lone replacement.
func (s *Sampler) RerollStratagem(c *catalog.Catalog, req RerollRequest) (catalog.Item, error) {
	plan := Resolve(req.Modes)
	s.logf("Rerolling slot %d with options: %s, excluded: %v", req.Index, req.Modes, req.Exclude)

	d := newDraw(s.newRand(), 1, req.Exclude, c.Owned(req.Owned))
	admissible := make(pool, 0)
	for _, key := range catalog.StratagemCategories {
		if plan.Admits(key) {
			admissible = append(admissible, d.candidates(key)...)
		}
	}

	if len(admissible) == 0 {
		s.logf("No stratagems available with current options and exclusions")
		return catalog.Item{}, ErrNoCandidates
	}

	picked := admissible.take(d.rng).item
	s.logf("Selected stratagem: %s", picked.Name)
	return picked, nil
}
