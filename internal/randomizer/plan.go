package randomizer

import "github.com/ramonehamilton/helldivers-loadout/internal/catalog"

// Minimum draws guaranteed for a Heavy category and maximum allowed for a
// Light one.
const (
	heavyQuota = 2
	lightCap   = 1
)

// Plan is the resolved form of a ModeMap.
//
// Heavy, Light and Excluded are disjoint. When Only is set, Heavy and Light
// are empty and every other category is in Excluded.
type Plan struct {
	Only     catalog.CategoryKey // empty when no category is exclusive
	Excluded map[catalog.CategoryKey]bool
	Heavy    []catalog.CategoryKey // in fixed category order
	Light    []catalog.CategoryKey // in fixed category order
}

// HasOnly reports whether the plan draws from a single category.
func (p Plan) HasOnly() bool {
	return p.Only != ""
}

// Admits reports whether items of the category may be drawn at all.
func (p Plan) Admits(key catalog.CategoryKey) bool {
	if p.HasOnly() {
		return key == p.Only
	}
	return !p.Excluded[key]
}

// IsLight reports whether the category is capped at one item.
func (p Plan) IsLight(key catalog.CategoryKey) bool {
	for _, k := range p.Light {
		if k == key {
			return true
		}
	}
	return false
}

// Resolve turns a mode map into a plan. Categories are scanned in
// catalog.StratagemCategories order, so when several are set to Only the
// first of them wins.
func Resolve(modes ModeMap) Plan {
	plan := Plan{Excluded: make(map[catalog.CategoryKey]bool)}

	for _, key := range catalog.StratagemCategories {
		if modes.Get(key) == Only {
			plan.Only = key
			break
		}
	}
	if plan.HasOnly() {
		for _, key := range catalog.StratagemCategories {
			if key != plan.Only {
				plan.Excluded[key] = true
			}
		}
		return plan
	}

	for _, key := range catalog.StratagemCategories {
		switch modes.Get(key) {
		case Heavy:
			plan.Heavy = append(plan.Heavy, key)
		case Light:
			plan.Light = append(plan.Light, key)
		case No:
			plan.Excluded[key] = true
		}
	}
	return plan
}
