// Package catalog holds the typed view over the static equipment and
// stratagem catalogs, plus loading, ownership filtering and hot reload.
//
// A Catalog is an immutable snapshot. Code that needs a newer catalog
// replaces the whole value through a Store; nothing mutates a snapshot
// after Load returns it.
package catalog

import "sort"

// Item is a single catalog entry.
type Item struct {
	Name     string `json:"name" yaml:"name"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Class    string `json:"class,omitempty" yaml:"class,omitempty"`
	Warbond  string `json:"warbond,omitempty" yaml:"warbond,omitempty"`
	Category string `json:"category,omitempty" yaml:"-"`
}

// Catalog is a snapshot of every pool the randomizer draws from.
type Catalog struct {
	Stratagems map[CategoryKey][]Item
	Equipment  map[Slot][]Item
}

// Category returns the items of a stratagem category.
func (c *Catalog) Category(key CategoryKey) []Item {
	if c == nil {
		return nil
	}
	return c.Stratagems[key]
}

// Pool returns the items of an equipment slot.
func (c *Catalog) Pool(slot Slot) []Item {
	if c == nil {
		return nil
	}
	return c.Equipment[slot]
}

// StratagemCount returns the total number of stratagems across categories.
func (c *Catalog) StratagemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, items := range c.Stratagems {
		n += len(items)
	}
	return n
}

// Warbonds returns the distinct ownership tags present in the catalog,
// sorted alphabetically.
func (c *Catalog) Warbonds() []string {
	if c == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	collect := func(items []Item) {
		for _, it := range items {
			if it.Warbond != "" {
				seen[it.Warbond] = struct{}{}
			}
		}
	}
	for _, items := range c.Stratagems {
		collect(items)
	}
	for _, items := range c.Equipment {
		collect(items)
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Summary describes the size of each pool.
type Summary struct {
	Stratagems map[CategoryKey]int `json:"stratagems"`
	Equipment  map[Slot]int        `json:"equipment"`
	Warbonds   []string            `json:"warbonds"`
}

// Summarize returns per-pool item counts.
func (c *Catalog) Summarize() Summary {
	s := Summary{
		Stratagems: make(map[CategoryKey]int, len(StratagemCategories)),
		Equipment:  make(map[Slot]int, len(Slots)),
		Warbonds:   c.Warbonds(),
	}
	for _, key := range StratagemCategories {
		s.Stratagems[key] = len(c.Category(key))
	}
	for _, slot := range Slots {
		s.Equipment[slot] = len(c.Pool(slot))
	}
	return s
}
