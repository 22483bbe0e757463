package catalog

import "strings"

// Ownership is the set of warbonds a player has marked as active.
// An empty set places no restriction on items.
type Ownership map[string]struct{}

// NewOwnership builds an Ownership set from tag names. Blank tags are ignored.
func NewOwnership(tags ...string) Ownership {
	o := make(Ownership, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			o[tag] = struct{}{}
		}
	}
	return o
}

// ParseOwnership splits a comma separated tag list ("Steeled Veterans,Cutting Edge").
func ParseOwnership(list string) Ownership {
	if strings.TrimSpace(list) == "" {
		return Ownership{}
	}
	return NewOwnership(strings.Split(list, ",")...)
}

// Allows reports whether the item may be drawn under this ownership set.
// Untagged items are always allowed.
func (o Ownership) Allows(it Item) bool {
	if len(o) == 0 || it.Warbond == "" {
		return true
	}
	_, ok := o[it.Warbond]
	return ok
}

// FilterItems returns the items allowed under o as a new slice.
func (o Ownership) FilterItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if o.Allows(it) {
			out = append(out, it)
		}
	}
	return out
}

// Owned returns a new catalog holding only the items allowed under o.
// The receiver is left untouched.
func (c *Catalog) Owned(o Ownership) *Catalog {
	out := &Catalog{
		Stratagems: make(map[CategoryKey][]Item, len(StratagemCategories)),
		Equipment:  make(map[Slot][]Item, len(Slots)),
	}
	if c == nil {
		return out
	}
	for key, items := range c.Stratagems {
		out.Stratagems[key] = o.FilterItems(items)
	}
	for slot, items := range c.Equipment {
		out.Equipment[slot] = o.FilterItems(items)
	}
	return out
}
