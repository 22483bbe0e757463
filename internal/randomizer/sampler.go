// Package randomizer implements constrained random selection of loadouts.
//
// Stratagems are drawn without replacement from the four stratagem
// categories under a per-category Mode (Normal, Heavy, Light, No, Only).
// Every draw is uniform over the current candidates; the modes only decide
// which categories are open and how many items each may or must supply.
//
// # Concurrency
//
// A Sampler is safe for concurrent use. Each call builds its own generator
// from a seed taken under a lock, so calls share no draw state, and catalog
// snapshots are only ever read.
package randomizer

import (
	"errors"
	"log"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
)

// DefaultStratagemCount is the number of stratagems in a loadout.
const DefaultStratagemCount = 4

// ErrNoCandidates is returned by single-item draws that have nothing left to
// pick from after mode, ownership and exclusion filtering.
var ErrNoCandidates = errors.New("no stratagems available with current options")

// StratagemRequest describes a bulk stratagem draw.
type StratagemRequest struct {
	Modes   ModeMap
	Owned   catalog.Ownership
	Exclude []string // item names that must not be returned
	Count   int      // values <= 0 mean DefaultStratagemCount
}

// Sampler draws random items from catalog snapshots.
type Sampler struct {
	mu    sync.Mutex
	seeds *rand.Rand
	debug bool
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithSeed makes the sampler's sequence of draws reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) {
		s.seeds = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithDebug enables per-draw logging of applied modes and counts.
func WithDebug(debug bool) Option {
	return func(s *Sampler) {
		s.debug = debug
	}
}

// NewSampler creates a sampler. Without WithSeed it is seeded from the
// runtime's random source.
func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{
		seeds: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newRand returns a generator private to one call.
func (s *Sampler) newRand() *rand.Rand {
	s.mu.Lock()
	hi, lo := s.seeds.Uint64(), s.seeds.Uint64()
	s.mu.Unlock()
	return rand.New(rand.NewPCG(hi, lo))
}

func (s *Sampler) logf(format string, args ...any) {
	if s.debug {
		log.Printf("[Randomizer] "+format, args...)
	}
}

// SelectStratagems draws up to req.Count distinct stratagems honoring the
// resolved mode plan, ownership and exclusions. It returns fewer items when
// the admissible pool runs out and an empty slice when nothing is
// admissible.
func (s *Sampler) SelectStratagems(c *catalog.Catalog, req StratagemRequest) []catalog.Item {
	count := req.Count
	if count <= 0 {
		count = DefaultStratagemCount
	}

	plan := Resolve(req.Modes)
	s.logf("Stratagem options applied: %s", req.Modes)

	d := newDraw(s.newRand(), count, req.Exclude, c.Owned(req.Owned))

	if plan.HasOnly() {
		s.logf("Only using stratagems from category: %s", plan.Only)
		d.fillFrom(d.candidates(plan.Only), nil)
		s.logf("Selected %d stratagems from %s", len(d.picked), plan.Only)
		return d.picked
	}

	base := make(pool, 0)
	for _, key := range catalog.StratagemCategories {
		if plan.Admits(key) {
			base = append(base, d.candidates(key)...)
		}
	}
	if len(base) == 0 {
		s.logf("No stratagems available with current options")
		return d.picked
	}

	for _, key := range plan.Heavy {
		d.drawUpTo(d.candidates(key), heavyQuota)
	}

	lightUsed := make(map[catalog.CategoryKey]bool, len(plan.Light))
	for _, key := range plan.Light {
		if d.full() {
			break
		}
		if d.drawUpTo(d.candidates(key), lightCap) > 0 {
			lightUsed[key] = true
		}
	}

	d.fillFrom(base, func(cand candidate) bool {
		if !plan.IsLight(cand.key) {
			return true
		}
		if lightUsed[cand.key] {
			return false
		}
		lightUsed[cand.key] = true
		return true
	})

	s.logf("Selected %d stratagems (heavy=%v light=%v excluded=%d)",
		len(d.picked), plan.Heavy, plan.Light, len(plan.Excluded))
	return d.picked
}

// SelectItem draws one item from an equipment slot's pool. ok is false when
// the slot has no items allowed under owned.
func (s *Sampler) SelectItem(c *catalog.Catalog, slot catalog.Slot, owned catalog.Ownership) (item catalog.Item, ok bool) {
	items := owned.FilterItems(c.Pool(slot))
	if len(items) == 0 {
		s.logf("No %s items available", slot)
		return catalog.Item{}, false
	}
	return items[s.newRand().IntN(len(items))], true
}

type candidate struct {
	item catalog.Item
	key  catalog.CategoryKey
}

type pool []candidate

// take removes and returns a uniformly chosen candidate.
func (p *pool) take(rng *rand.Rand) candidate {
	i := rng.IntN(len(*p))
	last := len(*p) - 1
	picked := (*p)[i]
	(*p)[i] = (*p)[last]
	*p = (*p)[:last]
	return picked
}

// draw is the state of one SelectStratagems or reroll call.
type draw struct {
	rng     *rand.Rand
	count   int
	exclude map[string]struct{}
	catalog *catalog.Catalog
	picked  []catalog.Item
	names   map[string]struct{}
}

// newDraw starts a draw over c, which the caller has already pruned to the
// owned items.
func newDraw(rng *rand.Rand, count int, exclude []string, c *catalog.Catalog) *draw {
	ex := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		if name = strings.TrimSpace(name); name != "" {
			ex[name] = struct{}{}
		}
	}
	return &draw{
		rng:     rng,
		count:   count,
		exclude: ex,
		catalog: c,
		picked:  make([]catalog.Item, 0, count),
		names:   make(map[string]struct{}, count),
	}
}

// candidates returns the non-excluded items of a category.
func (d *draw) candidates(key catalog.CategoryKey) pool {
	items := d.catalog.Category(key)
	out := make(pool, 0, len(items))
	for _, it := range items {
		if _, skip := d.exclude[it.Name]; skip {
			continue
		}
		out = append(out, candidate{item: it, key: key})
	}
	return out
}

func (d *draw) full() bool {
	return len(d.picked) >= d.count
}

func (d *draw) has(name string) bool {
	_, ok := d.names[name]
	return ok
}

func (d *draw) add(cand candidate) {
	d.picked = append(d.picked, cand.item)
	d.names[cand.item.Name] = struct{}{}
}

// drawUpTo takes at most limit new items from p and returns how many it took.
func (d *draw) drawUpTo(p pool, limit int) int {
	taken := 0
	for taken < limit && len(p) > 0 && !d.full() {
		cand := p.take(d.rng)
		if d.has(cand.item.Name) {
			continue
		}
		d.add(cand)
		taken++
	}
	return taken
}

// fillFrom draws from p until the result is full or p is empty. Candidates
// rejected by accept are discarded, not retried.
func (d *draw) fillFrom(p pool, accept func(candidate) bool) {
	for !d.full() && len(p) > 0 {
		cand := p.take(d.rng)
		if d.has(cand.item.Name) {
			continue
		}
		if accept != nil && !accept(cand) {
			continue
		}
		d.add(cand)
	}
}
