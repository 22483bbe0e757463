package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	itemsBaseName      = "items"
	stratagemsBaseName = "stratagems"
)

var catalogExtensions = []string{".json", ".yaml", ".yml"}

// ErrCatalogFileNotFound is returned when a catalog directory lacks an
// items or stratagems file.
var ErrCatalogFileNotFound = errors.New("catalog file not found")

// ErrInvalidItem is returned for entries with a blank name or a name that
// repeats within the same pool.
var ErrInvalidItem = errors.New("invalid catalog item")

type rawPools map[string][]Item

// Load reads items and stratagems files from dir. Either file may be JSON
// or YAML; the extension decides the decoder.
func Load(dir string) (*Catalog, error) {
	itemsPath, err := findCatalogFile(dir, itemsBaseName)
	if err != nil {
		return nil, err
	}
	stratagemsPath, err := findCatalogFile(dir, stratagemsBaseName)
	if err != nil {
		return nil, err
	}
	return LoadFiles(itemsPath, stratagemsPath)
}

// LoadFiles reads a catalog from explicit file paths.
func LoadFiles(itemsPath, stratagemsPath string) (*Catalog, error) {
	items, err := readPools(itemsPath)
	if err != nil {
		return nil, err
	}
	stratagems, err := readPools(stratagemsPath)
	if err != nil {
		return nil, err
	}

	c, err := build(items, stratagems)
	if err != nil {
		return nil, err
	}

	log.Printf("[Catalog] Loaded items: primary=%d, secondary=%d, grenades=%d, armor=%d, boosters=%d, sideMissions=%d",
		len(c.Pool(SlotPrimary)), len(c.Pool(SlotSecondary)), len(c.Pool(SlotGrenade)),
		len(c.Pool(SlotArmor)), len(c.Pool(SlotBooster)), len(c.Pool(SlotSideMission)))
	log.Printf("[Catalog] Loaded stratagems: %d stratagems (%d categories)",
		c.StratagemCount(), len(c.Stratagems))

	return c, nil
}

// IsCatalogFile reports whether name is one of the files Load reads.
func IsCatalogFile(name string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem != itemsBaseName && stem != stratagemsBaseName {
		return false
	}
	for _, e := range catalogExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func findCatalogFile(dir, base string) (string, error) {
	for _, ext := range catalogExtensions {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrCatalogFileNotFound, base, dir)
}

func readPools(path string) (rawPools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var pools rawPools
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pools)
	default:
		err = json.Unmarshal(data, &pools)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", filepath.Base(path), err)
	}
	return pools, nil
}

func build(items, stratagems rawPools) (*Catalog, error) {
	c := &Catalog{
		Stratagems: make(map[CategoryKey][]Item, len(StratagemCategories)),
		Equipment:  make(map[Slot][]Item, len(Slots)),
	}

	for name, entries := range stratagems {
		key, err := ParseCategoryKey(name)
		if err != nil {
			return nil, fmt.Errorf("stratagems file: %w", err)
		}
		pool, err := normalize(entries, string(key))
		if err != nil {
			return nil, err
		}
		c.Stratagems[key] = pool
	}
	for _, key := range StratagemCategories {
		if _, ok := c.Stratagems[key]; !ok {
			log.Printf("[Catalog] Warning: stratagem category %s missing, treating as empty", key)
			c.Stratagems[key] = []Item{}
		}
	}

	for name, entries := range items {
		slot, err := ParseSlot(name)
		if err != nil {
			log.Printf("[Catalog] Warning: ignoring unknown items key %q", name)
			continue
		}
		pool, err := normalize(entries, string(slot))
		if err != nil {
			return nil, err
		}
		c.Equipment[slot] = pool
	}
	for _, slot := range Slots {
		if _, ok := c.Equipment[slot]; !ok {
			c.Equipment[slot] = []Item{}
		}
	}

	return c, nil
}

// normalize trims names, stamps the owning pool and rejects blank or
// repeated names.
func normalize(entries []Item, pool string) ([]Item, error) {
	out := make([]Item, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, it := range entries {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			return nil, fmt.Errorf("%w: %s entry %d has no name", ErrInvalidItem, pool, i)
		}
		if _, dup := seen[it.Name]; dup {
			return nil, fmt.Errorf("%w: %s lists %q twice", ErrInvalidItem, pool, it.Name)
		}
		seen[it.Name] = struct{}{}
		it.Warbond = strings.TrimSpace(it.Warbond)
		it.Category = pool
		out = append(out, it)
	}
	return out, nil
}
