package events

import (
	"time"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
)

// Event types.
const (
	TypeCatalogReloaded     = "catalog:reloaded"
	TypeCatalogReloadFailed = "catalog:reload_failed"
)

// CatalogReloadedEvent is the payload for catalog:reloaded events.
type CatalogReloadedEvent struct {
	Summary  catalog.Summary `json:"summary"`
	LoadedAt time.Time       `json:"loadedAt"`
}

// CatalogReloadFailedEvent is the payload for catalog:reload_failed events.
// The previous catalog stays in service.
type CatalogReloadFailedEvent struct {
	Error string `json:"error"`
}

// NewCatalogReloaded builds a catalog:reloaded event for c.
func NewCatalogReloaded(c *catalog.Catalog, loadedAt time.Time) Event {
	return Event{
		Type: TypeCatalogReloaded,
		Data: CatalogReloadedEvent{Summary: c.Summarize(), LoadedAt: loadedAt},
	}
}

// NewCatalogReloadFailed builds a catalog:reload_failed event.
func NewCatalogReloadFailed(err error) Event {
	return Event{
		Type: TypeCatalogReloadFailed,
		Data: CatalogReloadFailedEvent{Error: err.Error()},
	}
}
