package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/helldivers-loadout/internal/api/response"
	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/metrics"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

// CatalogSource hands out the catalog snapshot to serve a request from.
type CatalogSource interface {
	Snapshot() *catalog.Catalog
}

// RandomizerOptions configures RandomizerHandler.
type RandomizerOptions struct {
	// DefaultCount is the stratagem count used when a request names none.
	DefaultCount int

	// StrictModes rejects unknown mode values and more than one Only.
	StrictModes bool
}

// RandomizerHandler serves the roll routes.
type RandomizerHandler struct {
	catalogs CatalogSource
	sampler  *randomizer.Sampler
	metrics  *metrics.RollMetrics
	opts     RandomizerOptions
}

// NewRandomizerHandler creates a new RandomizerHandler.
func NewRandomizerHandler(catalogs CatalogSource, sampler *randomizer.Sampler, m *metrics.RollMetrics, opts RandomizerOptions) *RandomizerHandler {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = randomizer.DefaultStratagemCount
	}
	return &RandomizerHandler{catalogs: catalogs, sampler: sampler, metrics: m, opts: opts}
}

// SlotResponse is the body of GET /api/random/{slot}.
type SlotResponse struct {
	Slot catalog.Slot  `json:"slot"`
	Item *catalog.Item `json:"item"`
}

// StratagemsResponse is the body of GET /api/random/stratagems.
type StratagemsResponse struct {
	Requested  int                `json:"requested"`
	Modes      randomizer.ModeMap `json:"modes"` // modes as parsed, by category
	Stratagems []catalog.Item     `json:"stratagems"`
}

// RerollResponse is the body of GET /api/random/stratagem.
type RerollResponse struct {
	Index     int          `json:"index"`
	Stratagem catalog.Item `json:"stratagem"`
}

// RandomLoadout rolls a full loadout.
func (h *RandomizerHandler) RandomLoadout(w http.ResponseWriter, r *http.Request) {
	params, err := parseRollParams(r, h.opts.DefaultCount, h.opts.StrictModes)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	start := time.Now()
	loadout := h.sampler.RollLoadout(h.catalogs.Snapshot(), randomizer.LoadoutRequest{
		Modes: params.Modes,
		Owned: params.Owned,
		Count: params.Count,
	})
	h.metrics.RecordLoadout(time.Since(start), params.Count, len(loadout.Stratagems))

	response.Success(w, loadout)
}

// RandomSlot rolls a single equipment slot. An empty pool yields a null item.
func (h *RandomizerHandler) RandomSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := catalog.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		response.NotFound(w, err)
		return
	}

	resp := SlotResponse{Slot: slot}
	if item, ok := h.sampler.SelectItem(h.catalogs.Snapshot(), slot, parseOwnership(r)); ok {
		resp.Item = &item
	}
	h.metrics.RecordSlotRoll()

	response.Success(w, resp)
}

// RandomStratagems rolls a stratagem set. Fewer than the requested count is
// a normal outcome when the options are restrictive.
func (h *RandomizerHandler) RandomStratagems(w http.ResponseWriter, r *http.Request) {
	params, err := parseRollParams(r, h.opts.DefaultCount, h.opts.StrictModes)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	start := time.Now()
	picked := h.sampler.SelectStratagems(h.catalogs.Snapshot(), randomizer.StratagemRequest{
		Modes: params.Modes,
		Owned: params.Owned,
		Count: params.Count,
	})
	h.metrics.RecordStratagems(time.Since(start), params.Count, len(picked))

	response.Success(w, StratagemsResponse{
		Requested:  params.Count,
		Modes:      params.Modes,
		Stratagems: picked,
	})
}

// RerollStratagem replaces one displayed stratagem, avoiding every excluded
// name. Responds 404 when nothing admissible remains.
func (h *RandomizerHandler) RerollStratagem(w http.ResponseWriter, r *http.Request) {
	modes, err := parseModes(r, h.opts.StrictModes)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	index, err := parseIndex(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	start := time.Now()
	item, err := h.sampler.RerollStratagem(h.catalogs.Snapshot(), randomizer.RerollRequest{
		Modes:   modes,
		Owned:   parseOwnership(r),
		Exclude: parseExclude(r),
		Index:   index,
	})
	h.metrics.RecordReroll(time.Since(start), err == nil)

	if errors.Is(err, randomizer.ErrNoCandidates) {
		response.NotFound(w, err)
		return
	}
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, RerollResponse{Index: index, Stratagem: item})
}
