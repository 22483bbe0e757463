package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ramonehamilton/helldivers-loadout/internal/api/response"
	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
)

// maxSearchResults bounds the limit query parameter of Search.
const maxSearchResults = 50

// CatalogHandler serves read-only views of the loaded catalog.
type CatalogHandler struct {
	catalogs CatalogSource
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogs CatalogSource) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// GetSummary returns per-pool item counts and the warbond tags in use.
func (h *CatalogHandler) GetSummary(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.catalogs.Snapshot().Summarize())
}

// GetWarbonds returns the distinct warbond tags, sorted.
func (h *CatalogHandler) GetWarbonds(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.catalogs.Snapshot().Warbonds())
}

// Search fuzzy-matches item names across every pool.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, errors.New("query parameter q is required"))
		return
	}

	opts := catalog.DefaultSearchOptions()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxSearchResults {
			response.BadRequest(w, errors.New("limit must be an integer between 1 and 50"))
			return
		}
		opts.MaxResults = limit
	}

	response.Success(w, h.catalogs.Snapshot().Search(query, opts))
}
