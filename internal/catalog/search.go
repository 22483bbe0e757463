package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// SearchResult is a catalog item matched by Search with its similarity score.
type SearchResult struct {
	Item  Item `json:"item"`
	Score int  `json:"score"`
}

// SearchOptions configures fuzzy search behavior.
type SearchOptions struct {
	// MaxResults limits the number of results returned (0 = unlimited)
	MaxResults int
	// MinScore sets minimum score threshold (0-100)
	MinScore int
}

// DefaultSearchOptions returns the options used by the HTTP search endpoint.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxResults: 10,
		MinScore:   40,
	}
}

// FoldName returns the case-folded form of an item name used for matching.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Search finds items across every pool whose name resembles query.
// Results are sorted by score, then pool order, then name.
func (c *Catalog) Search(query string, options SearchOptions) []SearchResult {
	q := FoldName(query)
	results := make([]SearchResult, 0)
	if q == "" || c == nil {
		return results
	}

	consider := func(items []Item) {
		for _, it := range items {
			if score := similarity(q, FoldName(it.Name)); score >= options.MinScore {
				results = append(results, SearchResult{Item: it, Score: score})
			}
		}
	}
	for _, key := range StratagemCategories {
		consider(c.Category(key))
	}
	for _, slot := range Slots {
		consider(c.Pool(slot))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Name < results[j].Item.Name
	})

	if options.MaxResults > 0 && len(results) > options.MaxResults {
		results = results[:options.MaxResults]
	}
	return results
}

// similarity scores query against target from 0 to 100. Both arguments
// must already be folded.
func similarity(query, target string) int {
	if query == target {
		return 100
	}
	if query == "" || target == "" {
		return 0
	}

	qLen := utf8.RuneCountInString(query)
	tLen := utf8.RuneCountInString(target)

	if strings.HasPrefix(target, query) {
		return 85 + qLen*15/tLen
	}
	if strings.Contains(target, query) {
		return 80 + qLen*20/tLen
	}

	distance := levenshtein.ComputeDistance(query, target)
	score := 100 - distance*100/max(qLen, tLen)
	if score < 0 {
		return 0
	}
	return score
}
