package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// RollMetrics tracks randomizer usage for the metrics endpoint.
type RollMetrics struct {
	// Latency of engine calls, in milliseconds
	LoadoutLatency   *Histogram
	StratagemLatency *Histogram
	RerollLatency    *Histogram

	// Counters
	Loadouts       atomic.Uint64
	StratagemSets  atomic.Uint64
	SlotRolls      atomic.Uint64
	Rerolls        atomic.Uint64
	RerollNotFound atomic.Uint64
	ShortResults   atomic.Uint64 // stratagem sets smaller than requested
	RateLimited    atomic.Uint64
	CatalogReloads atomic.Uint64

	startTime time.Time
	mu        sync.RWMutex
}

// NewRollMetrics creates a new metrics collector.
func NewRollMetrics() *RollMetrics {
	return &RollMetrics{
		LoadoutLatency:   NewHistogram(10000),
		StratagemLatency: NewHistogram(10000),
		RerollLatency:    NewHistogram(10000),
		startTime:        time.Now(),
	}
}

// RecordLoadout records a full loadout roll.
func (m *RollMetrics) RecordLoadout(d time.Duration, requested, got int) {
	m.Loadouts.Add(1)
	m.LoadoutLatency.Record(d)
	m.recordShort(requested, got)
}

// RecordStratagems records a bulk stratagem draw.
func (m *RollMetrics) RecordStratagems(d time.Duration, requested, got int) {
	m.StratagemSets.Add(1)
	m.StratagemLatency.Record(d)
	m.recordShort(requested, got)
}

// RecordSlotRoll records a single equipment slot roll.
func (m *RollMetrics) RecordSlotRoll() {
	m.SlotRolls.Add(1)
}

// RecordReroll records a single stratagem reroll. found is false when no
// candidate was left.
func (m *RollMetrics) RecordReroll(d time.Duration, found bool) {
	m.Rerolls.Add(1)
	m.RerollLatency.Record(d)
	if !found {
		m.RerollNotFound.Add(1)
	}
}

// IncrementRateLimited counts a rejected request.
func (m *RollMetrics) IncrementRateLimited() {
	m.RateLimited.Add(1)
}

// IncrementCatalogReloads counts a successful catalog hot reload.
func (m *RollMetrics) IncrementCatalogReloads() {
	m.CatalogReloads.Add(1)
}

func (m *RollMetrics) recordShort(requested, got int) {
	if got < requested {
		m.ShortResults.Add(1)
	}
}

// RollStats is a point-in-time snapshot of RollMetrics.
type RollStats struct {
	LoadoutLatency   LatencyStats `json:"loadout_latency"`
	StratagemLatency LatencyStats `json:"stratagem_latency"`
	RerollLatency    LatencyStats `json:"reroll_latency"`

	Loadouts       uint64 `json:"loadouts"`
	StratagemSets  uint64 `json:"stratagem_sets"`
	SlotRolls      uint64 `json:"slot_rolls"`
	Rerolls        uint64 `json:"rerolls"`
	RerollNotFound uint64 `json:"reroll_not_found"`
	ShortResults   uint64 `json:"short_results"`
	RateLimited    uint64 `json:"rate_limited"`
	CatalogReloads uint64 `json:"catalog_reloads"`

	RerollSuccessRate float64 `json:"reroll_success_rate"` // percentage

	Uptime string `json:"uptime"`
}

// LatencyStats contains statistics for a latency histogram.
type LatencyStats struct {
	Mean  float64 `json:"mean"` // milliseconds
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// GetStats returns a snapshot of the current statistics.
func (m *RollMetrics) GetStats() *RollStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rerolls := m.Rerolls.Load()
	notFound := m.RerollNotFound.Load()

	successRate := 0.0
	if rerolls > 0 {
		successRate = float64(rerolls-notFound) / float64(rerolls) * 100
	}

	return &RollStats{
		LoadoutLatency:    m.LoadoutLatency.Stats(),
		StratagemLatency:  m.StratagemLatency.Stats(),
		RerollLatency:     m.RerollLatency.Stats(),
		Loadouts:          m.Loadouts.Load(),
		StratagemSets:     m.StratagemSets.Load(),
		SlotRolls:         m.SlotRolls.Load(),
		Rerolls:           rerolls,
		RerollNotFound:    notFound,
		ShortResults:      m.ShortResults.Load(),
		RateLimited:       m.RateLimited.Load(),
		CatalogReloads:    m.CatalogReloads.Load(),
		RerollSuccessRate: successRate,
		Uptime:            time.Since(m.startTime).Round(time.Second).String(),
	}
}

// Reset clears all metrics.
func (m *RollMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LoadoutLatency.Reset()
	m.StratagemLatency.Reset()
	m.RerollLatency.Reset()

	m.Loadouts.Store(0)
	m.StratagemSets.Store(0)
	m.SlotRolls.Store(0)
	m.Rerolls.Store(0)
	m.RerollNotFound.Store(0)
	m.ShortResults.Store(0)
	m.RateLimited.Store(0)
	m.CatalogReloads.Store(0)

	m.startTime = time.Now()
}
