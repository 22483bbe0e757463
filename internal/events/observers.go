package events

import (
	"log"
)

// LoggingObserver logs every event.
type LoggingObserver struct {
	name    string
	verbose bool
}

// NewLoggingObserver creates a new observer that logs events. With verbose
// set the payload is logged too.
func NewLoggingObserver(verbose bool) *LoggingObserver {
	return &LoggingObserver{
		name:    "LoggingObserver",
		verbose: verbose,
	}
}

// OnEvent logs the event.
func (o *LoggingObserver) OnEvent(event Event) error {
	if o.verbose {
		log.Printf("[%s] Event: %s, Data: %+v", o.name, event.Type, event.Data)
	} else {
		log.Printf("[%s] Event: %s", o.name, event.Type)
	}
	return nil
}

// GetName returns the observer's name.
func (o *LoggingObserver) GetName() string {
	return o.name
}

// ShouldHandle returns true for all events.
func (o *LoggingObserver) ShouldHandle(string) bool {
	return true
}

// ReloadCounter is satisfied by metrics collectors that count catalog reloads.
type ReloadCounter interface {
	IncrementCatalogReloads()
}

// MetricsObserver feeds catalog reload events into a metrics collector.
type MetricsObserver struct {
	counter ReloadCounter
}

// NewMetricsObserver creates an observer that counts successful reloads.
func NewMetricsObserver(counter ReloadCounter) *MetricsObserver {
	return &MetricsObserver{counter: counter}
}

// OnEvent increments the reload counter.
func (o *MetricsObserver) OnEvent(Event) error {
	o.counter.IncrementCatalogReloads()
	return nil
}

// GetName returns the observer's name.
func (o *MetricsObserver) GetName() string {
	return "MetricsObserver"
}

// ShouldHandle returns true for catalog:reloaded only.
func (o *MetricsObserver) ShouldHandle(eventType string) bool {
	return eventType == TypeCatalogReloaded
}

var (
	_ Observer = (*LoggingObserver)(nil)
	_ Observer = (*MetricsObserver)(nil)
)
