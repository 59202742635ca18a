package metrics

import (
	"time"

	"github.com/cuemby/naxml-ingest/pkg/storage"
)

// Collector periodically refreshes gauge metrics from storage state that
// isn't naturally observed at the point of mutation (counts by status,
// for example).
type Collector struct {
	store  storage.Store
	stopCh chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(store storage.Store) *Collector {
	return &Collector{
		store:  store,
		stopCh: make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	c.collectIntegrationMetrics()
}

func (c *Collector) collectIntegrationMetrics() {
	integrations, err := c.store.ListActiveIntegrations()
	if err != nil {
		return
	}

	counts := make(map[string]int)
	for _, integration := range integrations {
		counts[string(integration.POSType)]++
	}

	for posType, count := range counts {
		IntegrationsTotal.WithLabelValues(posType, "active").Set(float64(count))
	}
}
