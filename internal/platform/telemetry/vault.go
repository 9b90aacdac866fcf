package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// VaultStats is sampled on every scrape of the metrics endpoint.
type VaultStats interface {
	QuoteCount() int
	CollectionCount() int
	Credits() int
}

// RegisterVaultGauges registers gauges that read the current vault contents.
func RegisterVaultGauges(reg prometheus.Registerer, stats VaultStats) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "quotevault",
			Name:      "quotes_total",
			Help:      "Number of stored quotes.",
		}, func() float64 { return float64(stats.QuoteCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "quotevault",
			Name:      "collections_total",
			Help:      "Number of stored collections.",
		}, func() float64 { return float64(stats.CollectionCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "quotevault",
			Name:      "account_credits",
			Help:      "Credits held by the account.",
		}, func() float64 { return float64(stats.Credits()) }),
	}

	for _, g := range gauges {
		if err := reg.Register(g); err != nil {
			return fmt.Errorf("registering vault gauge: %w", err)
		}
	}

	return nil
}
