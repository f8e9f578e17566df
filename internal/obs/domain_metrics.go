package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts checkout and quote outcomes.
	CheckoutTotal *prometheus.CounterVec
	// DiscountsAppliedTotal counts discounts emitted by the resolution engine.
	DiscountsAppliedTotal *prometheus.CounterVec
	// CatalogCacheTotal counts catalog cache hits and misses.
	CatalogCacheTotal *prometheus.CounterVec
	// CheckoutBasketValue records final receipt totals.
	CheckoutBasketValue prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout and quote outcomes.",
		}, []string{"operation", "result"})
		DiscountsAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discounts_applied_total",
			Help:      "Count of discounts emitted during resolution, by kind.",
		}, []string{"kind"})
		CatalogCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_total",
			Help:      "Catalog cache lookups by outcome.",
		}, []string{"outcome"})
		CheckoutBasketValue = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_basket_value",
			Help:      "Final receipt totals after discounts and loyalty redemption.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		})

		mustRegisterCollector(reg, CheckoutTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutTotal = v
			}
		})
		mustRegisterCollector(reg, DiscountsAppliedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DiscountsAppliedTotal = v
			}
		})
		mustRegisterCollector(reg, CatalogCacheTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogCacheTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutBasketValue, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				CheckoutBasketValue = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
