package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":        "postgres://localhost/kasir",
		"REDIS_URL":           "redis://localhost:6379",
		"CATALOG_CACHE_TTL":   "",
		"LOYALTY_POINT_VALUE": "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.InDelta(t, 0.01, cfg.LoyaltyPointValue, 1e-9)
	require.Equal(t, 30, cfg.CheckoutRateMax)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379",
	})
	require.Error(t, err)
}

func TestLoadRejectsNonPositivePointValue(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL":        "postgres://localhost/kasir",
		"REDIS_URL":           "redis://localhost:6379",
		"LOYALTY_POINT_VALUE": "-1",
	})
	require.Error(t, err)
}
