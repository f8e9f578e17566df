package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-kasir/internal/obs"
)

// Entry pairs a product with its current unit price.
type Entry struct {
	Product Product `json:"product"`
	Price   float64 `json:"price"`
}

// Querier abstracts catalog storage so handlers and services can be tested
// against an in-memory fake.
type Querier interface {
	GetProduct(ctx context.Context, name string) (Entry, error)
	ListProducts(ctx context.Context) ([]Entry, error)
}

// PGQuerier implements Querier against Postgres.
type PGQuerier struct {
	Pool *pgxpool.Pool
}

// GetProduct fetches one product by name.
func (q PGQuerier) GetProduct(ctx context.Context, name string) (Entry, error) {
	row := q.Pool.QueryRow(ctx, `SELECT name, unit, price FROM products WHERE name = $1`, name)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, fmt.Errorf("%q: %w", name, ErrProductNotFound)
		}
		return Entry{}, fmt.Errorf("get product: %w", err)
	}
	return entry, nil
}

// ListProducts returns the whole catalog ordered by name.
func (q PGQuerier) ListProducts(ctx context.Context) ([]Entry, error) {
	rows, err := q.Pool.Query(ctx, `SELECT name, unit, price FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (Entry, error) {
	var name, unitRaw string
	var price float64
	if err := row.Scan(&name, &unitRaw, &price); err != nil {
		return Entry{}, err
	}
	unit, err := ParseUnit(unitRaw)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Product: Product{Name: name, Unit: unit}, Price: price}, nil
}

// Service resolves products and unit prices, caching lookups in Redis.
type Service struct {
	q     Querier
	cache *Cache
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries Querier
	Cache   *Cache
}

// NewService constructs a catalog service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries are required")
	}
	return &Service{q: cfg.Queries, cache: cfg.Cache}, nil
}

// Product resolves a product and its unit price by name.
func (s *Service) Product(ctx context.Context, name string) (Entry, error) {
	key := productKeyPrefix + name
	var cached Entry
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err == nil && hit {
		s.countCache("hit")
		return cached, nil
	}
	s.countCache("miss")

	entry, err := s.q.GetProduct(ctx, name)
	if err != nil {
		return Entry{}, err
	}
	_ = s.cache.SetJSON(ctx, key, entry)
	return entry, nil
}

// UnitPrice returns the unit price for a known product. Unknown products
// fail; discount resolution must never price against a default.
func (s *Service) UnitPrice(ctx context.Context, product Product) (float64, error) {
	entry, err := s.Product(ctx, product.Name)
	if err != nil {
		return 0, err
	}
	return entry.Price, nil
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	var cached []Entry
	hit, err := s.cache.GetJSON(ctx, productListKey, &cached)
	if err == nil && hit {
		s.countCache("hit")
		return cached, nil
	}
	s.countCache("miss")

	entries, err := s.q.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, productListKey, entries)
	return entries, nil
}

func (s *Service) countCache(result string) {
	if obs.CatalogCacheTotal != nil {
		obs.CatalogCacheTotal.WithLabelValues(result).Inc()
	}
}
