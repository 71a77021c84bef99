// Package cache implementa el cache de lectura de productos sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/tienda-api/internal/application/catalog"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
)

var _ catalog.ProductCache = (*ProductCache)(nil)

// ProductCache cache read-through de productos. Las entradas expiran por TTL
// y toda escritura de catálogo las invalida explícitamente.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache construye el cache sobre un cliente Redis ya conectado.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func productKey(productID string) string {
	return "product:" + productID
}

// Get retorna (nil, nil) en cache miss.
func (c *ProductCache) Get(ctx context.Context, productID string) (*entity.Product, error) {
	data, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get product: %w", err)
	}
	var p entity.Product
	if err := json.Unmarshal(data, &p); err != nil {
		// Entrada corrupta: tratarla como miss y dejar que la BD repueble.
		_ = c.client.Del(ctx, productKey(productID)).Err()
		return nil, nil
	}
	return &p, nil
}

func (c *ProductCache) Set(ctx context.Context, product *entity.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("cache marshal product: %w", err)
	}
	if err := c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set product: %w", err)
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context, productID string) error {
	if err := c.client.Del(ctx, productKey(productID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate product: %w", err)
	}
	return nil
}
