package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/config"
	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	replenishReportKeyPrefix = "replenish:report"
	replenishScanBatchSize   = 100
)

type ReplenishCache interface {
	GetReport(ctx context.Context, filter domain.SalesFilter) (*domain.ReplenishmentReport, bool, error)
	SetReport(ctx context.Context, filter domain.SalesFilter, report *domain.ReplenishmentReport) error
	InvalidateReports(ctx context.Context) error
}

type redisReplenishCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReplenishCache struct{}

func NewReplenishCache(cfg config.CacheConfig) (ReplenishCache, error) {
	if !cfg.Enabled {
		return &noopReplenishCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReplenishCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReplenishCache() ReplenishCache {
	return &noopReplenishCache{}
}

func (c *redisReplenishCache) GetReport(ctx context.Context, filter domain.SalesFilter) (*domain.ReplenishmentReport, bool, error) {
	key := buildReportKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.ReplenishmentReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode replenishment report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReplenishCache) SetReport(ctx context.Context, filter domain.SalesFilter, report *domain.ReplenishmentReport) error {
	key := buildReportKey(filter)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode replenishment report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateReports drops every cached report. Called after each
// recalculation run so stale thresholds never reach callers.
func (c *redisReplenishCache) InvalidateReports(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, replenishReportKeyPrefix, replenishScanBatchSize)
}

func (n *noopReplenishCache) GetReport(ctx context.Context, filter domain.SalesFilter) (*domain.ReplenishmentReport, bool, error) {
	return nil, false, nil
}

func (n *noopReplenishCache) SetReport(ctx context.Context, filter domain.SalesFilter, report *domain.ReplenishmentReport) error {
	return nil
}

func (n *noopReplenishCache) InvalidateReports(ctx context.Context) error {
	return nil
}

func buildReportKey(filter domain.SalesFilter) string {
	return fmt.Sprintf("%s:%s", replenishReportKeyPrefix, salesFilterHash(filter))
}

func salesFilterHash(filter domain.SalesFilter) string {
	parts := []string{}

	if filter.SupplierID != nil {
		parts = append(parts, fmt.Sprintf("supplier_id=%d", *filter.SupplierID))
	}
	if filter.ProductID != nil {
		parts = append(parts, fmt.Sprintf("product_id=%d", *filter.ProductID))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
