package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/verahealth/coach-backend/internal/platform/envutil"
	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/types"
)

// ErrCacheMiss is returned when the report is not in the cache. Callers fall
// through to Postgres.
var ErrCacheMiss = errors.New("report cache miss")

// ReportCache is a read-through cache keyed by report id. The cache is an
// optimization only: every method failure must be survivable by the caller.
type ReportCache interface {
	Get(ctx context.Context, id uuid.UUID) (*types.Report, error)
	Set(ctx context.Context, report *types.Report) error
	Close() error
}

type reportCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewReportCache(log *logger.Logger) (ReportCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttl := envutil.Seconds("REPORT_CACHE_TTL_SECONDS", time.Hour)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &reportCache{
		log: log.With("service", "RedisReportCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(id uuid.UUID) string {
	return "report:" + id.String()
}

func (c *reportCache) Get(ctx context.Context, id uuid.UUID) (*types.Report, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var report types.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		// A corrupt entry behaves like a miss; Postgres remains authoritative.
		c.log.Warn("Dropping unreadable cache entry", "report_id", id.String(), "error", err.Error())
		_ = c.rdb.Del(ctx, cacheKey(id)).Err()
		return nil, ErrCacheMiss
	}
	return &report, nil
}

func (c *reportCache) Set(ctx context.Context, report *types.Report) error {
	if report == nil {
		return nil
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(report.ID), raw, c.ttl).Err()
}

func (c *reportCache) Close() error {
	return c.rdb.Close()
}
