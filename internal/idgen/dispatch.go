package idgen

import (
	"context"

	"github.com/dilipkumar2k6/uuid-generation/internal/config"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/clock"
	"github.com/dilipkumar2k6/uuid-generation/internal/netid"
	"github.com/dilipkumar2k6/uuid-generation/internal/redisx"
)

// New constructs the Generator selected by cfg.GeneratorType, wiring node
// identity, clock, and any coordinator clients the variant needs.
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	c := clock.New()

	switch cfg.GeneratorType {
	case config.Snowflake:
		return NewSnowflake(netid.Discover(10), c), nil
	case config.InstaSnowflake:
		return NewInstagram(netid.Discover(13), c), nil
	case config.Sonyflake:
		return NewSonyflake(netid.Discover(16), c), nil
	case config.HLCSnowflake:
		return NewHLCSnowflake(netid.Discover(10), c), nil
	case config.UUIDv4:
		return NewUUIDv4(), nil
	case config.UUIDv7:
		return NewUUIDv7()
	case config.ULID:
		return NewULID()
	case config.DBAutoInc:
		return NewDBAutoInc(cfg.MySQLDSN())
	case config.DualBuffer:
		return NewDualBuffer(ctx, cfg.MySQLDSN(), 1000)
	case config.EtcdSnowflake:
		return NewEtcdSnowflake(ctx, cfg.EtcdBaseURL(), c)
	case config.RedisSnowflake:
		return newRedisSnowflakeFromConfig(ctx, cfg, c)
	case config.Spanner:
		return NewSpanner(cfg.SpannerBaseURL()), nil
	case config.SpannerTrueTime:
		return NewSpannerTrueTime(cfg.SpannerBaseURL())
	default:
		return NewSnowflake(netid.Discover(10), c), nil
	}
}

func newRedisSnowflakeFromConfig(ctx context.Context, cfg *config.Config, c clock.Clock) (Generator, error) {
	redisCfg := redisx.NewRedisConfig(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, false)
	client, err := redisx.NewClient(ctx, redisCfg)
	if err != nil {
		return nil, err
	}
	return NewRedisSnowflake(ctx, client, c)
}
