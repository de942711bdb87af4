package idgen

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/clock"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/safe"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/safe/waitgroup"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/uuid"
	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
	"github.com/dilipkumar2k6/uuid-generation/internal/redisx"
)

const (
	redisSnowflakeKeyPrefix = "uuid-generator:node:"
	redisSnowflakeClaimTTL  = 10 * time.Second
)

// RedisSnowflake is the Redis-backed sibling of EtcdSnowflake (§4.8a): node
// id claims use SETNX-with-expiry instead of a lease, and a background
// refresh keeps the claim alive for as long as the process runs.
type RedisSnowflake struct {
	client *redisx.Client
	nodeID uint32
	token  string // unique per instance; guards the keep-alive against a false refresh after expiry + re-claim by another instance

	lastTimestamp int64
	sequence      uint32

	clock clock.Clock

	stopCh      chan struct{}
	keepAliveWG *waitgroup.WaitGroup
}

// NewRedisSnowflake claims the lowest unclaimed node id in
// [0, idlayout.MaxNodeID] against client.
func NewRedisSnowflake(ctx context.Context, client *redisx.Client, c clock.Clock) (*RedisSnowflake, error) {
	token, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	g := &RedisSnowflake{
		client:        client,
		clock:         c,
		token:         token.String(),
		lastTimestamp: -1,
		stopCh:        make(chan struct{}),
	}

	nodeID, err := g.claimNodeID(ctx)
	if err != nil {
		return nil, err
	}
	g.nodeID = nodeID

	g.keepAliveWG = waitgroup.NewWaitGroup(waitgroup.WithPanicOnMisuse())
	g.keepAliveWG.Add(1)
	safe.SafeGo(ctx, func(ctx context.Context) error {
		defer g.keepAliveWG.Done()
		return g.keepAlive(ctx)
	}, nil)
	return g, nil
}

func (g *RedisSnowflake) claimNodeID(ctx context.Context) (uint32, error) {
	for candidate := uint32(0); candidate <= idlayout.MaxNodeID; candidate++ {
		key := fmt.Sprintf("%s%d", redisSnowflakeKeyPrefix, candidate)
		ok, err := g.client.SetNX(ctx, key, g.token, redisSnowflakeClaimTTL).Result()
		if err != nil {
			return 0, idserrors.ErrCoordinatorUnavailable
		}
		if ok {
			return candidate, nil
		}
	}
	return 0, idserrors.ErrNodeIDExhausted
}

// keepAlive refreshes the claim key's TTL at a third of the claim TTL, so
// one missed tick doesn't cost the node id. The refresh only fires if the
// key's value still matches this instance's token, guarding against a false
// refresh after the claim expired and was re-claimed by another instance.
// Loss of the claim is not detected here: a skipped or failed refresh is
// simply retried at the next tick, mirroring EtcdSnowflake.keepAlive's
// unchanged-from-the-original semantics (§4.8a, §9).
func (g *RedisSnowflake) keepAlive(ctx context.Context) error {
	ticker := time.NewTicker(redisSnowflakeClaimTTL / 3)
	defer ticker.Stop()

	key := fmt.Sprintf("%s%d", redisSnowflakeKeyPrefix, g.nodeID)

	for {
		select {
		case <-g.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current, err := g.client.Get(ctx, key).Result()
			if err != nil || current != g.token {
				continue
			}
			_ = g.client.Expire(ctx, key, redisSnowflakeClaimTTL).Err()
		}
	}
}

// NextID implements the baseline Snowflake algorithm (§4.1) against the
// Redis-claimed node id. Wrapped in a trace span and latency observation
// since the claim this id depends on is held by an external coordinator
// (§1.2/§1.3).
func (g *RedisSnowflake) NextID() (uint64, error) {
	return instrumentedNextID("redis_snowflake", func(ctx context.Context) (uint64, error) {
		return g.nextID(ctx)
	})
}

// nextID never reaches Redis itself: the node id it packs was claimed once
// at construction and is kept alive by the background keepAlive task, so
// ctx has no coordinator call to parent here. Accepted anyway for a
// signature consistent with the other externally-coordinated generators.
func (g *RedisSnowflake) nextID(_ context.Context) (uint64, error) {
	t := g.clock.Now().UnixMilli() - idlayout.Epoch
	tLast := atomic.LoadInt64(&g.lastTimestamp)

	if t < tLast {
		return 0, idserrors.ErrClockRegressed
	}

	var seq uint32
	if t == tLast {
		seq = atomic.AddUint32(&g.sequence, 1) & idlayout.MaxSequence
		if seq == 0 {
			for t <= tLast {
				t = g.clock.Now().UnixMilli() - idlayout.Epoch
			}
		}
	} else {
		atomic.StoreUint32(&g.sequence, 0)
	}

	atomic.StoreInt64(&g.lastTimestamp, t)
	return idlayout.Pack(t, g.nodeID, seq), nil
}

// NextIDString renders NextID as decimal text, or "0" on failure.
func (g *RedisSnowflake) NextIDString() string {
	id, err := g.NextID()
	if err != nil {
		return "0"
	}
	return uint64ToString(id)
}

// Close stops the keep-alive task. It does not delete the claim key;
// letting the TTL lapse naturally releases the claimed node id.
func (g *RedisSnowflake) Close() error {
	close(g.stopCh)
	if g.keepAliveWG != nil {
		g.keepAliveWG.Wait()
	}
	return nil
}
