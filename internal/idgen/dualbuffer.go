package idgen

import (
	"context"
	"database/sql"
	"sync"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/safe"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/safe/waitgroup"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

const (
	dualBufferBizTag = "default"

	dualBufferCreateTable = `CREATE TABLE IF NOT EXISTS id_segments (
		biz_tag VARCHAR(64) PRIMARY KEY,
		max_id BIGINT UNSIGNED NOT NULL,
		step BIGINT UNSIGNED NOT NULL
	)`
)

// segment is a half-open range [currentID, maxID] of pre-allocated ids
// owned by one DualBuffer instance (§3 "Segment entity").
type segment struct {
	currentID uint64
	maxID     uint64
	step      uint64
	isReady   bool
}

func (s *segment) remaining() int64 {
	return int64(s.maxID) - int64(s.currentID) + 1
}

// DualBuffer amortizes DB round-trips by pre-fetching a second segment
// while the first is still being consumed (§4.7).
type DualBuffer struct {
	bufferMtx sync.Mutex
	cond      *sync.Cond
	segments  [2]segment
	current   int
	fetching  bool
	running   bool

	dbMtx sync.Mutex
	db    *sql.DB

	fetcherWG *waitgroup.WaitGroup
}

// NewDualBuffer opens dsn, ensures id_segments exists and is seeded, runs
// the initial synchronous fetch, and starts the background fetcher.
// Construction fails (INIT never reaches OPERATING, §4.13) if the initial
// fetch cannot complete.
func NewDualBuffer(ctx context.Context, dsn string, step uint64) (*DualBuffer, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, idserrors.ErrCoordinatorUnavailable
	}

	g := &DualBuffer{db: db, running: true}
	g.cond = sync.NewCond(&g.bufferMtx)

	if _, err := g.db.Exec(dualBufferCreateTable); err != nil {
		db.Close()
		return nil, idserrors.ErrCoordinatorUnavailable
	}
	if _, err := g.db.Exec(
		`INSERT IGNORE INTO id_segments(biz_tag, max_id, step) VALUES (?, 0, ?)`,
		dualBufferBizTag, step,
	); err != nil {
		db.Close()
		return nil, idserrors.ErrCoordinatorUnavailable
	}

	maxID, fetchedStep, err := g.fetchSegment(ctx)
	if err != nil {
		db.Close()
		return nil, idserrors.ErrCoordinatorUnavailable
	}
	g.segments[0] = segment{
		currentID: maxID - fetchedStep + 1,
		maxID:     maxID,
		step:      fetchedStep,
		isReady:   true,
	}

	g.fetcherWG = waitgroup.NewWaitGroup(waitgroup.WithPanicOnMisuse())
	g.fetcherWG.Add(1)
	safe.SafeGo(ctx, func(ctx context.Context) error {
		defer g.fetcherWG.Done()
		return g.runFetcher(ctx)
	}, nil)
	return g, nil
}

// fetchSegment executes the fetch protocol: bump max_id by step under a
// transaction, then report the new max_id and step. ctx is the caller's
// lifetime context (the generator's own context during the background
// fetcher's loop, the constructor's during the initial synchronous fetch),
// not a per-NextID span context: the fetch runs on its own goroutine,
// decoupled from any single NextID call by the buffer/cond handoff below.
func (g *DualBuffer) fetchSegment(ctx context.Context) (maxID, step uint64, err error) {
	g.dbMtx.Lock()
	defer g.dbMtx.Unlock()

	op := func() error {
		tx, txErr := g.db.BeginTx(ctx, nil)
		if txErr != nil {
			return txErr
		}

		if _, execErr := tx.ExecContext(ctx,
			`UPDATE id_segments SET max_id = max_id + step WHERE biz_tag = ?`, dualBufferBizTag,
		); execErr != nil {
			tx.Rollback()
			return execErr
		}

		row := tx.QueryRowContext(ctx, `SELECT max_id, step FROM id_segments WHERE biz_tag = ?`, dualBufferBizTag)
		if scanErr := row.Scan(&maxID, &step); scanErr != nil {
			tx.Rollback()
			return scanErr
		}

		return tx.Commit()
	}

	b := backoff.NewExponentialBackOff()
	if retryErr := backoff.Retry(op, backoff.WithContext(b, ctx)); retryErr != nil {
		return 0, 0, retryErr
	}
	dualBufferFetchesTotal.Inc()
	return maxID, step, nil
}

// runFetcher is the single dedicated background goroutine (§4.7), spawned
// via safe.SafeGo so a panic inside the fetch path is recovered and logged,
// and joined by fetcherWG so Close can wait for it to exit.
func (g *DualBuffer) runFetcher(ctx context.Context) error {
	for {
		g.bufferMtx.Lock()
		for g.running && !g.fetching {
			g.cond.Wait()
		}
		if !g.running {
			g.bufferMtx.Unlock()
			return nil
		}
		target := 1 - g.current
		g.bufferMtx.Unlock()

		maxID, step, err := g.fetchSegment(ctx)

		g.bufferMtx.Lock()
		if err == nil {
			g.segments[target] = segment{
				currentID: maxID - step + 1,
				maxID:     maxID,
				step:      step,
				isReady:   true,
			}
			g.fetching = false
			g.cond.Broadcast()
		}
		// On failure, fetching stays true; the next wake retries.
		g.bufferMtx.Unlock()
	}
}

const dualBufferPrefetchThreshold = 0.2

// NextID allocates the next id from the active segment, triggering a
// background pre-fetch of the sibling segment once 20% or less of the
// active one's step remains (§4.7 "Allocation protocol"). The call is still span-wrapped
// since it may block on a coordinator fetch when both segments are
// exhausted at once.
func (g *DualBuffer) NextID() (uint64, error) {
	return instrumentedNextID("dual_buffer", func(ctx context.Context) (uint64, error) {
		return g.nextID(ctx)
	})
}

// nextID does not itself reach the coordinator: when both segments are
// exhausted it signals the background fetcher and waits on the condition
// variable, rather than calling fetchSegment inline, so ctx has nothing to
// parent here. It is still accepted for a consistent signature.
func (g *DualBuffer) nextID(ctx context.Context) (uint64, error) {
	g.bufferMtx.Lock()
	defer g.bufferMtx.Unlock()

	for {
		s := &g.segments[g.current]

		if s.currentID <= s.maxID {
			id := s.currentID
			s.currentID++

			remaining := s.remaining()
			sibling := &g.segments[1-g.current]
			if float64(remaining) <= dualBufferPrefetchThreshold*float64(s.step) && !sibling.isReady && !g.fetching {
				g.fetching = true
				g.cond.Broadcast()
			}
			return id, nil
		}

		sibling := &g.segments[1-g.current]
		if sibling.isReady {
			s.isReady = false
			g.current = 1 - g.current
			continue
		}

		if !g.fetching {
			g.fetching = true
			g.cond.Broadcast()
		}
		g.cond.Wait()
	}
}

// NextIDString renders NextID as decimal text, or "0" on failure.
func (g *DualBuffer) NextIDString() string {
	id, err := g.NextID()
	if err != nil {
		return "0"
	}
	return uint64ToString(id)
}

// Close stops the background fetcher and closes the database connection.
func (g *DualBuffer) Close() error {
	g.bufferMtx.Lock()
	g.running = false
	g.cond.Broadcast()
	g.bufferMtx.Unlock()

	if g.fetcherWG != nil {
		g.fetcherWG.Wait()
	}

	g.dbMtx.Lock()
	defer g.dbMtx.Unlock()
	return g.db.Close()
}
