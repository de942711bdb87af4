package idgen

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"
	"github.com/sony/gobreaker"

	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

const (
	dbAutoIncCreateTable = `CREATE TABLE IF NOT EXISTS tickets (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		stub CHAR(1) NOT NULL,
		UNIQUE KEY uniq_stub (stub)
	)`
	dbAutoIncReplace = `REPLACE INTO tickets(stub) VALUES ('a')`
)

// DBAutoInc emits monotonic identifiers by exploiting a single-row table's
// auto-increment counter (§4.6). Multi-master safety is delegated to the
// proxy in front of the DSN; this generator does not try to detect or
// resolve write conflicts itself.
type DBAutoInc struct {
	mu      sync.Mutex
	dsn     string
	db      *sql.DB
	breaker *gobreaker.CircuitBreaker
}

// NewDBAutoInc opens the DSN, ensures the tickets table exists, and returns
// a ready generator.
func NewDBAutoInc(dsn string) (*DBAutoInc, error) {
	g := &DBAutoInc{
		dsn: dsn,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "db-auto-inc",
		}),
	}

	db, err := g.connect()
	if err != nil {
		return nil, err
	}
	g.db = db

	if _, err := g.db.Exec(dbAutoIncCreateTable); err != nil {
		g.db.Close()
		return nil, idserrors.ErrCoordinatorUnavailable
	}

	return g, nil
}

func (g *DBAutoInc) connect() (*sql.DB, error) {
	db, err := sql.Open("mysql", g.dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // single logical writer, matching original semantics
	return db, nil
}

// NextID executes one REPLACE INTO and returns the resulting
// auto-increment value, retrying once with a fresh connection on failure.
// The round trip is wrapped in a trace span and a latency observation,
// since it always reaches out to the coordinating database (§1.2/§1.3); the
// span's context is carried into ExecContext and the retry backoff so the
// query is a child of the span.
func (g *DBAutoInc) NextID() (uint64, error) {
	return instrumentedNextID("db_auto_inc", func(ctx context.Context) (uint64, error) {
		return g.nextID(ctx)
	})
}

func (g *DBAutoInc) nextID(ctx context.Context) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.executeWithBreaker(ctx)
	if err == nil {
		return id, nil
	}

	// One-shot reconnect-retry, distinct from the breaker/backoff guarding
	// whether the attempt is made at all (§4.6).
	g.db.Close()
	newDB, reconnErr := g.connect()
	if reconnErr != nil {
		return 0, idserrors.ErrCoordinatorUnavailable
	}
	g.db = newDB

	id, err = g.executeWithBreaker(ctx)
	if err != nil {
		return 0, idserrors.ErrCoordinatorUnavailable
	}
	return id, nil
}

func (g *DBAutoInc) executeWithBreaker(ctx context.Context) (uint64, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		var lastID int64
		op := func() error {
			res, err := g.db.ExecContext(ctx, dbAutoIncReplace)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			lastID = id
			return nil
		}

		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = 2 * time.Second
		if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
			return nil, err
		}
		return lastID, nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(result.(int64)), nil
}

// NextIDString renders NextID as decimal text, or "0" on failure.
func (g *DBAutoInc) NextIDString() string {
	id, err := g.NextID()
	if err != nil {
		return "0"
	}
	return uint64ToString(id)
}

// Close releases the underlying database connection.
func (g *DBAutoInc) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}
