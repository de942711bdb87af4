package idgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

// spannerSession is the shared REST-surface plumbing behind §4.9 and §4.10:
// stdlib net/http against a Spanner-compatible gateway, not a Cloud Spanner
// client library, matching the original's own raw-HTTP approach.
type spannerSession struct {
	httpClient *http.Client
	baseURL    string // e.g. http://host:port/v1/projects/p/instances/i/databases/d
	breaker    *gobreaker.CircuitBreaker
}

func newSpannerSession(baseURL string) *spannerSession {
	return &spannerSession{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		breaker:    gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "spanner"}),
	}
}

type spannerSessionResponse struct {
	Name string `json:"name"`
}

func (s *spannerSession) openSession(ctx context.Context) (string, error) {
	var sessionName string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sessions", bytes.NewReader([]byte("{}")))
		if err != nil {
			return err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var out spannerSessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return err
		}
		sessionName = out.Name
		return nil
	}

	b := backoff.NewExponentialBackOff()
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, backoff.Retry(op, backoff.WithContext(b, ctx))
	})
	if err != nil {
		return "", idserrors.ErrCoordinatorUnavailable
	}
	if sessionName == "" {
		return "", idserrors.ErrMalformedResponse
	}
	return sessionName, nil
}

type spannerBeginTxnResponse struct {
	ID string `json:"id"`
}

func (s *spannerSession) beginTransaction(ctx context.Context, sessionName string) (string, error) {
	var txnID string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sessions/"+sessionName+":beginTransaction",
			bytes.NewReader([]byte(`{"options":{"readWrite":{}}}`)))
		if err != nil {
			return err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var out spannerBeginTxnResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return err
		}
		txnID = out.ID
		return nil
	}

	b := backoff.NewExponentialBackOff()
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, backoff.Retry(op, backoff.WithContext(b, ctx))
	})
	if err != nil {
		return "", idserrors.ErrCoordinatorUnavailable
	}
	if txnID == "" {
		return "", idserrors.ErrMalformedResponse
	}
	return txnID, nil
}

func (s *spannerSession) commit(ctx context.Context, sessionName, txnID string) (string, error) {
	var commitTimestamp string
	op := func() error {
		body, _ := json.Marshal(map[string]interface{}{
			"transactionId": txnID,
			"mutations":     []interface{}{},
		})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sessions/"+sessionName+":commit", bytes.NewReader(body))
		if err != nil {
			return err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var out struct {
			CommitTimestamp string `json:"commitTimestamp"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return err
		}
		commitTimestamp = out.CommitTimestamp
		return nil
	}

	b := backoff.NewExponentialBackOff()
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, backoff.Retry(op, backoff.WithContext(b, ctx))
	})
	if err != nil {
		return "", idserrors.ErrCoordinatorUnavailable
	}
	if commitTimestamp == "" {
		return "", idserrors.ErrMalformedResponse
	}
	return commitTimestamp, nil
}

func (s *spannerSession) executeSequenceQuery(ctx context.Context, sessionName, txnID string) (uint64, error) {
	var value uint64
	op := func() error {
		body, _ := json.Marshal(map[string]interface{}{
			"transaction": map[string]interface{}{"id": txnID},
			"sql":         "SELECT GET_NEXT_SEQUENCE_VALUE(SEQUENCE uuid_sequence)",
		})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sessions/"+sessionName+":executeSql", bytes.NewReader(body))
		if err != nil {
			return err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var out struct {
			Rows [][]string `json:"rows"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return err
		}
		if len(out.Rows) == 0 || len(out.Rows[0]) == 0 {
			return fmt.Errorf("idgen: spanner response had no rows")
		}
		var v uint64
		if _, scanErr := fmt.Sscanf(out.Rows[0][0], "%d", &v); scanErr != nil {
			return scanErr
		}
		value = v
		return nil
	}

	b := backoff.NewExponentialBackOff()
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, backoff.Retry(op, backoff.WithContext(b, ctx))
	})
	if err != nil {
		return 0, idserrors.ErrCoordinatorUnavailable
	}
	return value, nil
}

// Spanner draws a monotonic sequence value per call from a
// Spanner-compatible endpoint's GET_NEXT_SEQUENCE_VALUE, inside its own
// read-write transaction (§4.9).
type Spanner struct {
	mu      sync.Mutex
	session *spannerSession
}

// NewSpanner constructs a Spanner sequence generator against baseURL
// (e.g. http://host:port/v1/projects/p/instances/i/databases/d).
func NewSpanner(baseURL string) *Spanner {
	return &Spanner{session: newSpannerSession(baseURL)}
}

// NextID opens a session, begins a transaction, draws the next sequence
// value, commits, and returns the value as a 64-bit integer. Wrapped in a
// trace span and latency observation since every call round-trips to the
// Spanner-compatible coordinator (§1.2/§1.3); the span's context is passed
// down into the session calls so the HTTP round trips are children of it.
func (g *Spanner) NextID() (uint64, error) {
	return instrumentedNextID("spanner", func(ctx context.Context) (uint64, error) {
		return g.nextID(ctx)
	})
}

func (g *Spanner) nextID(ctx context.Context) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sessionName, err := g.session.openSession(ctx)
	if err != nil {
		return 0, err
	}

	txnID, err := g.session.beginTransaction(ctx, sessionName)
	if err != nil {
		return 0, err
	}

	value, err := g.session.executeSequenceQuery(ctx, sessionName, txnID)
	if err != nil {
		return 0, err
	}

	if _, err := g.session.commit(ctx, sessionName, txnID); err != nil {
		return 0, err
	}

	return value, nil
}

// NextIDString renders NextID as decimal text, or "0" on failure.
func (g *Spanner) NextIDString() string {
	id, err := g.NextID()
	if err != nil {
		return "0"
	}
	return uint64ToString(id)
}
