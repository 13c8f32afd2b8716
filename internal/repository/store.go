package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// StoreOptions bounds every round-trip to the database.
type StoreOptions struct {
	QueryTimeout  time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

// Store executes read queries with a per-query deadline, retries transient
// connection failures, and maps driver errors onto the application taxonomy.
type Store struct {
	db      *sqlx.DB
	opts    StoreOptions
	metrics queryObserver
	logger  *zap.Logger
}

// NewStore constructs a Store. metrics may be nil.
func NewStore(db *sqlx.DB, opts StoreOptions, metrics queryObserver, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 5 * time.Second
	}
	if opts.RetryAttempts < 0 {
		opts.RetryAttempts = 0
	}
	return &Store{db: db, opts: opts, metrics: metrics, logger: logger}
}

// Get scans a single row into dest.
func (s *Store) Get(ctx context.Context, label string, dest interface{}, query string, args ...interface{}) error {
	return s.run(ctx, label, func(ctx context.Context) error {
		return s.db.GetContext(ctx, dest, query, args...)
	})
}

// Select scans all rows into dest.
func (s *Store) Select(ctx context.Context, label string, dest interface{}, query string, args ...interface{}) error {
	return s.run(ctx, label, func(ctx context.Context) error {
		return s.db.SelectContext(ctx, dest, query, args...)
	})
}

// Exec runs a statement that returns no rows.
func (s *Store) Exec(ctx context.Context, label string, query string, args ...interface{}) error {
	return s.run(ctx, label, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

// Now returns the database clock, used as a liveness probe.
func (s *Store) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	err := s.Get(ctx, "health_now", &now, `SELECT NOW()`)
	return now, err
}

func (s *Store) run(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if s == nil || s.db == nil {
		return appErrors.Clone(appErrors.ErrDataUnavailable, "database is not configured")
	}

	var err error
	for attempt := 0; ; attempt++ {
		start := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
		err = fn(attemptCtx)
		deadline := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()
		if s.metrics != nil {
			s.metrics.ObserveDBQuery(label, time.Since(start))
		}

		if err == nil {
			return nil
		}
		if deadline || errors.Is(err, context.DeadlineExceeded) {
			return appErrors.WrapAs(appErrors.ErrTimeout, err, "")
		}
		if attempt >= s.opts.RetryAttempts || !isTransient(err) || ctx.Err() != nil {
			break
		}

		s.logger.Warn("retrying query after transient failure",
			zap.String("query", label),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return classify(ctx.Err())
		case <-time.After(s.opts.RetryBackoff * time.Duration(attempt+1)):
		}
	}

	// Drivers report a cancelled in-flight query with their own error (pq
	// uses 57014); keep the context error as the cause so callers can tell.
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) && !errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("%w: %v", ctxErr, err)
	}
	return classify(err)
}

func classify(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.WrapAs(appErrors.ErrNotFound, err, "")
	case errors.Is(err, context.DeadlineExceeded):
		return appErrors.WrapAs(appErrors.ErrTimeout, err, "")
	default:
		return appErrors.WrapAs(appErrors.ErrDataUnavailable, err, "")
	}
}

// isTransient reports connection-level failures worth another attempt.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Parallel runs fns concurrently and fails if any of them fails. The error
// returned is the first failure in argument order; cancellations caused by a
// failing sibling are skipped so the reported kind does not depend on timing.
func Parallel(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	errs := make([]error, len(fns))
	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			errs[i] = fn(gctx)
			return errs[i]
		})
	}
	if g.Wait() == nil {
		return nil
	}

	var canceled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			if canceled == nil {
				canceled = err
			}
			continue
		}
		return err
	}
	return canceled
}
