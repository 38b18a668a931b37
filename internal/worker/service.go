package worker

import (
	"context"
	"database/sql"
	"io"
	"net"
	"time"

	"github.com/a11ejandro/descstats/stats"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	dialTimeout    = 5 * time.Second
	popTimeout     = 5 * time.Second
	retryDelay     = 2 * time.Second
	reconnectDelay = 1 * time.Second
)

// Service turns benchmark test runs into test_results rows, either one run
// at a time or by consuming the Sidekiq queue.
type Service struct {
	db     *sql.DB
	cfg    Config
	logger *zap.Logger
	dialer net.Dialer
}

// NewService returns a Service reading samples from db and jobs from cfg.Queue.
func NewService(db *sql.DB, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		cfg:    cfg,
		logger: logger,
		dialer: net.Dialer{Timeout: dialTimeout},
	}
}

// ProcessTestRun summarises the samples belonging to a test run and stores
// the result.
func (s *Service) ProcessTestRun(ctx context.Context, testRunID int64) error {
	exists, err := existsTestRun(ctx, s.db, testRunID)
	if err != nil {
		return errors.Wrapf(err, "lookup test_runs id %d", testRunID)
	}
	if !exists {
		return errors.Newf("test_runs id %d not found", testRunID)
	}
	page, perPage, err := fetchTaskWindow(ctx, s.db, testRunID)
	if err != nil {
		return errors.Wrap(err, "fetch task window failed")
	}
	values, err := fetchSamples(ctx, s.db, page, perPage)
	if err != nil {
		return errors.Wrap(err, "fetch samples failed")
	}

	var summary stats.Summary[float64]
	var elapsed float64
	peak, err := measurePeakResidentMemory(func() error {
		start := time.Now()
		var err error
		summary, err = stats.Describe(values)
		elapsed = time.Since(start).Seconds()
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "summarise test_run %d (page=%d per_page=%d)", testRunID, page, perPage)
	}

	if err := insertTestResult(ctx, s.db, testRunID, summary, elapsed, peak); err != nil {
		return errors.Wrap(err, "insert test_result failed")
	}
	s.logger.Info("processed test run",
		zap.Int64("test_run_id", testRunID),
		zap.Int("samples", summary.Count),
		zap.Float64("duration_seconds", elapsed),
		zap.Float64("memory_bytes", peak),
	)
	return nil
}

// Run consumes the configured queue until ctx is cancelled, reconnecting to
// Redis whenever the connection drops.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("listening for jobs", zap.String("queue", s.cfg.Queue), zap.String("redis", s.cfg.RedisAddr))
	for {
		delay, err := s.serve(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			s.logger.Warn("redis connection lost", zap.Error(err), zap.Duration("retry_in", delay))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

// serve handles one Redis connection and returns how long to wait before
// reconnecting.
func (s *Service) serve(ctx context.Context) (time.Duration, error) {
	conn, err := s.dialer.DialContext(ctx, "tcp", s.cfg.RedisAddr)
	if err != nil {
		return retryDelay, errors.Wrap(err, "redis connect failed")
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	q := newQueueConn(conn)
	if s.cfg.RedisPassword != "" {
		if err := q.auth(s.cfg.RedisPassword); err != nil {
			return retryDelay, errors.Wrap(err, "redis auth failed")
		}
	}
	if s.cfg.RedisDB != 0 {
		if err := q.selectDB(s.cfg.RedisDB); err != nil {
			return retryDelay, errors.Wrap(err, "redis select failed")
		}
	}

	for ctx.Err() == nil {
		key, payload, err := q.brpop(s.cfg.Queue, popTimeout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return reconnectDelay, nil
			}
			return reconnectDelay, errors.Wrap(err, "redis read error")
		}
		if key == "" && payload == "" {
			continue
		}
		s.handleJob(ctx, payload)
	}
	return 0, nil
}

func (s *Service) handleJob(ctx context.Context, payload string) {
	id, err := decodeJob(payload)
	if err != nil {
		if errors.Is(err, errForeignJob) {
			s.logger.Debug("skipping job", zap.Error(err))
		} else {
			s.logger.Warn("invalid job", zap.Error(err), zap.String("payload", payload))
		}
		return
	}
	if err := s.ProcessTestRun(ctx, id); err != nil {
		s.logger.Error("process error", zap.Int64("test_run_id", id), zap.Error(err))
	}
}
