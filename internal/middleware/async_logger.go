package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/guttosm/lru-webserver/internal/logger"
	"github.com/guttosm/lru-webserver/internal/metrics"
	"github.com/guttosm/lru-webserver/internal/service"
)

// LogSink accepts access-log entries without blocking the request.
type LogSink interface {
	// Log enqueues entry and reports whether it was accepted.
	Log(entry *model.LogEntry) bool
}

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the capacity of the entry queue; entries beyond it are dropped.
	BufferSize int
	// NumWorkers is the number of goroutines writing batches.
	NumWorkers int
	// BatchSize is the most entries written in one CreateLogs call.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration
	// WriteTimeout is the timeout for one batch write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns sensible defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    2,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLogger writes access-log entries in batches from a bounded queue
// served by a fixed worker pool.
type AsyncLogger struct {
	loggingService service.LoggingService
	cfg            AsyncLoggerConfig
	entryCh        chan *model.LogEntry
	stopCh         chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup

	// mu orders enqueues before Stop: Log holds it shared while sending,
	// Stop takes it exclusively to mark the logger stopped.
	mu      sync.RWMutex
	stopped bool

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil for a nil service so
// callers can pass the result straight to RequestLogger.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	defaults := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = defaults.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaults.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		cfg:            cfg,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}
	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		al.write(batch)
		batch = make([]*model.LogEntry, 0, al.cfg.BatchSize)
	}

	for {
		select {
		case entry := <-al.entryCh:
			batch = append(batch, entry)
			if len(batch) >= al.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-al.stopCh:
			for {
				select {
				case entry := <-al.entryCh:
					batch = append(batch, entry)
					if len(batch) >= al.cfg.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) write(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	n := int64(len(batch))
	if err := al.loggingService.CreateLogs(ctx, batch); err != nil {
		al.failed.Add(n)
		for range batch {
			metrics.RecordAccessLog("failed")
		}
		log := logger.Component("access_log")
		log.Warn().Err(err).Int("entries", len(batch)).Msg("access log batch not written")
		return
	}
	al.written.Add(n)
	for range batch {
		metrics.RecordAccessLog("written")
	}
}

// Log enqueues entry, dropping it when the queue is full or the logger stopped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	al.mu.RLock()
	defer al.mu.RUnlock()

	if al.stopped {
		al.dropped.Add(1)
		metrics.RecordAccessLog("dropped")
		return false
	}

	select {
	case al.entryCh <- entry:
		al.enqueued.Add(1)
		metrics.RecordAccessLog("queued")
		return true
	default:
		al.dropped.Add(1)
		metrics.RecordAccessLog("dropped")
		return false
	}
}

// Stop drains the queue and waits for the workers. Safe to call twice.
func (al *AsyncLogger) Stop() {
	al.stopOnce.Do(func() {
		al.mu.Lock()
		al.stopped = true
		close(al.stopCh)
		al.mu.Unlock()
		al.wg.Wait()
	})
}

// AsyncLoggerStats is a snapshot of the logger counters.
type AsyncLoggerStats struct {
	Enqueued int64
	Dropped  int64
	Written  int64
	Failed   int64
}

// Stats returns current async logger statistics.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}
