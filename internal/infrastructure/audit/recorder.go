package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dairyops/backend/internal/domain/audit"
)

const writeTimeout = 5 * time.Second

// RecorderConfig holds configuration for the async audit recorder
type RecorderConfig struct {
	BufferSize int
}

// DefaultRecorderConfig returns default configuration
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		BufferSize: 256,
	}
}

// Recorder implements the audit Sink with a buffered channel and a background
// writer, so recording never blocks or fails the business operation. When the
// buffer is full or a write fails, the entry is dropped and logged.
type Recorder struct {
	repo   audit.Repository
	logger *zap.Logger

	entries chan *audit.Log
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
}

// NewRecorder creates a Recorder and starts its background writer
func NewRecorder(repo audit.Repository, config RecorderConfig, logger *zap.Logger) *Recorder {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultRecorderConfig().BufferSize
	}
	r := &Recorder{
		repo:    repo,
		logger:  logger,
		entries: make(chan *audit.Log, config.BufferSize),
		done:    make(chan struct{}),
	}
	r.wg.Add(1)
	go r.writeLoop()
	return r
}

// Record enqueues an entry for background persistence. Drops the entry when
// the buffer is full.
func (r *Recorder) Record(entry *audit.Log) {
	if entry == nil {
		return
	}
	select {
	case r.entries <- entry:
	default:
		r.logger.Warn("audit buffer full, dropping entry",
			zap.String("action", entry.Action),
			zap.String("entity", entry.Entity),
		)
	}
}

// Close stops the background writer after draining buffered entries
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
}

func (r *Recorder) writeLoop() {
	defer r.wg.Done()

	for {
		select {
		case entry := <-r.entries:
			r.persist(entry)
		case <-r.done:
			// drain whatever is still buffered before shutting down
			for {
				select {
				case entry := <-r.entries:
					r.persist(entry)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) persist(entry *audit.Log) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Warn("failed to persist audit entry",
			zap.String("action", entry.Action),
			zap.String("entity", entry.Entity),
			zap.Error(err),
		)
	}
}

var _ audit.Sink = (*Recorder)(nil)
