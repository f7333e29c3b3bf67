package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultQueueSize    = 256
	defaultAppendWindow = 5 * time.Second
)

// Recorder decouples the submission path from audit persistence.
//
// Contract: caller success is independent of log-write success. Enqueue never
// blocks; a full queue drops the entry with a logged warning. Append failures
// are logged and swallowed. Ordering of persisted entries is not guaranteed,
// only presence (best-effort).
type Recorder struct {
	svc *Service
	log *slog.Logger

	ch     chan Entry
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// NewRecorder starts the background worker. Call Close during shutdown to
// drain queued entries.
func NewRecorder(svc *Service, log *slog.Logger, queueSize int) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Recorder{
		svc:    svc,
		log:    log,
		ch:     make(chan Entry, queueSize),
		cancel: cancel,
	}
	r.wg.Add(1)
	go r.run(ctx)
	return r
}

// Enqueue hands an entry to the background worker without blocking.
func (r *Recorder) Enqueue(e Entry) {
	select {
	case r.ch <- e:
	default:
		r.log.Warn("audit queue full, entry dropped", "site_id", e.SiteID, "decision", e.Decision)
	}
}

func (r *Recorder) run(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case e := <-r.ch:
			r.append(e)
		case <-ctx.Done():
			// Drain whatever is already queued, then stop.
			for {
				select {
				case e := <-r.ch:
					r.append(e)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) append(e Entry) {
	// Detached from any request context: request cancellation must not abort
	// an in-flight append.
	ctx, cancel := context.WithTimeout(context.Background(), defaultAppendWindow)
	defer cancel()
	if err := r.svc.Record(ctx, e); err != nil {
		r.log.Warn("audit append failed", "site_id", e.SiteID, "decision", e.Decision, "err", err)
	}
}

// Close stops the worker and waits for the drain, bounded by ctx.
func (r *Recorder) Close(ctx context.Context) error {
	r.closeOnce.Do(r.cancel)

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.New("audit: recorder drain timed out")
	}
}
