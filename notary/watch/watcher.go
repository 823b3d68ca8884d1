// Package watch re-anchors a document on a cron schedule whenever its
// fingerprint changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/trufnetwork/notary/notary"
	"github.com/trufnetwork/notary/notary/validation"
)

// DefaultJobTimeout bounds one check-and-anchor run
const DefaultJobTimeout = 5 * time.Minute

// Anchorer is the part of the notarizer the watcher needs
type Anchorer interface {
	Notarize(ctx context.Context, document []byte) notary.Result
}

// Outcome describes one scheduled run
type Outcome struct {
	Fingerprint notary.Fingerprint
	Skipped     bool // unchanged since the last successful anchor
	Result      notary.Result
}

// Watcher anchors the document at path when its content changes. A failed
// anchor leaves the previous fingerprint in place so the next run retries.
type Watcher struct {
	path       string
	anchorer   Anchorer
	logger     *zap.Logger
	cron       *gocron.Scheduler
	jobTimeout time.Duration

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	last     notary.Fingerprint
	anchored bool
}

type NewWatcherParams struct {
	Path       string
	Anchorer   Anchorer
	Logger     *zap.Logger
	JobTimeout time.Duration
}

func NewWatcher(params NewWatcherParams) *Watcher {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := params.JobTimeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	return &Watcher{
		path:       params.Path,
		anchorer:   params.Anchorer,
		logger:     logger.Named("watch"),
		cron:       gocron.NewScheduler(time.UTC),
		jobTimeout: timeout,
	}
}

// Start registers the check job with the cron expression and runs it in the background.
func (w *Watcher) Start(ctx context.Context, cronExpr string) error {
	schedule, err := validation.ParseCronSchedule(cronExpr)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	w.ctx, w.cancel = context.WithCancel(ctx)
	jobCtx := w.ctx

	w.cron.Clear()

	jobFunc := func() {
		defer func() {
			if r := recover(); r != nil {
				w.logger.Error("panic in watch job", zap.Any("panic", r), zap.String("stack", string(debug.Stack())))
			}
		}()

		runCtx, cancel := context.WithTimeout(jobCtx, w.jobTimeout)
		defer cancel()
		if _, err := w.RunOnce(runCtx); err != nil {
			w.logger.Warn("watch run failed", zap.String("path", w.path), zap.Error(err))
		}
	}

	j, err := w.cron.Cron(cronExpr).Do(jobFunc)
	if err != nil {
		return fmt.Errorf("register watch job: %w", err)
	}
	// Prevent overlapping runs.
	j.SingletonMode()

	w.cron.StartAsync()
	w.logger.Info("watch scheduler started",
		zap.String("path", w.path),
		zap.String("schedule", cronExpr),
		zap.Time("next_run", schedule.Next(time.Now().UTC())))
	return nil
}

// Stop halts the scheduler and cancels a run in progress
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cron.Stop()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.logger.Info("watch scheduler stopped", zap.String("path", w.path))
}

// RunOnce reads the document and anchors it unless it is unchanged since the
// last successful anchor. Only a read failure is returned as an error; an
// anchoring failure is reported in the Outcome.
func (w *Watcher) RunOnce(ctx context.Context) (Outcome, error) {
	document, err := os.ReadFile(w.path)
	if err != nil {
		return Outcome{}, fmt.Errorf("read watched document: %w", err)
	}
	fp := notary.DeriveFingerprint(document)

	w.mu.Lock()
	unchanged := w.anchored && w.last == fp
	w.mu.Unlock()
	if unchanged {
		w.logger.Debug("document unchanged, skipping", zap.Stringer("fingerprint", fp))
		return Outcome{Fingerprint: fp, Skipped: true}, nil
	}

	res := w.anchorer.Notarize(ctx, document)
	if !res.OK() {
		w.logger.Warn("anchoring changed document failed", zap.Stringer("fingerprint", fp), zap.String("result", res.String()))
		return Outcome{Fingerprint: fp, Result: res}, nil
	}

	w.mu.Lock()
	w.last = fp
	w.anchored = true
	w.mu.Unlock()

	w.logger.Info("anchored changed document",
		zap.Stringer("fingerprint", fp),
		zap.String("tx_hash", res.TxHash.Hex()),
		zap.String("explorer_url", res.ExplorerURL))
	return Outcome{Fingerprint: fp, Result: res}, nil
}

// LastAnchored returns the fingerprint of the last successful anchor
func (w *Watcher) LastAnchored() (notary.Fingerprint, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, w.anchored
}
