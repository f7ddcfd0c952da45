// Package gateway schedules persistence for the record store: a
// debounced save after each mutation, a periodic backstop save, and a
// poll for foreign writes to the same storage.
package gateway

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"finbook/internal/store"
)

const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultSaveInterval  = 10 * time.Second
	DefaultWatchInterval = 2 * time.Second
)

// Snapshotter produces the current encoded snapshot. It is expected to
// stamp the snapshot's updated-at metadata as a side effect of being
// asked to save.
type Snapshotter interface {
	EncodeForSave() ([]byte, error)
}

// Reloader replaces the in-memory state wholesale from a stored blob.
// Called when another process wrote the storage; the newest stored
// snapshot always wins and uncommitted local state is discarded.
type Reloader interface {
	ReplaceFromSnapshot(data []byte)
}

// Gateway coalesces rapid mutations into one save after a quiet period,
// saves on a fixed interval as a safety net, and reloads on foreign
// change. Both save paths call the same idempotent store.Save.
type Gateway struct {
	store    store.SnapshotStore
	book     Snapshotter
	reloader Reloader
	logger   *slog.Logger

	debounce      time.Duration
	saveInterval  time.Duration
	watchInterval time.Duration

	dirty chan struct{}

	mu        sync.Mutex
	lastSaved time.Time
}

type Options struct {
	Debounce      time.Duration
	SaveInterval  time.Duration
	WatchInterval time.Duration
}

func New(st store.SnapshotStore, book Snapshotter, reloader Reloader, logger *slog.Logger, opts Options) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.SaveInterval <= 0 {
		opts.SaveInterval = DefaultSaveInterval
	}
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = DefaultWatchInterval
	}
	return &Gateway{
		store:         st,
		book:          book,
		reloader:      reloader,
		logger:        logger.With("component", "gateway"),
		debounce:      opts.Debounce,
		saveInterval:  opts.SaveInterval,
		watchInterval: opts.WatchInterval,
		dirty:         make(chan struct{}, 1),
	}
}

// MarkDirty requests a save after the quiet period. Calls while a save
// is already pending coalesce; the debounce window restarts each time.
func (g *Gateway) MarkDirty() {
	select {
	case g.dirty <- struct{}{}:
	default:
	}
}

// Flush saves immediately, bypassing the debounce. Used after imports
// and on shutdown.
func (g *Gateway) Flush(ctx context.Context) error {
	return g.save(ctx)
}

// Run drives the gateway until ctx is cancelled, then performs a final
// flush so at most one debounce window of mutations can ever be lost.
func (g *Gateway) Run(ctx context.Context) error {
	backstop := time.NewTicker(g.saveInterval)
	defer backstop.Stop()
	watch := time.NewTicker(g.watchInterval)
	defer watch.Stop()

	// The debounce timer starts disarmed; only MarkDirty arms it.
	timer := time.NewTimer(g.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	armed := false

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := g.save(flushCtx); err != nil {
				g.logger.Error("Final save failed", "error", err)
			}
			return nil

		case <-g.dirty:
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(g.debounce)
			armed = true

		case <-timer.C:
			armed = false
			if err := g.save(ctx); err != nil {
				g.logger.Error("Debounced save failed", "error", err)
			}

		case <-backstop.C:
			if err := g.save(ctx); err != nil {
				g.logger.Error("Backstop save failed", "error", err)
			}

		case <-watch.C:
			g.checkForeignChange(ctx)
		}
	}
}

func (g *Gateway) save(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	data, err := g.book.EncodeForSave()
	if err != nil {
		return err
	}
	if err := g.store.Save(ctx, data); err != nil {
		return err
	}
	if stamp, err := g.store.LastModified(ctx); err == nil {
		g.lastSaved = stamp
	}
	g.logger.Debug("Snapshot saved", "bytes", len(data))
	return nil
}

// checkForeignChange compares the store's last-modified stamp to the one
// recorded at our own last save. A newer stamp means another process
// wrote the storage: reload unconditionally, last writer wins.
func (g *Gateway) checkForeignChange(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stamp, err := g.store.LastModified(ctx)
	if err != nil {
		g.logger.Warn("Storage watch failed", "error", err)
		return
	}
	if stamp.IsZero() || !stamp.After(g.lastSaved) {
		return
	}
	data, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Warn("Reload after foreign change failed", "error", err)
		return
	}
	g.lastSaved = stamp
	g.reloader.ReplaceFromSnapshot(data)
	g.logger.Info("Reloaded snapshot after external change", "modified", stamp)
}
