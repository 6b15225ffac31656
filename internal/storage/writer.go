package storage

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Source renders the document to persist
type Source func() ([]byte, error)

// Writer persists the document asynchronously, at most once per interval.
// The first scheduled write always runs; an interval of zero writes on
// every Schedule call.
type Writer struct {
	store    Storage
	source   Source
	interval time.Duration
	onError  func(error)
	logger   *logrus.Logger
	now      func() time.Time

	mu       sync.Mutex
	last     time.Time
	written  bool
	inFlight bool
	pending  bool
	wg       sync.WaitGroup
}

// NewWriter creates a throttled writer. onError receives every failed write.
func NewWriter(store Storage, source Source, interval time.Duration, logger *logrus.Logger, onError func(error)) *Writer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if onError == nil {
		onError = func(err error) {
			logger.WithError(err).Error("Failed to persist specification")
		}
	}
	return &Writer{
		store:    store,
		source:   source,
		interval: interval,
		onError:  onError,
		logger:   logger,
		now:      time.Now,
	}
}

// Schedule starts a background write unless one ran within the interval.
// A call arriving while a write is running is queued, and the running
// goroutine writes once more before it exits. It reports whether a write
// was started or queued.
func (w *Writer) Schedule() bool {
	w.mu.Lock()
	now := w.now()
	if w.written && now.Sub(w.last) < w.interval {
		w.mu.Unlock()
		return false
	}
	if w.inFlight {
		w.pending = true
		w.mu.Unlock()
		return true
	}
	w.inFlight = true
	w.written = true
	w.last = now
	w.wg.Add(1)
	w.mu.Unlock()

	go w.run()
	return true
}

// run writes until no queued request is left
func (w *Writer) run() {
	defer w.wg.Done()
	for {
		if err := w.write(); err != nil {
			w.onError(err)
		}

		w.mu.Lock()
		if !w.pending {
			w.inFlight = false
			w.mu.Unlock()
			return
		}
		w.pending = false
		w.last = w.now()
		w.mu.Unlock()
	}
}

// Flush writes the document synchronously
func (w *Writer) Flush() error {
	w.mu.Lock()
	w.written = true
	w.last = w.now()
	w.mu.Unlock()

	return w.write()
}

// Wait blocks until background writes have finished
func (w *Writer) Wait() {
	w.wg.Wait()
}

// Close waits for background writes, writes the final document and closes
// the storage.
func (w *Writer) Close() error {
	w.Wait()
	if err := w.write(); err != nil {
		w.store.Close()
		return err
	}
	return w.store.Close()
}

func (w *Writer) write() error {
	data, err := w.source()
	if err != nil {
		return err
	}
	if err := w.store.SaveSpec(data); err != nil {
		return err
	}
	w.logger.WithField("bytes", len(data)).Debug("Specification persisted")
	return nil
}
