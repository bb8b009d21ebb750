package eventlog

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/galecloud/gale/pkg/backend"
	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
	"github.com/klauspost/compress/zstd"
)

// Writer appends events to one journal. It implements backend.Observer
// so that it can be attached directly to the backend.
type Writer struct {
	mu      sync.Mutex
	store   *Store
	file    utils.File
	zstd    *zstd.Encoder
	encoder *json.Encoder
	closed  bool
}

func newWriter(store *Store, file utils.File) (*Writer, error) {
	encoder, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Writer{
		store:   store,
		file:    file,
		zstd:    encoder,
		encoder: json.NewEncoder(encoder),
	}, nil
}

func (w *Writer) Path() string {
	return w.file.Name()
}

// Append writes one event to the journal. The event time is filled
// in if unset.
func (w *Writer) Append(event *Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	return w.encoder.Encode(event)
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	defer w.store.writerClosed(w)

	if err := w.zstd.Close(); err != nil {
		w.file.Close()
		return err
	}

	return w.file.Close()
}

func (w *Writer) append(event *Event) {
	if err := w.Append(event); err != nil {
		log.Debug("unable to append journal event:", err)
	}
}

func (w *Writer) ApplicationRegistered(appID string) {
	w.append(&Event{
		Type:          EventApplicationRegistered,
		ApplicationID: appID,
	})
}

func (w *Writer) ApplicationDead(reason string) {
	w.append(&Event{
		Type:   EventApplicationDead,
		Reason: reason,
	})
}

func (w *Writer) ExecutorAdded(event *backend.ExecutorEvent) {
	w.append(&Event{
		Type:       EventExecutorAdded,
		ExecutorID: event.FullID,
		WorkerID:   event.WorkerID,
		HostPort:   event.HostPort,
		Units:      event.Units,
		MemoryMB:   event.MemoryMB,
	})
}

func (w *Writer) ExecutorRemoved(id string, reason backend.LossReason) {
	w.append(&Event{
		Type:       EventExecutorRemoved,
		ExecutorID: id,
		Reason:     reason.String(),
	})
}
