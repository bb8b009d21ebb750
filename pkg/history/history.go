// Package history forwards application lifecycle events to an
// external history service.
package history

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/galecloud/gale/pkg/backend"
	"github.com/galecloud/gale/pkg/log"
	"github.com/labstack/echo/v4"
)

type Config interface {
	// The URI of the history web service.
	GetHistoryUri() string
}

// Telemetry record posted to the history service.
type event struct {
	Event       string
	Application string `json:",omitempty"`
	Executor    string `json:",omitempty"`
	Worker      string `json:",omitempty"`
	HostPort    string `json:",omitempty"`
	Units       int    `json:",omitempty"`
	MemoryMB    int    `json:",omitempty"`
	Reason      string `json:",omitempty"`
	Time        time.Time
}

type historyHook struct {
	config Config
	client *http.Client
	events chan *event
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewHistoryHook creates a telemetry hook posting events to the
// configured history service. Events are delivered by a background
// goroutine and dropped when the queue is full.
func NewHistoryHook(config Config) *historyHook {
	hook := &historyHook{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		events: make(chan *event, 1000),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	go hook.run()
	return hook
}

// Close flushes queued events and stops the poster goroutine.
func (h *historyHook) Close() {
	h.once.Do(func() { close(h.quit) })
	<-h.done
}

func (h *historyHook) run() {
	defer close(h.done)

	for {
		select {
		case event := <-h.events:
			h.post(event)

		case <-h.quit:
			for {
				select {
				case event := <-h.events:
					h.post(event)
				default:
					return
				}
			}
		}
	}
}

func (h *historyHook) post(event *event) {
	body, err := json.Marshal(event)
	if err != nil {
		log.Debug("history: unable to encode event:", err)
		return
	}

	uri := h.config.GetHistoryUri() + "/api/v1/events"

	response, err := h.client.Post(uri, echo.MIMEApplicationJSON, bytes.NewReader(body))
	if err != nil {
		log.Debug("history: unable to post event:", err)
		return
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		log.Debug("history: event rejected:", response.Status)
	}
}

func (h *historyHook) enqueue(event *event) {
	event.Time = time.Now().UTC()

	select {
	case h.events <- event:
	default:
		log.Debug("history: queue full, dropping event:", event.Event)
	}
}

func (h *historyHook) ApplicationRegistered(appID string) {
	h.enqueue(&event{
		Event:       "registered",
		Application: appID,
	})
}

func (h *historyHook) ApplicationDead(reason string) {
	h.enqueue(&event{
		Event:  "dead",
		Reason: reason,
	})
}

func (h *historyHook) ExecutorAdded(executor *backend.ExecutorEvent) {
	h.enqueue(&event{
		Event:    "granted",
		Executor: executor.FullID,
		Worker:   executor.WorkerID,
		HostPort: executor.HostPort,
		Units:    executor.Units,
		MemoryMB: executor.MemoryMB,
	})
}

func (h *historyHook) ExecutorRemoved(id string, reason backend.LossReason) {
	h.enqueue(&event{
		Event:    "lost",
		Executor: id,
		Reason:   reason.String(),
	})
}
