package account

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Severity classifies a notification for the surfacing layer.
type Severity uint8

const (
	// SeveritySuccess is an exported constant or variable used by the account client.
	SeveritySuccess Severity = iota
	// SeverityError is an exported constant or variable used by the account client.
	SeverityError
)

// String describes the string operation and its observable behavior.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "success"
}

// MarshalJSON describes the marshaljson operation and its observable behavior.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Notification is the severity + message pair consumed by the surfacing
// layer, tagged with the workflow and submission attempt it came from.
type Notification struct {
	Timestamp time.Time `json:"timestamp"`
	Workflow  Workflow  `json:"workflow"`
	AttemptID string    `json:"attempt_id,omitempty"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}

// Notifier receives user-facing feedback. Implementations must tolerate
// concurrent calls; delivery happens on the dispatcher goroutine.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NoOpNotifier discards every notification.
type NoOpNotifier struct{}

// Notify describes the notify operation and its observable behavior.
func (NoOpNotifier) Notify(context.Context, Notification) {}

// ChannelNotifier buffers notifications on a channel for consumption by a
// UI loop or a test.
type ChannelNotifier struct {
	events chan Notification
}

// NewChannelNotifier describes the newchannelnotifier operation and its observable behavior.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{
		events: make(chan Notification, buffer),
	}
}

// Notify describes the notify operation and its observable behavior.
func (s *ChannelNotifier) Notify(ctx context.Context, n Notification) {
	select {
	case s.events <- n:
	case <-ctx.Done():
	}
}

// Events describes the events operation and its observable behavior.
func (s *ChannelNotifier) Events() <-chan Notification {
	return s.events
}

// JSONWriterNotifier writes one JSON object per notification to a writer.
type JSONWriterNotifier struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterNotifier describes the newjsonwriternotifier operation and its observable behavior.
func NewJSONWriterNotifier(w io.Writer) *JSONWriterNotifier {
	return &JSONWriterNotifier{
		writer: w,
	}
}

// Notify describes the notify operation and its observable behavior.
func (s *JSONWriterNotifier) Notify(ctx context.Context, n Notification) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// notifyDispatcher decouples workflow completion from the surfacing layer:
// notifications are queued on a buffered channel and delivered by a single
// goroutine, so a slow sink never blocks a form submission.
type notifyDispatcher struct {
	cfg       NotifyConfig
	sink      Notifier
	ch        chan Notification
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newNotifyDispatcher(cfg NotifyConfig, sink Notifier) *notifyDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpNotifier{}
	}

	d := &notifyDispatcher{
		cfg:  cfg,
		sink: sink,
		ch:   make(chan Notification, cfg.BufferSize),
		done: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *notifyDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.ch:
			d.sink.Notify(context.Background(), n)
		case <-d.done:
			for {
				select {
				case n := <-d.ch:
					d.sink.Notify(context.Background(), n)
				default:
					return
				}
			}
		}
	}
}

func (d *notifyDispatcher) Notify(ctx context.Context, n Notification) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- n:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- n:
	case <-ctx.Done():
	case <-d.done:
	}
}

func (d *notifyDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

func (d *notifyDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
