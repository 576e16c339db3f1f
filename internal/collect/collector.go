// Package collect wires the producer/consumer half of the
// diagnostics pipeline: cloneable non-blocking Handles feed a
// bounded channel, and a single Collector owns the ring buffer and
// drains the channel on the host's schedule. The buffer is touched
// only by the collector's owner; no locking is needed or used.
package collect

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lumen-media/lumen-diagnostics/internal/anonymize"
	"github.com/lumen-media/lumen-diagnostics/internal/buffer"
	"github.com/lumen-media/lumen-diagnostics/internal/event"
	"github.com/lumen-media/lumen-diagnostics/internal/sampler"
)

// DefaultQueueSize is the intake channel capacity. It should
// comfortably exceed the largest expected burst between two
// ProcessPending calls; drained events are then only ever subject to
// ring-buffer overwrite, never channel loss.
const DefaultQueueSize = 256

// Config configures a Collector. Zero values pick defaults.
type Config struct {
	// Capacity is the ring buffer capacity.
	Capacity buffer.Capacity
	// QueueSize is the intake channel capacity.
	QueueSize int
	// Sampling is the resource sampler interval.
	Sampling sampler.Interval
	// Sanitizer cleans warning/error messages at ingestion. Required.
	Sanitizer *anonymize.MessageSanitizer
	// Logger receives operational logs. Optional.
	Logger *slog.Logger
}

// Collector is the single consumer-side owner of the event buffer.
// All methods must be called from the owner's goroutine; only the
// Handles it vends are safe to share.
type Collector struct {
	buf      *buffer.Ring[event.Event]
	intake   chan event.Payload
	sampling sampler.Interval

	sanitizer *anonymize.MessageSanitizer
	logger    *slog.Logger

	sampler   *sampler.Sampler
	startedAt time.Time
	dropped   atomic.Uint64
}

// New creates a collector and its buffer. The collection start
// instant is fixed here; exported report timestamps are relative to
// it.
func New(cfg Config) *Collector {
	if cfg.Capacity == 0 {
		cfg.Capacity = buffer.NewCapacity(0)
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Sampling == 0 {
		cfg.Sampling = sampler.NewInterval(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Collector{
		buf:       buffer.New[event.Event](cfg.Capacity),
		intake:    make(chan event.Payload, cfg.QueueSize),
		sampling:  cfg.Sampling,
		sanitizer: cfg.Sanitizer,
		logger:    cfg.Logger,
		startedAt: time.Now(),
	}
}

// Handle returns a producer handle. Handles are values; callers may
// copy them freely.
func (c *Collector) Handle() Handle {
	return Handle{
		tx:        c.intake,
		sanitizer: c.sanitizer,
		dropped:   &c.dropped,
	}
}

// ProcessPending moves every currently queued payload into the
// buffer, stamping each with the drain time. It never blocks; the
// host calls it on its own cadence. Returns the number of events
// drained.
func (c *Collector) ProcessPending() int {
	n := 0
	for {
		select {
		case p := <-c.intake:
			c.buf.Push(event.Event{Time: time.Now(), Payload: p})
			n++
		default:
			return n
		}
	}
}

// Snapshot returns a copy of the buffered events, oldest first,
// without mutating the buffer.
func (c *Collector) Snapshot() []event.Event {
	return c.buf.Snapshot()
}

// EventCount returns the number of buffered events.
func (c *Collector) EventCount() int { return c.buf.Len() }

// Dropped returns the total number of events lost at the intake
// channel since construction.
func (c *Collector) Dropped() uint64 { return c.dropped.Load() }

// StartedAt returns the fixed collection start instant.
func (c *Collector) StartedAt() time.Time { return c.startedAt }

// Clear empties the buffer. Queued but undrained events survive.
func (c *Collector) Clear() { c.buf.Clear() }

// EnableResourceCollection starts the background resource sampler.
// Repeated calls while running are no-ops. The sampler feeds the
// same intake channel as every other producer.
func (c *Collector) EnableResourceCollection() {
	if c.sampler != nil && c.sampler.Running() {
		return
	}
	c.sampler = sampler.New(c.sampling, c.intake, c.logger)
	c.sampler.Start()
	c.logger.Debug("resource collection enabled", "interval", c.sampling.Duration())
}

// DisableResourceCollection stops the sampler, waiting for its
// goroutine to exit. Already-buffered events are untouched; only
// future sampling stops. Idempotent.
func (c *Collector) DisableResourceCollection() {
	if c.sampler == nil {
		return
	}
	c.sampler.Stop()
	c.sampler = nil
	c.logger.Debug("resource collection disabled")
}

// Close releases background resources. The intake channel is left
// open so racing producers stay safe; it is garbage once the
// collector is unreachable.
func (c *Collector) Close() {
	c.DisableResourceCollection()
}
