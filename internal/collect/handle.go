package collect

import (
	"sync/atomic"
	"time"

	"github.com/lumen-media/lumen-diagnostics/internal/anonymize"
	"github.com/lumen-media/lumen-diagnostics/internal/event"
)

// Handle is the producer-side capability for logging diagnostic
// events. It holds only the sending half of the collector's intake
// channel plus the shared sanitizer, so it is cheap to copy and safe
// to hand to any goroutine. Every log method is fire-and-forget: a
// full (or closing) channel loses the event silently and bumps the
// shared drop counter; producers never block and never see an
// error.
type Handle struct {
	tx        chan<- event.Payload
	sanitizer *anonymize.MessageSanitizer
	dropped   *atomic.Uint64
}

// LogAction records a user-initiated action. details is optional.
func (h Handle) LogAction(action event.ActionKind, details string) {
	h.send(event.UserAction{Action: action, Details: details})
}

// LogState records an application state transition.
func (h Handle) LogState(state event.StateKind) {
	h.send(event.AppState{State: state})
}

// LogOperation records a completed timed operation.
func (h Handle) LogOperation(op event.OpKind, duration time.Duration) {
	h.send(event.Operation{Op: op, Duration: duration})
}

// LogWarning records a warning. The message is sanitized here, at
// ingestion; it is stored clean and never re-checked.
func (h Handle) LogWarning(w event.WarningEvent) {
	w.Message = h.sanitizer.Sanitize(w.Message)
	h.send(w)
}

// LogError records an error, sanitizing its message like LogWarning.
func (h Handle) LogError(e event.ErrorEvent) {
	e.Message = h.sanitizer.Sanitize(e.Message)
	h.send(e)
}

func (h Handle) send(p event.Payload) {
	// A send on a closed channel panics even inside select. The
	// intake channel normally lives for the whole session, but a
	// producer racing teardown must lose its event, not crash the
	// host.
	defer func() {
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()

	select {
	case h.tx <- p:
	default:
		// Drop the newest event: bounds producer-observable latency
		// and keeps already-queued history intact.
		h.dropped.Add(1)
	}
}
