// Package event defines the diagnostic event model: a timestamped
// record wrapping one of a closed set of payload variants. Payloads
// form a tagged union: each variant carries its own fields and
// reports its discriminant through Kind().
package event

import "time"

// Kind discriminates payload variants. The string values appear
// verbatim as the "type" field of exported reports.
type Kind string

const (
	KindResourceSnapshot Kind = "resource_snapshot"
	KindUserAction       Kind = "user_action"
	KindAppState         Kind = "app_state"
	KindOperation        Kind = "operation"
	KindWarning          Kind = "warning"
	KindError            Kind = "error"
)

// Payload is one variant of the diagnostic event union.
type Payload interface {
	Kind() Kind
}

// Event is a single buffered diagnostic record. Events are created
// only by the collector when draining its intake channel and are
// immutable afterwards.
type Event struct {
	Time    time.Time
	Payload Payload
}
