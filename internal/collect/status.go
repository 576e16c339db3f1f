package collect

import "time"

// StatusKind enumerates resource-collection states.
type StatusKind string

const (
	StatusDisabled StatusKind = "disabled"
	StatusEnabled  StatusKind = "enabled"
	StatusError    StatusKind = "error"
)

// Status is the derived resource-collection state. It is computed
// from the sampler's run-state on each call, never stored.
type Status struct {
	Kind StatusKind
	// Since is the collection start instant; set when Kind is
	// StatusEnabled.
	Since time.Time
	// Message describes the failure; set when Kind is StatusError.
	Message string
}

// Status reports the current resource-collection state.
func (c *Collector) Status() Status {
	switch {
	case c.sampler == nil:
		return Status{Kind: StatusDisabled}
	case c.sampler.Running():
		return Status{Kind: StatusEnabled, Since: c.startedAt}
	default:
		return Status{Kind: StatusError, Message: "resource sampler stopped unexpectedly"}
	}
}
