package event

import "time"

// ReportEvent is the wire form of one event inside an exported
// report: a flattened union with an explicit "type" discriminant.
// Fields belonging to other variants are omitted entirely; absent
// optionals never serialize as null. Numeric resource fields use
// pointers so legitimate zero samples survive omitempty.
type ReportEvent struct {
	TimestampMS uint64 `json:"timestamp_ms"`
	Type        string `json:"type"`

	// resource_snapshot
	CPUPercent     *float64 `json:"cpu_percent,omitempty"`
	RAMUsedMB      *float64 `json:"ram_used_mb,omitempty"`
	RAMTotalMB     *float64 `json:"ram_total_mb,omitempty"`
	DiskReadBytes  *uint64  `json:"disk_read_bytes,omitempty"`
	DiskWriteBytes *uint64  `json:"disk_write_bytes,omitempty"`

	// user_action
	Action  string `json:"action,omitempty"`
	Details string `json:"details,omitempty"`

	// app_state
	State string `json:"state,omitempty"`

	// operation
	Operation  string  `json:"operation,omitempty"`
	DurationMS *uint64 `json:"duration_ms,omitempty"`

	// warning / error
	WarningType string `json:"warning_type,omitempty"`
	ErrorType   string `json:"error_type,omitempty"`
	Message     string `json:"message,omitempty"`
	Source      string `json:"source,omitempty"`
	Code        string `json:"code,omitempty"`
}

// Transforms rewrites identifying fields during flattening. A nil
// func leaves the field untouched.
type Transforms struct {
	// Text is applied to free-text fields (messages, action details).
	Text func(string) string
}

func (t Transforms) text(s string) string {
	if t.Text == nil || s == "" {
		return s
	}
	return t.Text(s)
}

// Flatten converts a buffered event into its wire form. sinceStart
// is the event's offset from the fixed collection-start instant;
// negative offsets clamp to zero rather than wrapping.
func Flatten(e Event, sinceStart time.Duration, tr Transforms) ReportEvent {
	out := ReportEvent{Type: string(e.Payload.Kind())}
	if sinceStart > 0 {
		out.TimestampMS = uint64(sinceStart.Milliseconds())
	}

	switch p := e.Payload.(type) {
	case ResourceMetrics:
		out.CPUPercent = ptr(p.CPUPercent)
		out.RAMUsedMB = ptr(p.RAMUsedMB)
		out.RAMTotalMB = ptr(p.RAMTotalMB)
		out.DiskReadBytes = ptr(p.DiskReadBytes)
		out.DiskWriteBytes = ptr(p.DiskWriteBytes)
	case UserAction:
		out.Action = string(p.Action)
		out.Details = tr.text(p.Details)
	case AppState:
		out.State = string(p.State)
	case Operation:
		out.Operation = string(p.Op)
		ms := uint64(0)
		if p.Duration > 0 {
			ms = uint64(p.Duration.Milliseconds())
		}
		out.DurationMS = &ms
	case WarningEvent:
		out.WarningType = string(p.Type)
		out.Message = tr.text(p.Message)
		out.Source = p.Source
		out.Code = p.Code
	case ErrorEvent:
		out.ErrorType = string(p.Type)
		out.Message = tr.text(p.Message)
		out.Source = p.Source
		out.Code = p.Code
	}
	return out
}

func ptr[T any](v T) *T { return &v }
