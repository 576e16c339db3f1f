package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumen-media/lumen-diagnostics/internal/clip"
	"github.com/lumen-media/lumen-diagnostics/internal/event"
)

// State is the exporter's position in its cycle:
// Idle -> Building -> {Success | Cancelled | Failed} -> Idle.
// The terminal state of the most recent export stays observable via
// LastResult after State returns to Idle.
type State string

const (
	StateIdle      State = "idle"
	StateBuilding  State = "building"
	StateSuccess   State = "success"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// FilePicker is the host collaborator that chooses an export
// destination. ok is false when the user dismissed the dialog;
// cancellation is a first-class outcome, not an error.
type FilePicker interface {
	PickSavePath() (path string, ok bool, err error)
}

// ClipboardWriter is the host collaborator that writes to the
// system clipboard.
type ClipboardWriter interface {
	Write(text string) error
}

// SystemClipboard adapts the clip package to ClipboardWriter.
type SystemClipboard struct{}

func (SystemClipboard) Write(text string) error {
	_, err := clip.Write(text)
	return err
}

// DefaultClipboardMax caps clipboard payloads at 1 MiB.
const DefaultClipboardMax = 1 << 20

// Config configures an Exporter.
type Config struct {
	// Builder assembles reports. Required.
	Builder *Builder
	// Clipboard defaults to SystemClipboard.
	Clipboard ClipboardWriter
	// ClipboardMax defaults to DefaultClipboardMax.
	ClipboardMax int
	// Logger is optional.
	Logger *slog.Logger
}

// Result records the terminal state of one export.
type Result struct {
	State State
	// Path is the destination of a successful file export.
	Path string
	// Bytes is the serialized payload size.
	Bytes int
}

// Exporter drives report exports. Both sinks serialize through the
// same payload path, so a file export and a clipboard export of the
// same buffer state are byte-identical. Exporter methods are called
// from the collector owner's goroutine only.
type Exporter struct {
	builder      *Builder
	clipboard    ClipboardWriter
	clipboardMax int
	logger       *slog.Logger

	state State
	last  Result
}

// NewExporter creates an exporter.
func NewExporter(cfg Config) *Exporter {
	if cfg.Clipboard == nil {
		cfg.Clipboard = SystemClipboard{}
	}
	if cfg.ClipboardMax <= 0 {
		cfg.ClipboardMax = DefaultClipboardMax
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{
		builder:      cfg.Builder,
		clipboard:    cfg.Clipboard,
		clipboardMax: cfg.ClipboardMax,
		logger:       cfg.Logger,
		state:        StateIdle,
	}
}

// State returns the current machine state.
func (e *Exporter) State() State { return e.state }

// LastResult returns the terminal result of the most recent export,
// or the zero Result when nothing was exported yet.
func (e *Exporter) LastResult() Result { return e.last }

// Payload serializes the report for the given buffer snapshot as
// pretty-printed JSON.
func (e *Exporter) Payload(events []event.Event, startedAt time.Time) ([]byte, error) {
	rep := e.builder.Build(events, startedAt)
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}
	return data, nil
}

// ExportToFile builds a report and writes it to the destination the
// picker yields. The write is all-or-nothing: a failure never
// leaves a partial file at the destination. A dismissed picker ends
// in StateCancelled with a nil error.
func (e *Exporter) ExportToFile(events []event.Event, startedAt time.Time, picker FilePicker) (Result, error) {
	e.state = StateBuilding

	payload, err := e.Payload(events, startedAt)
	if err != nil {
		return e.finish(Result{State: StateFailed}, err)
	}

	path, ok, err := picker.PickSavePath()
	if err != nil {
		return e.finish(Result{State: StateFailed, Bytes: len(payload)},
			fmt.Errorf("file picker: %w", err))
	}
	if !ok {
		e.logger.Debug("report export cancelled")
		return e.finish(Result{State: StateCancelled, Bytes: len(payload)}, nil)
	}

	if err := atomicWriteFile(path, payload, 0o600); err != nil {
		return e.finish(Result{State: StateFailed, Bytes: len(payload)},
			fmt.Errorf("write report: %w", err))
	}

	e.logger.Info("report exported", "path", path, "bytes", len(payload))
	return e.finish(Result{State: StateSuccess, Path: path, Bytes: len(payload)}, nil)
}

// ExportToClipboard builds a report and places it on the clipboard.
// Oversized payloads fail with ErrContentTooLarge, never a
// truncated write; backend failures surface as *ClipboardError.
func (e *Exporter) ExportToClipboard(events []event.Event, startedAt time.Time) (Result, error) {
	e.state = StateBuilding

	payload, err := e.Payload(events, startedAt)
	if err != nil {
		return e.finish(Result{State: StateFailed}, err)
	}

	if len(payload) > e.clipboardMax {
		return e.finish(Result{State: StateFailed, Bytes: len(payload)},
			fmt.Errorf("%w: %d bytes > %d", ErrContentTooLarge, len(payload), e.clipboardMax))
	}

	if err := e.clipboard.Write(string(payload)); err != nil {
		return e.finish(Result{State: StateFailed, Bytes: len(payload)},
			&ClipboardError{Err: err})
	}

	e.logger.Info("report copied to clipboard", "bytes", len(payload))
	return e.finish(Result{State: StateSuccess, Bytes: len(payload)}, nil)
}

func (e *Exporter) finish(r Result, err error) (Result, error) {
	e.last = r
	e.state = StateIdle
	return r, err
}
