package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-media/lumen-diagnostics/internal/event"
)

type fakePicker struct {
	path string
	ok   bool
	err  error
}

func (p fakePicker) PickSavePath() (string, bool, error) { return p.path, p.ok, p.err }

type memClipboard struct {
	text   string
	err    error
	writes int
}

func (c *memClipboard) Write(text string) error {
	c.writes++
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func sampleEvents() []event.Event {
	return []event.Event{
		{Time: testStart.Add(time.Second), Payload: event.UserAction{Action: event.ActionFileOpen, Details: "/media/in.mp4"}},
		{Time: testStart.Add(2 * time.Second), Payload: event.WarningEvent{Type: event.WarnUnsupportedFormat, Message: "Format not supported"}},
	}
}

func newTestExporter(t *testing.T, cb ClipboardWriter, maxBytes int) *Exporter {
	t.Helper()
	return NewExporter(Config{
		Builder:      fixedBuilder(t),
		Clipboard:    cb,
		ClipboardMax: maxBytes,
	})
}

func TestExportToFile_Success(t *testing.T) {
	e := newTestExporter(t, &memClipboard{}, 0)
	dest := filepath.Join(t.TempDir(), "report.json")

	res, err := e.ExportToFile(sampleEvents(), testStart, fakePicker{path: dest, ok: true})

	require.NoError(t, err)
	assert.Equal(t, StateSuccess, res.State)
	assert.Equal(t, dest, res.Path)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, res.Bytes, len(data))
	assert.Contains(t, string(data), `"unsupported_format"`)
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, res, e.LastResult())
}

func TestExportToFile_Cancelled(t *testing.T) {
	e := newTestExporter(t, &memClipboard{}, 0)

	res, err := e.ExportToFile(sampleEvents(), testStart, fakePicker{ok: false})

	require.NoError(t, err, "cancellation is not an error")
	assert.Equal(t, StateCancelled, res.State)
	assert.Empty(t, res.Path)
	assert.Equal(t, StateIdle, e.State())
}

func TestExportToFile_PickerFailure(t *testing.T) {
	e := newTestExporter(t, &memClipboard{}, 0)
	pickErr := errors.New("dialog crashed")

	res, err := e.ExportToFile(sampleEvents(), testStart, fakePicker{err: pickErr})

	require.Error(t, err)
	assert.ErrorIs(t, err, pickErr)
	assert.Equal(t, StateFailed, res.State)
}

func TestExportToFile_NoPartialFileOnFailure(t *testing.T) {
	e := newTestExporter(t, &memClipboard{}, 0)
	// Destination directory does not exist, so the atomic write
	// fails before anything lands at the target path.
	dest := filepath.Join(t.TempDir(), "missing", "report.json")

	_, err := e.ExportToFile(sampleEvents(), testStart, fakePicker{path: dest, ok: true})

	require.Error(t, err)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no partial file may exist")
}

func TestExportToClipboard_Success(t *testing.T) {
	cb := &memClipboard{}
	e := newTestExporter(t, cb, 0)

	res, err := e.ExportToClipboard(sampleEvents(), testStart)

	require.NoError(t, err)
	assert.Equal(t, StateSuccess, res.State)
	assert.Equal(t, res.Bytes, len(cb.text))
	assert.Contains(t, cb.text, `"event_count": 2`)
}

func TestExport_FileAndClipboardBytesIdentical(t *testing.T) {
	cb := &memClipboard{}
	e := newTestExporter(t, cb, 0)
	events := sampleEvents()
	dest := filepath.Join(t.TempDir(), "report.json")

	_, err := e.ExportToFile(events, testStart, fakePicker{path: dest, ok: true})
	require.NoError(t, err)
	_, err = e.ExportToClipboard(events, testStart)
	require.NoError(t, err)

	fileData, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, string(fileData), cb.text)
}

func TestExportToClipboard_ContentTooLarge(t *testing.T) {
	cb := &memClipboard{}
	e := newTestExporter(t, cb, 64)

	res, err := e.ExportToClipboard(sampleEvents(), testStart)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentTooLarge)
	assert.Equal(t, StateFailed, res.State)
	assert.Zero(t, cb.writes, "oversized payload must never reach the clipboard")
}

func TestExportToClipboard_BackendFailure(t *testing.T) {
	backendErr := errors.New("wayland: no seat")
	e := newTestExporter(t, &memClipboard{err: backendErr}, 0)

	_, err := e.ExportToClipboard(sampleEvents(), testStart)

	require.Error(t, err)
	var clipErr *ClipboardError
	require.ErrorAs(t, err, &clipErr)
	assert.ErrorIs(t, err, backendErr)
	assert.NotErrorIs(t, err, ErrContentTooLarge)
}

func TestExport_EmptyBufferValidJSON(t *testing.T) {
	cb := &memClipboard{}
	e := newTestExporter(t, cb, 0)

	res, err := e.ExportToClipboard(nil, testStart)

	require.NoError(t, err)
	assert.Equal(t, StateSuccess, res.State)
	assert.Contains(t, cb.text, `"event_count": 0`)
	assert.Contains(t, cb.text, `"events": []`)
	assert.False(t, strings.Contains(cb.text, "null"))
}

func TestExporter_InitialState(t *testing.T) {
	e := newTestExporter(t, &memClipboard{}, 0)
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, Result{}, e.LastResult())
}
