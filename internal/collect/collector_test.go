package collect

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-media/lumen-diagnostics/internal/anonymize"
	"github.com/lumen-media/lumen-diagnostics/internal/buffer"
	"github.com/lumen-media/lumen-diagnostics/internal/event"
	"github.com/lumen-media/lumen-diagnostics/internal/sampler"
)

func testSanitizer(t *testing.T) *anonymize.MessageSanitizer {
	t.Helper()
	salt, err := anonymize.NewSalt()
	require.NoError(t, err)
	return anonymize.NewMessageSanitizer(anonymize.NewIdentityAnonymizer(salt, "alice"))
}

func newTestCollector(t *testing.T, cfg Config) *Collector {
	t.Helper()
	if cfg.Sanitizer == nil {
		cfg.Sanitizer = testSanitizer(t)
	}
	c := New(cfg)
	t.Cleanup(c.Close)
	return c
}

func TestCollector_EventInvisibleUntilDrained(t *testing.T) {
	c := newTestCollector(t, Config{})
	h := c.Handle()

	h.LogState(event.StateStartup)
	assert.Equal(t, 0, c.EventCount(), "event visible before ProcessPending")

	drained := c.ProcessPending()
	assert.Equal(t, 1, drained)
	assert.Equal(t, 1, c.EventCount())

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, event.KindAppState, snap[0].Payload.Kind())
	assert.False(t, snap[0].Time.IsZero())
}

func TestCollector_DrainPreservesOrder(t *testing.T) {
	c := newTestCollector(t, Config{})
	h := c.Handle()

	h.LogAction(event.ActionFileOpen, "")
	h.LogState(event.StateForeground)
	h.LogOperation(event.OpDecode, 80*time.Millisecond)
	c.ProcessPending()

	snap := c.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, event.KindUserAction, snap[0].Payload.Kind())
	assert.Equal(t, event.KindAppState, snap[1].Payload.Kind())
	assert.Equal(t, event.KindOperation, snap[2].Payload.Kind())
}

func TestCollector_FullQueueDropsNewest(t *testing.T) {
	c := newTestCollector(t, Config{QueueSize: 4})
	h := c.Handle()

	for i := 0; i < 10; i++ {
		h.LogState(event.StateIdle)
	}

	assert.Equal(t, uint64(6), c.Dropped())
	assert.Equal(t, 4, c.ProcessPending(), "only queued events drain")
}

func TestCollector_BufferOverwriteAfterDrain(t *testing.T) {
	c := newTestCollector(t, Config{Capacity: buffer.NewCapacity(buffer.MinCapacity)})
	h := c.Handle()

	for i := 0; i < buffer.MinCapacity+8; i++ {
		h.LogOperation(event.OpThumbnail, time.Millisecond)
		c.ProcessPending()
	}

	assert.Equal(t, buffer.MinCapacity, c.EventCount())
	assert.Zero(t, c.Dropped(), "drained events never count as channel loss")
}

func TestCollector_WarningSanitizedAtIngestion(t *testing.T) {
	c := newTestCollector(t, Config{})
	h := c.Handle()

	h.LogWarning(event.WarningEvent{
		Type:    event.WarnPermissionDenied,
		Message: "cannot write /home/alice/out.mp4",
	})
	c.ProcessPending()

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	w, ok := snap[0].Payload.(event.WarningEvent)
	require.True(t, ok)
	assert.NotContains(t, w.Message, "alice")
	assert.NotContains(t, w.Message, "/home")
	assert.Equal(t, event.WarnPermissionDenied, w.Type)
}

func TestCollector_ErrorSanitizedAtIngestion(t *testing.T) {
	c := newTestCollector(t, Config{})
	h := c.Handle()

	h.LogError(event.ErrorEvent{Type: event.ErrTypeIO, Message: "disk 10.0.0.5 unreachable"})
	c.ProcessPending()

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	e := snap[0].Payload.(event.ErrorEvent)
	assert.NotContains(t, e.Message, "10.0.0.5")
}

func TestCollector_HandlesAreShareable(t *testing.T) {
	c := newTestCollector(t, Config{QueueSize: 4096})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := c.Handle()
			for j := 0; j < 100; j++ {
				h.LogAction(event.ActionEditApply, "")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, c.ProcessPending())
}

func TestCollector_ResourceCollectionLifecycle(t *testing.T) {
	c := newTestCollector(t, Config{Sampling: sampler.NewInterval(sampler.MinInterval)})

	assert.Equal(t, StatusDisabled, c.Status().Kind)

	c.EnableResourceCollection()
	st := c.Status()
	assert.Equal(t, StatusEnabled, st.Kind)
	assert.Equal(t, c.StartedAt(), st.Since)

	// Idempotent enable.
	c.EnableResourceCollection()
	assert.Equal(t, StatusEnabled, c.Status().Kind)

	// Wait for at least one sample to queue, then drain.
	deadline := time.After(2 * time.Second)
	for c.ProcessPending() == 0 {
		select {
		case <-deadline:
			t.Fatal("no resource sample arrived")
		case <-time.After(20 * time.Millisecond):
		}
	}
	require.NotZero(t, c.EventCount())
	assert.Equal(t, event.KindResourceSnapshot, c.Snapshot()[0].Payload.Kind())

	before := c.EventCount()
	c.DisableResourceCollection()
	assert.Equal(t, StatusDisabled, c.Status().Kind)
	assert.Equal(t, before, c.EventCount(), "disable must preserve buffered events")

	// Idempotent disable.
	c.DisableResourceCollection()

	// Re-enabling resumes sampling into the same buffer.
	c.EnableResourceCollection()
	assert.Equal(t, StatusEnabled, c.Status().Kind)
}

func TestCollector_StartedAtFixedAtConstruction(t *testing.T) {
	before := time.Now()
	c := newTestCollector(t, Config{})
	after := time.Now()

	require.False(t, c.StartedAt().Before(before))
	require.False(t, c.StartedAt().After(after))

	c.EnableResourceCollection()
	c.DisableResourceCollection()
	assert.Equal(t, c.Status().Kind, StatusDisabled)
}

func TestCollector_Clear(t *testing.T) {
	c := newTestCollector(t, Config{})
	h := c.Handle()
	h.LogState(event.StateIdle)
	c.ProcessPending()

	c.Clear()
	assert.Zero(t, c.EventCount())
}
