// Package sampler runs the background resource sampler: one
// dedicated goroutine that periodically measures CPU, memory and
// disk I/O and forwards each sample toward the collector over its
// bounded intake channel. The sampler never blocks its caller and
// never blocks on a full channel.
package sampler

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/lumen-media/lumen-diagnostics/internal/event"
)

// Sampling interval bounds. Out-of-range intervals are clamped.
const (
	MinInterval     = 100 * time.Millisecond
	MaxInterval     = 60 * time.Second
	DefaultInterval = time.Second
)

// Interval is a validated sampling interval.
type Interval time.Duration

// NewInterval clamps d into [MinInterval, MaxInterval]. A
// non-positive d yields DefaultInterval.
func NewInterval(d time.Duration) Interval {
	switch {
	case d <= 0:
		return Interval(DefaultInterval)
	case d < MinInterval:
		return Interval(MinInterval)
	case d > MaxInterval:
		return Interval(MaxInterval)
	default:
		return Interval(d)
	}
}

// Duration returns the interval as a time.Duration.
func (i Interval) Duration() time.Duration { return time.Duration(i) }

// Sampler owns the sampling goroutine. Construct with New, call
// Start once, Stop any number of times. The zero value is not
// usable.
type Sampler struct {
	interval time.Duration
	out      chan<- event.Payload
	logger   *slog.Logger

	stopCh  chan struct{}
	done    chan struct{}
	started atomic.Bool
	stopped atomic.Bool

	// CPU and disk deltas carry state between ticks. Only the
	// sampling goroutine touches these.
	lastCPUTotal float64
	lastCPUIdle  float64
	lastRead     uint64
	lastWrite    uint64
	haveIO       bool
}

// New creates a sampler that emits ResourceMetrics payloads on out.
// out must be the collector's intake channel; sends are always
// non-blocking and a full channel drops the sample.
func New(interval Interval, out chan<- event.Payload, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sampler{
		interval: interval.Duration(),
		out:      out,
		logger:   logger,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Interval returns the effective sampling interval.
func (s *Sampler) Interval() time.Duration { return s.interval }

// Running reports whether the sampling goroutine is live.
func (s *Sampler) Running() bool {
	return s.started.Load() && !s.stopped.Load()
}

// Start launches the sampling goroutine. Calling Start more than
// once is a no-op.
func (s *Sampler) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
}

// Stop signals the goroutine and waits for it to exit. Latency is
// bounded by one tick. Idempotent, and safe when Start was never
// called.
func (s *Sampler) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	close(s.stopCh)
	if s.started.Load() {
		<-s.done
	}
}

func (s *Sampler) run() {
	defer close(s.done)

	// Prime the CPU counters so the first emitted sample carries a
	// real utilization delta instead of zero.
	s.primeCPU()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.emit(s.sample())
		}
	}
}

func (s *Sampler) emit(m event.ResourceMetrics) {
	select {
	case s.out <- m:
	default:
		s.logger.Debug("resource sample dropped, intake channel full")
	}
}

// sample gathers one metrics snapshot. Failures degrade to zeroed
// fields; a sampling error must never kill the goroutine.
func (s *Sampler) sample() event.ResourceMetrics {
	var m event.ResourceMetrics
	s.sampleCPU(&m)
	s.sampleMemory(&m)
	s.sampleDisk(&m)
	return m
}

func (s *Sampler) primeCPU() {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		return
	}
	total, idle := cpuTotals(times[0])
	s.lastCPUTotal = total
	s.lastCPUIdle = idle
}

func (s *Sampler) sampleCPU(m *event.ResourceMetrics) {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		s.logger.Debug("cpu sample failed", "error", err)
		return
	}
	total, idle := cpuTotals(times[0])
	if s.lastCPUTotal > 0 {
		totalDelta := total - s.lastCPUTotal
		idleDelta := idle - s.lastCPUIdle
		if totalDelta > 0 {
			m.CPUPercent = (1 - idleDelta/totalDelta) * 100
		}
	}
	s.lastCPUTotal = total
	s.lastCPUIdle = idle
}

func cpuTotals(t cpu.TimesStat) (total, idle float64) {
	total = t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
	idle = t.Idle + t.Iowait
	return total, idle
}

func (s *Sampler) sampleMemory(m *event.ResourceMetrics) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		s.logger.Debug("memory sample failed", "error", err)
		return
	}
	m.RAMUsedMB = float64(vm.Used) / 1024 / 1024
	m.RAMTotalMB = float64(vm.Total) / 1024 / 1024
}

func (s *Sampler) sampleDisk(m *event.ResourceMetrics) {
	counters, err := disk.IOCounters()
	if err != nil {
		s.logger.Debug("disk sample failed", "error", err)
		return
	}
	var read, write uint64
	for _, c := range counters {
		read += c.ReadBytes
		write += c.WriteBytes
	}
	if s.haveIO {
		if read >= s.lastRead {
			m.DiskReadBytes = read - s.lastRead
		}
		if write >= s.lastWrite {
			m.DiskWriteBytes = write - s.lastWrite
		}
	}
	s.lastRead = read
	s.lastWrite = write
	s.haveIO = true
}
