package event

// ResourceMetrics is a point-in-time system resource sample. Disk
// counters are deltas since the previous sample, not absolutes.
// Produced only by the resource sampler.
type ResourceMetrics struct {
	CPUPercent     float64
	RAMUsedMB      float64
	RAMTotalMB     float64
	DiskReadBytes  uint64
	DiskWriteBytes uint64
}

func (ResourceMetrics) Kind() Kind { return KindResourceSnapshot }
