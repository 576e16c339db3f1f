package report

import (
	"runtime"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfo is the non-identifying machine description attached to
// every report. Every field is best-effort: a probe failure leaves
// the zero value rather than failing the export.
type SystemInfo struct {
	OS            string `json:"os"`
	OSName        string `json:"os_name"`
	OSVersion     string `json:"os_version"`
	KernelVersion string `json:"kernel_version"`
	CPUArch       string `json:"cpu_arch"`
	CPUBrand      string `json:"cpu_brand"`
	CPUCores      int    `json:"cpu_cores"`
	RAMTotalMB    uint64 `json:"ram_total_mb"`
	DiskType      string `json:"disk_type"`
}

// GatherSystemInfo probes the machine at export time.
func GatherSystemInfo() SystemInfo {
	info := SystemInfo{
		OS:       runtime.GOOS,
		CPUArch:  runtime.GOARCH,
		DiskType: "unknown",
	}

	if h, err := host.Info(); err == nil {
		info.OSName = h.Platform
		info.OSVersion = h.PlatformVersion
		info.KernelVersion = h.KernelVersion
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUBrand = strings.TrimSpace(infos[0].ModelName)
	}
	if cores, err := cpu.Counts(false); err == nil && cores > 0 {
		info.CPUCores = cores
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAMTotalMB = vm.Total / 1024 / 1024
	}
	info.DiskType = detectDiskType()

	return info
}

// detectDiskType classifies the first fixed drive. Advisory only:
// the heuristic has no correctness guarantee across virtualized or
// network storage.
func detectDiskType() string {
	block, err := ghw.Block()
	if err != nil || block == nil {
		return "unknown"
	}
	for _, d := range block.Disks {
		if d.IsRemovable {
			continue
		}
		switch d.DriveType {
		case ghw.DRIVE_TYPE_SSD:
			return "ssd"
		case ghw.DRIVE_TYPE_HDD:
			return "hdd"
		}
	}
	return "unknown"
}
