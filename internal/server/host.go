package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/rileyhilliard/tilemon/internal/telemetry"
)

// Sensor groups used by HostProvider.
const (
	groupCPU     = "CPU"
	groupMemory  = "Memory"
	groupDisk    = "Disk"
	groupNetwork = "Network"
	groupSystem  = "System"
	groupTemp    = "Temperatures"
)

// HostProvider reads this machine's sensors with gopsutil. Each source is
// best effort: one that fails on this platform is left out and the rest are
// still served.
type HostProvider struct {
	// CPUSample is how long CPU usage is measured over.
	CPUSample time.Duration
	// DiskPath is the mount whose usage is reported.
	DiskPath string

	// Serializes CPU sampling across requests.
	mu sync.Mutex
}

func NewHostProvider() *HostProvider {
	return &HostProvider{
		CPUSample: 250 * time.Millisecond,
		DiskPath:  "/",
	}
}

// Readings returns the current host readings with IDs assigned in order.
func (p *HostProvider) Readings(ctx context.Context) ([]telemetry.Metric, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []telemetry.Metric
	add := func(group, label, value string) {
		out = append(out, telemetry.Metric{ID: len(out), Label: label, Value: value, Group: group})
	}

	if perCore, err := cpu.PercentWithContext(ctx, p.CPUSample, true); err == nil && len(perCore) > 0 {
		var total float64
		for _, v := range perCore {
			total += v
		}
		add(groupCPU, "CPU Usage", percent(total/float64(len(perCore))))
		for i, v := range perCore {
			add(groupCPU, fmt.Sprintf("Core %d Usage", i), percent(v))
		}
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		add(groupMemory, "Memory Usage", percent(vm.UsedPercent))
		add(groupMemory, "Memory Used", gib(vm.Used))
		add(groupMemory, "Memory Available", gib(vm.Available))
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil && sw.Total > 0 {
		add(groupMemory, "Swap Usage", percent(sw.UsedPercent))
	}

	if du, err := disk.UsageWithContext(ctx, p.DiskPath); err == nil {
		add(groupDisk, fmt.Sprintf("Disk %s Usage", du.Path), percent(du.UsedPercent))
		add(groupDisk, fmt.Sprintf("Disk %s Free", du.Path), gib(du.Free))
	}

	// Aggregate of all interfaces.
	if io, err := psnet.IOCountersWithContext(ctx, false); err == nil && len(io) > 0 {
		add(groupNetwork, "Net Sent", gib(io[0].BytesSent))
		add(groupNetwork, "Net Received", gib(io[0].BytesRecv))
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		add(groupSystem, "Load 1m", fmt.Sprintf("%.2f", avg.Load1))
		add(groupSystem, "Load 5m", fmt.Sprintf("%.2f", avg.Load5))
		add(groupSystem, "Load 15m", fmt.Sprintf("%.2f", avg.Load15))
	}

	if up, err := host.UptimeWithContext(ctx); err == nil {
		add(groupSystem, "Uptime", FormatUptime(time.Duration(up)*time.Second))
	}

	// Partial results come back alongside a warnings error.
	temps, _ := sensors.TemperaturesWithContext(ctx)
	sort.Slice(temps, func(i, j int) bool { return temps[i].SensorKey < temps[j].SensorKey })
	for _, t := range temps {
		if t.Temperature <= 0 {
			continue
		}
		add(groupTemp, sensorLabel(t.SensorKey), fmt.Sprintf("%.1f °C", t.Temperature))
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if out == nil {
		out = []telemetry.Metric{}
	}
	return out, nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f %%", v)
}

func gib(bytes uint64) string {
	return fmt.Sprintf("%.1f GiB", float64(bytes)/(1<<30))
}

// FormatUptime renders d as "3d 4h 5m", dropping leading zero units.
func FormatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// sensorLabel turns keys like "coretemp_core_0_input" into "Coretemp Core 0".
func sensorLabel(key string) string {
	key = strings.TrimSuffix(key, "_input")
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "Sensor"
	}
	return strings.Join(words, " ")
}
