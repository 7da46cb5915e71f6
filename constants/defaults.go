package constants

import "time"

const (
	// DefaultGPULoadSysfsPath is the devfreq load file for the GPU on
	// Jetson-class boards. The kernel reports load in the range 0-1000.
	DefaultGPULoadSysfsPath = "/sys/class/devfreq/17000000.gpu/device/load"

	DefaultSamplingInterval = 10 * time.Millisecond
	MinSamplingInterval     = time.Millisecond

	// GPULoadMax is the upper bound of a valid devfreq load reading.
	GPULoadMax = 1000

	DefaultRecordDuration = 10 * time.Second
)
