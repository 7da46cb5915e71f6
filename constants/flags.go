package constants

const (
	FlagConfig   = "config"
	FlagPath     = "path"
	FlagInterval = "interval"
	FlagDuration = "duration"
)

const (
	FlagUsageConfig   = "optional YAML config file"
	FlagUsagePath     = "sysfs path for the GPU devfreq load file"
	FlagUsageInterval = "sampling interval (e.g. 10ms, 1ms, 1s)"
	FlagUsageDuration = "how long to record before printing stats (0 = until interrupted)"
)
