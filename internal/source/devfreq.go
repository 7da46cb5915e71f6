package source

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"gpumon/constants"
)

// DevfreqLoad reads the GPU load exposed by the kernel devfreq driver.
type DevfreqLoad struct {
	Path string // default: constants.DefaultGPULoadSysfsPath
}

func (s DevfreqLoad) path() string {
	if s.Path == "" {
		return constants.DefaultGPULoadSysfsPath
	}
	return s.Path
}

func (s DevfreqLoad) ReadOnce() (int, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", ErrUnavailable, s.path(), err)
	}

	raw := strings.TrimSpace(string(b))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %q: %v", ErrBadValue, raw, err)
	}
	if v < 0 || v > constants.GPULoadMax {
		return 0, fmt.Errorf("%w: %d outside [0, %d]", ErrBadValue, v, constants.GPULoadMax)
	}
	return v, nil
}

func (s DevfreqLoad) Probe() error {
	if err := unix.Access(s.path(), unix.R_OK); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, s.path(), err)
	}
	return nil
}
