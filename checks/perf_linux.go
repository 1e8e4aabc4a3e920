//go:build linux

package checks

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// openInstructionsCounter opens a disabled hardware instruction counter for
// the calling process on any CPU.
func openInstructionsCounter() (func() error, error) {
	attr := &unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Config: unix.PERF_COUNT_HW_INSTRUCTIONS,
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeHv,
	}
	attr.Size = uint32(unsafe.Sizeof(*attr))

	fd, err := unix.PerfEventOpen(attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return func() error { return unix.Close(fd) }, nil
}
