//go:build linux || darwin

package fsmeta

import "golang.org/x/sys/unix"

// statNanos stats path directly through golang.org/x/sys/unix, which
// exposes the full nanosecond-resolution Timespec even on platforms
// where the standard library's os.FileInfo would truncate it.
func statNanos(path string) (int64, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, false
	}
	sec, nsec := mtimeComponents(st)
	return sec*1e9 + nsec, true
}
