//go:build !linux && !darwin

package fsmeta

// statNanos has no golang.org/x/sys/unix implementation on this
// platform; ModTimeNanos falls back to os.Stat.
func statNanos(path string) (int64, bool) {
	return 0, false
}
