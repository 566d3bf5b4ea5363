// Package fsmeta reads file modification times at the precision the
// cache needs to tell a rebuilt file from an untouched one. Plain
// os.FileInfo.ModTime already carries nanosecond precision on most
// platforms, but some filesystems only report it through the raw
// stat structure; statNanos uses golang.org/x/sys/unix where
// available so the cache key is as precise as the OS can give us, and
// falls back to os.Stat everywhere else.
package fsmeta

import "os"

// ModTimeNanos returns the file's modification time as nanoseconds
// since the Unix epoch.
func ModTimeNanos(path string) (int64, error) {
	if ns, ok := statNanos(path); ok {
		return ns, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixNano(), nil
}
