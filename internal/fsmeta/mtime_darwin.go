//go:build darwin

package fsmeta

import "golang.org/x/sys/unix"

func mtimeComponents(st unix.Stat_t) (sec, nsec int64) {
	return int64(st.Mtimespec.Sec), int64(st.Mtimespec.Nsec)
}
