//go:build linux

package fsmeta

import "golang.org/x/sys/unix"

func mtimeComponents(st unix.Stat_t) (sec, nsec int64) {
	return int64(st.Mtim.Sec), int64(st.Mtim.Nsec)
}
