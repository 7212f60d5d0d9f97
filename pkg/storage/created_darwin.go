//go:build darwin

package storage

import (
	"syscall"
	"time"
)

// creationTime extracts the file birth time from stat data
func creationTime(sys any) (time.Time, bool) {
	st, ok := sys.(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec), true
}
