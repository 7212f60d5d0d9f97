//go:build windows

package storage

import (
	"syscall"
	"time"
)

// creationTime extracts the file creation time from file attribute data
func creationTime(sys any) (time.Time, bool) {
	st, ok := sys.(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, st.CreationTime.Nanoseconds()), true
}
