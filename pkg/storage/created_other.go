//go:build !darwin && !windows

package storage

import (
	"time"
)

// creationTime reports the file birth time as unknown: Linux and other
// platforms do not expose it through os.Stat. Unknown creation times
// sort after dated ones during canonical selection.
func creationTime(sys any) (time.Time, bool) {
	return time.Time{}, false
}
