package blur

import (
	"strconv"
	"time"
)

// DefaultMarkerPrefix is prepended to the marker title when no prefix is
// configured.
const DefaultMarkerPrefix = "_WINBLUR"

// MarkerTitle builds the temporary title used to find the window natively.
// Only the last three digits of the millisecond clock are used, so at most
// 1000 distinct markers exist per prefix and two calls in the same bucket
// produce the same title.
func MarkerTitle(prefix string, now time.Time) string {
	ms := now.UnixMilli() % 1000
	if ms < 0 {
		ms += 1000
	}
	return prefix + strconv.FormatInt(ms, 10)
}
