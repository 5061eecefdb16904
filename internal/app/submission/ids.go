package submission

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a time-ordered id: base-36 milliseconds followed by a
// random suffix.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix
}
