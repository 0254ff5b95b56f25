package climate

import (
	"fmt"
	"time"
)

// MonthOffset selects one of the six pattern blocks in a seasonal document.
// Valid values are 1 through 6.
type MonthOffset int

// Key returns the document key for the offset, e.g. "month_3".
func (m MonthOffset) Key() string {
	return fmt.Sprintf("month_%d", int(m))
}

// OffsetBetween maps the calendar-month distance from now to the target date
// onto the six-slot pattern wheel. Same month gives 1; the wheel wraps, so a
// target seven months out reuses the second slot.
func OffsetBetween(now, target time.Time) MonthOffset {
	diff := (int(target.Month()) - int(now.Month())) % 6
	if diff < 0 {
		diff += 6
	}
	return MonthOffset(diff + 1)
}
