package scraper

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Partition is one contiguous date sub-range of a larger query, processed
// independently by one worker.
type Partition struct {
	Query string
	Since time.Time
	Until time.Time
}

// splitRange divides [begin, end] into n contiguous sub-ranges with
// boundaries evenly spaced over the day count, each rendered as the base
// query with explicit since:/until: bounds. n is clamped to the number of
// days so no partition is zero-width; ranges under a day produce a single
// partition.
func splitRange(query string, begin, end time.Time, n int) []Partition {
	days := daysBetween(begin, end)
	if n > days {
		n = days
	}
	if n < 1 {
		n = 1
	}

	parts := make([]Partition, 0, n)
	for i := 0; i < n; i++ {
		since := begin.AddDate(0, 0, i*days/n)
		until := begin.AddDate(0, 0, (i+1)*days/n)
		parts = append(parts, Partition{
			Query: fmt.Sprintf("%s since:%s until:%s",
				query, since.Format(dateLayout), until.Format(dateLayout)),
			Since: since,
			Until: until,
		})
	}
	return parts
}

// partitionLimit over-allocates the per-partition share of a global limit
// by one, so the aggregate can still reach the requested total despite
// per-partition rounding. Returns 0 (unlimited) when no limit is set.
func partitionLimit(limit, n int) int {
	if limit <= 0 {
		return 0
	}
	return limit/n + 1
}

func daysBetween(begin, end time.Time) int {
	return int(end.Sub(begin).Hours() / 24)
}
