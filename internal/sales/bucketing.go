package sales

import (
	"sort"
	"time"
)

// Bucket is one clock hour of ticket sales. Cumulative is the running
// total over the chronological bucket sequence; counts are exact integers.
type Bucket struct {
	Time       time.Time `json:"time"`
	Count      int       `json:"count"`
	Cumulative int       `json:"cumulative"`
}

// BucketHourly folds sale timestamps into contiguous hourly buckets from
// the first sale's hour to the last sale's hour inclusive. Hours with no
// sales appear with Count 0 so charts do not show misleading gaps. The
// second return value is the total sale count, equal to the last bucket's
// Cumulative. Input order does not matter; the fetch is expected
// pre-sorted but unsorted input is tolerated.
func BucketHourly(times []time.Time) ([]Bucket, int) {
	if len(times) == 0 {
		return []Bucket{}, 0
	}

	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	counts := make(map[time.Time]int, len(sorted))
	for _, t := range sorted {
		counts[hourOf(t)]++
	}

	first := hourOf(sorted[0])
	last := hourOf(sorted[len(sorted)-1])

	buckets := make([]Bucket, 0, int(last.Sub(first)/time.Hour)+1)
	cumulative := 0
	for h := first; !h.After(last); h = h.Add(time.Hour) {
		count := counts[h]
		cumulative += count
		buckets = append(buckets, Bucket{
			Time:       h,
			Count:      count,
			Cumulative: cumulative,
		})
	}

	return buckets, cumulative
}

// hourOf truncates a timestamp to the start of its UTC clock hour.
func hourOf(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}
