package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
}

func TestBucketHourlyEmpty(t *testing.T) {
	buckets, total := BucketHourly(nil)

	assert.NotNil(t, buckets)
	assert.Len(t, buckets, 0)
	assert.Equal(t, 0, total)
}

func TestBucketHourlySingleSale(t *testing.T) {
	buckets, total := BucketHourly([]time.Time{at(10, 5)})

	require.Len(t, buckets, 1)
	assert.Equal(t, at(10, 0), buckets[0].Time)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 1, buckets[0].Cumulative)
	assert.Equal(t, 1, total)
}

func TestBucketHourlyAdjacentHours(t *testing.T) {
	// 10:05, 10:40, 11:02 -> two buckets, cumulative 2 then 3.
	buckets, total := BucketHourly([]time.Time{at(10, 5), at(10, 40), at(11, 2)})

	require.Len(t, buckets, 2)
	assert.Equal(t, at(10, 0), buckets[0].Time)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 2, buckets[0].Cumulative)
	assert.Equal(t, at(11, 0), buckets[1].Time)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, 3, buckets[1].Cumulative)
	assert.Equal(t, 3, total)
}

func TestBucketHourlyZeroFillsGaps(t *testing.T) {
	buckets, total := BucketHourly([]time.Time{at(9, 30), at(12, 15)})

	require.Len(t, buckets, 4)
	assert.Equal(t, at(9, 0), buckets[0].Time)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, at(10, 0), buckets[1].Time)
	assert.Equal(t, 0, buckets[1].Count)
	assert.Equal(t, 1, buckets[1].Cumulative)
	assert.Equal(t, at(11, 0), buckets[2].Time)
	assert.Equal(t, 0, buckets[2].Count)
	assert.Equal(t, at(12, 0), buckets[3].Time)
	assert.Equal(t, 1, buckets[3].Count)
	assert.Equal(t, 2, buckets[3].Cumulative)
	assert.Equal(t, 2, total)
}

func TestBucketHourlyToleratesUnsortedInput(t *testing.T) {
	sorted, sortedTotal := BucketHourly([]time.Time{at(10, 5), at(10, 40), at(11, 2)})
	shuffled, shuffledTotal := BucketHourly([]time.Time{at(11, 2), at(10, 40), at(10, 5)})

	assert.Equal(t, sorted, shuffled)
	assert.Equal(t, sortedTotal, shuffledTotal)
}

func TestBucketHourlyCumulativeMonotone(t *testing.T) {
	times := []time.Time{
		at(8, 1), at(8, 59), at(9, 30), at(13, 0), at(13, 1), at(13, 2), at(15, 45),
	}

	buckets, total := BucketHourly(times)

	prev := 0
	for _, b := range buckets {
		assert.GreaterOrEqual(t, b.Cumulative, prev)
		assert.Equal(t, prev+b.Count, b.Cumulative)
		prev = b.Cumulative
	}
	assert.Equal(t, len(times), total)
	assert.Equal(t, total, buckets[len(buckets)-1].Cumulative)
}

func TestBucketHourlyNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2025, 6, 1, 12, 30, 0, 0, loc) // 10:30 UTC

	buckets, _ := BucketHourly([]time.Time{local})

	require.Len(t, buckets, 1)
	assert.Equal(t, at(10, 0), buckets[0].Time)
}
