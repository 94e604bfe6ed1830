package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDGenerator_MonotonicWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewIDGenerator(func() time.Time { return fixed })

	assert.Equal(t, "1700000000000", gen.Next())
	assert.Equal(t, "1700000000001", gen.Next())
	assert.Equal(t, "1700000000002", gen.Next())
}

func TestIDGenerator_ClockGoingBackwards(t *testing.T) {
	times := []time.Time{time.UnixMilli(2000), time.UnixMilli(1000), time.UnixMilli(5000)}
	i := 0
	gen := NewIDGenerator(func() time.Time {
		ts := times[i]
		i++
		return ts
	})

	assert.Equal(t, "2000", gen.Next())
	assert.Equal(t, "2001", gen.Next())
	assert.Equal(t, "5000", gen.Next())
}
