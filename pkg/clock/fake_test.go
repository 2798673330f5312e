package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewFake(start)
	assert.Equal(t, start, c.Now())

	ch := c.After(time.Hour)
	assert.Equal(t, 1, c.Waiters())

	c.Advance(30 * time.Minute)
	select {
	case <-ch:
		t.Fatal("fired before deadline")
	default:
	}

	c.Advance(30 * time.Minute)
	select {
	case fired := <-ch:
		assert.Equal(t, start.Add(time.Hour), fired)
	default:
		t.Fatal("did not fire at deadline")
	}
	assert.Zero(t, c.Waiters())

	select {
	case <-c.After(0):
	default:
		t.Fatal("zero duration should fire immediately")
	}
}
