package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerOrder(t *testing.T) {
	m := NewManualScheduler()
	var got []int
	m.After(time.Second, func() { got = append(got, 1) })
	cancel := m.After(time.Second, func() { got = append(got, 2) })
	m.After(time.Second, func() {
		got = append(got, 3)
		m.After(0, func() { got = append(got, 4) })
	})

	assert.Len(t, m.TakeNew(), 3)
	assert.Empty(t, m.TakeNew())

	cancel()
	cancel()
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, m.FireAll())
	assert.Equal(t, []int{1, 3, 4}, got)
	assert.Zero(t, m.Len())
}

func TestTimerSchedulerCancel(t *testing.T) {
	fired := make(chan struct{}, 1)
	cancel := TimerScheduler{}.After(20*time.Millisecond, func() { fired <- struct{}{} })
	cancel()
	select {
	case <-fired:
		t.Fatal("cancelled callback ran")
	case <-time.After(60 * time.Millisecond):
	}

	TimerScheduler{}.After(time.Millisecond, func() { fired <- struct{}{} })
	select {
	case <-fired:
	case <-time.After(time.Second):
		require.Fail(t, "callback did not run")
	}
}
