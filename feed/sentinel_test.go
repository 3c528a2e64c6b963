package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelDetachedUntilItemsArrive(t *testing.T) {
	api := newFakeAPI()
	api.setPage("now-playing", envelope(1, 3, 1))
	c := newTestController(api)
	s := NewSentinel(c)

	assert.False(t, s.Attached(), "idle feed has no marker")

	req := c.Start()
	_, ok := s.Observe(true)
	assert.False(t, ok, "initial load in flight")
	assert.False(t, s.Attached())

	c.Load(context.Background(), req)
	assert.True(t, s.Attached())
}

func TestSentinelFiresOncePerTransition(t *testing.T) {
	api := newFakeAPI()
	api.setPage("now-playing", envelope(1, 5, 1))
	api.setPage("now-playing", envelope(2, 5, 2))
	c := newTestController(api)
	s := NewSentinel(c)
	ctx := context.Background()

	c.Load(ctx, c.Start())

	_, ok := s.Observe(false)
	assert.False(t, ok)

	req, ok := s.Observe(true)
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.True(t, req.Append)

	// still visible, still loading
	for i := 0; i < 3; i++ {
		_, ok = s.Observe(true)
		assert.False(t, ok)
	}
	assert.Equal(t, 1, api.callCount())

	c.Load(ctx, req)
	assert.Equal(t, 2, api.callCount())

	// the page landed and the marker is still on screen: one more request
	req, ok = s.Observe(true)
	require.True(t, ok)
	assert.Equal(t, 3, req.Page)

	_, ok = s.Observe(true)
	assert.False(t, ok)
}

func TestSentinelDetachesWhenExhausted(t *testing.T) {
	api := newFakeAPI()
	api.setPage("now-playing", envelope(1, 2, 1))
	api.setPage("now-playing", envelope(2, 2, 2))
	c := newTestController(api)
	s := NewSentinel(c)
	ctx := context.Background()

	c.Load(ctx, c.Start())
	req, ok := s.Observe(true)
	require.True(t, ok)
	c.Load(ctx, req)

	assert.False(t, c.State().HasMore)
	assert.False(t, s.Attached())
	_, ok = s.Observe(false)
	assert.False(t, ok)
	_, ok = s.Observe(true)
	assert.False(t, ok)
	assert.Equal(t, 2, api.callCount())
}

func TestSentinelDetachesOnError(t *testing.T) {
	api := newFakeAPI()
	api.setPage("now-playing", envelope(1, 3, 1))
	api.setPage("now-playing", envelope(2, 3, 2))
	api.setErr("now-playing", 2, errors.New("timeout"))
	c := newTestController(api)
	s := NewSentinel(c)
	ctx := context.Background()

	c.Load(ctx, c.Start())
	req, ok := s.Observe(true)
	require.True(t, ok)
	c.Load(ctx, req)

	assert.Equal(t, Errored, c.State().Phase)
	assert.False(t, s.Attached())
	_, ok = s.Observe(true)
	assert.False(t, ok, "errors are retried explicitly, not by scrolling")

	api.clearErr("now-playing", 2)
	retry, ok := c.Retry()
	require.True(t, ok)
	c.Load(ctx, retry)
	assert.Equal(t, []int64{1, 2}, itemIDs(c.State().Items))
	assert.True(t, c.State().HasMore)
	assert.True(t, s.Attached())
}

func TestSentinelUnmount(t *testing.T) {
	api := newFakeAPI()
	api.setPage("now-playing", envelope(1, 3, 1))
	c := newTestController(api)
	s := NewSentinel(c)

	c.Load(context.Background(), c.Start())
	s.SetMounted(false)

	assert.False(t, s.Attached())
	_, ok := s.Observe(true)
	assert.False(t, ok)

	s.SetMounted(true)
	_, ok = s.Observe(true)
	assert.True(t, ok)
}

func TestSentinelAttachedIsReadOnly(t *testing.T) {
	api := newFakeAPI()
	api.setPage("now-playing", envelope(1, 5, 1))
	api.setPage("now-playing", envelope(2, 5, 2))
	c := newTestController(api)
	s := NewSentinel(c)
	ctx := context.Background()

	c.Load(ctx, c.Start())
	req, ok := s.Observe(true)
	require.True(t, ok)
	c.Load(ctx, req)

	// page 2 settled but nothing observed it yet
	before := *s
	assert.True(t, s.Attached())
	assert.Equal(t, before, *s)

	c.Start()
	before = *s
	assert.False(t, s.Attached(), "reload clears the items")
	assert.Equal(t, before, *s)
}
