package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_BurstThenThrottle(t *testing.T) {
	dl := NewDomainLimiter(1, 2)
	u := "https://creativequotations.com/cgi-bin/sql_search3.cgi?keyword=god"

	assert.True(t, dl.Allow(u))
	assert.True(t, dl.Allow(u))
	assert.False(t, dl.Allow(u), "third request within the same second should be throttled")
}

func TestDomainLimiter_SeparateHosts(t *testing.T) {
	dl := NewDomainLimiter(1, 1)

	assert.True(t, dl.Allow("https://a.example.com/x"))
	assert.True(t, dl.Allow("https://b.example.com/x"))
	assert.Equal(t, 2, dl.Hosts())
}

func TestDomainLimiter_WaitHonoursContext(t *testing.T) {
	dl := NewDomainLimiter(0.001, 1)
	u := "https://example.com/"

	require.NoError(t, dl.Wait(context.Background(), u))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, dl.Wait(ctx, u))
}

func TestDomainLimiter_InvalidURLPassesThrough(t *testing.T) {
	dl := NewDomainLimiter(1, 1)
	assert.NoError(t, dl.Wait(context.Background(), "::not a url"))
	assert.True(t, dl.Allow("::not a url"))
}
