package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-booking-api/internal/model"
)

func setup(t *testing.T) *Lawyers {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() { _ = rdb.Close() })
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	c := NewLawyers(rdb, time.Minute)
	require.NoError(t, c.Invalidate(context.Background()))
	return c
}

func TestLawyersCacheRoundTrip(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	_, err := c.Active(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	in := []model.Lawyer{{
		ID: "11111111-1111-1111-1111-111111111111", Name: "John Smith", Gender: model.GenderMale,
		Email: "john.smith@lawfirm.com", PasswordHash: "secret-hash", Specialization: "Criminal Law",
		ExperienceYears: 15, HourlyRate: 150, Status: model.LawyerActive,
	}}
	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.SetActive(ctx, gen, in))

	got, err := c.Active(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John Smith", got[0].Name)
	assert.Equal(t, 150.0, got[0].HourlyRate)
	assert.Empty(t, got[0].PasswordHash)

	require.NoError(t, c.Invalidate(ctx))
	_, err = c.Active(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestLawyersCacheIgnoresStaleGeneration(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))

	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)

	stale := []model.Lawyer{{ID: "22222222-2222-2222-2222-222222222222", Name: "David Kim", Status: model.LawyerActive}}
	require.NoError(t, c.SetActive(ctx, gen, stale))
	_, err = c.Active(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.SetActive(ctx, next, stale))
	got, err := c.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
