package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/01moynul/bales-storefront/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAndReset(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	m, err := svc.Track(ctx, "bale-1", models.MetricView)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ViewCount)
	assert.Equal(t, int64(0), m.AddToCartCount)

	m, err = svc.Track(ctx, "bale-1", models.MetricAddToCart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ViewCount)
	assert.Equal(t, int64(1), m.AddToCartCount)

	resetAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return resetAt }
	n, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	m, err = svc.Get(ctx, "bale-1")
	require.NoError(t, err)
	assert.Zero(t, m.ViewCount)
	assert.Zero(t, m.AddToCartCount)
	require.NotNil(t, m.ResetDate)
	assert.Equal(t, resetAt, *m.ResetDate)
}

func TestConcurrentTracksAreNotLost(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Track(ctx, "bale-1", models.MetricView)
		}()
	}
	wg.Wait()

	m, err := svc.Get(ctx, "bale-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), m.ViewCount)
}

func TestTrackValidation(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	_, err := svc.Track(ctx, "", models.MetricView)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = svc.Track(ctx, "bale-1", models.MetricKind("purchase"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestListOrderedByViews(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()
	_, _ = svc.Track(ctx, "quiet", models.MetricView)
	for i := 0; i < 3; i++ {
		_, _ = svc.Track(ctx, "popular", models.MetricView)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "popular", list[0].BaleID)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
