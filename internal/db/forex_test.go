package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetRateSameCurrency(t *testing.T) {
	// Identity pairs resolve before any lookup, so no pool is needed.
	r := NewForexRepository(nil, zap.NewNop())

	for _, ccy := range []string{"USD", "EUR", "JPY"} {
		rate, err := r.GetRate(context.Background(), ccy, ccy, nil)
		assert.NoError(t, err)
		assert.Equal(t, 1.0, rate)
	}
}

func TestResolveRate(t *testing.T) {
	t.Run("direct rate wins", func(t *testing.T) {
		rate, ok := resolveRate(dec("0.92"), nil)
		assert.True(t, ok)
		assert.InDelta(t, 0.92, rate, 1e-9)
	})

	t.Run("inverse rate is reciprocal", func(t *testing.T) {
		rate, ok := resolveRate(nil, dec("0.90"))
		assert.True(t, ok)
		assert.InDelta(t, 1.0/0.90, rate, 1e-9)
	})

	t.Run("direct preferred over inverse", func(t *testing.T) {
		rate, ok := resolveRate(dec("0.92"), dec("2.0"))
		assert.True(t, ok)
		assert.InDelta(t, 0.92, rate, 1e-9)
	})

	t.Run("round trip is identity within tolerance", func(t *testing.T) {
		forward, _ := resolveRate(dec("0.90"), nil)
		backward, _ := resolveRate(nil, dec("0.90"))
		assert.InDelta(t, 1.0, forward*backward, 1e-9)
	})

	t.Run("zero inverse falls through to identity", func(t *testing.T) {
		rate, ok := resolveRate(nil, dec("0"))
		assert.False(t, ok)
		assert.Equal(t, 1.0, rate)
	})

	t.Run("no data in either direction degrades to identity", func(t *testing.T) {
		rate, ok := resolveRate(nil, nil)
		assert.False(t, ok)
		assert.Equal(t, 1.0, rate)
	})
}
