//go:build unit

package listing_test

import (
	"testing"
	"time"

	"rentens-market/internal/domain/listing"
	"rentens-market/internal/domain/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTerms() listing.Terms {
	return listing.Terms{
		MaxDuration:       30 * 24 * time.Hour,
		DailyRate:         money.MustNew(100_000_000),
		ExtensionsAllowed: true,
	}
}

func TestNew(t *testing.T) {
	owner := uuid.New()
	now := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		l, err := listing.New("vault.eth", owner, validTerms(), now)
		require.NoError(t, err)

		assert.True(t, l.IsActive())
		assert.Equal(t, "vault.eth", l.Asset().String())
		assert.Equal(t, owner, l.Owner())
		assert.Equal(t, now, l.CreatedAt())
	})

	t.Run("rejects zero duration", func(t *testing.T) {
		terms := validTerms()
		terms.MaxDuration = 0
		_, err := listing.New("vault.eth", owner, terms, now)
		assert.ErrorIs(t, err, listing.ErrZeroDuration)
	})

	t.Run("rejects zero rate", func(t *testing.T) {
		terms := validTerms()
		terms.DailyRate = money.Zero()
		_, err := listing.New("vault.eth", owner, terms, now)
		assert.ErrorIs(t, err, listing.ErrZeroRate)
	})
}

func TestPriceFor(t *testing.T) {
	l, err := listing.New("vault.eth", uuid.New(), validTerms(), time.Now())
	require.NoError(t, err)

	cases := []struct {
		name     string
		duration time.Duration
		expected int64
	}{
		{name: "one day", duration: 24 * time.Hour, expected: 100_000_000},
		{name: "half day", duration: 12 * time.Hour, expected: 50_000_000},
		{name: "one hour", duration: time.Hour, expected: 100_000_000 / 24},
		{name: "week", duration: 7 * 24 * time.Hour, expected: 700_000_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := l.PriceFor(tc.duration)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, price.Units())
		})
	}

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := l.PriceFor(0)
		assert.ErrorIs(t, err, listing.ErrInvalidDuration)
	})
}

func TestLifecycle(t *testing.T) {
	t.Run("deactivate", func(t *testing.T) {
		l, err := listing.New("vault.eth", uuid.New(), validTerms(), time.Now())
		require.NoError(t, err)

		l.Deactivate()
		assert.False(t, l.IsActive())
	})

	t.Run("nil listing is never active", func(t *testing.T) {
		var l *listing.Listing
		assert.False(t, l.IsActive())
	})

	t.Run("clone is detached", func(t *testing.T) {
		l, err := listing.New("vault.eth", uuid.New(), validTerms(), time.Now())
		require.NoError(t, err)

		c := l.Clone()
		l.Deactivate()
		assert.True(t, c.IsActive())
	})
}
