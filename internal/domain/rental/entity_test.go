//go:build unit

package rental_test

import (
	"testing"
	"time"

	"rentens-market/internal/domain/money"
	"rentens-market/internal/domain/rental"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRental(t *testing.T, start time.Time, duration time.Duration) *rental.Rental {
	t.Helper()
	r, err := rental.New("vault.eth", uuid.New(), uuid.New(), start, start.Add(duration), money.MustNew(100_000_000), true)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	start := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		owner := uuid.New()
		renter := uuid.New()
		r, err := rental.New("vault.eth", owner, renter, start, start.Add(24*time.Hour), money.MustNew(1), true)
		require.NoError(t, err)

		assert.True(t, r.IsActive())
		assert.True(t, r.IsOwner(owner))
		assert.True(t, r.IsRenter(renter))
		assert.True(t, r.IsParty(owner))
		assert.False(t, r.IsParty(uuid.New()))
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := rental.New("vault.eth", uuid.New(), uuid.New(), start, start, money.MustNew(1), true)
		assert.ErrorIs(t, err, rental.ErrEndBeforeStart)
	})

	t.Run("rejects same owner and renter", func(t *testing.T) {
		p := uuid.New()
		_, err := rental.New("vault.eth", p, p, start, start.Add(time.Hour), money.MustNew(1), true)
		assert.ErrorIs(t, err, rental.ErrSameParties)
	})
}

func TestHasExpired(t *testing.T) {
	start := time.Now()
	r := newRental(t, start, 24*time.Hour)

	assert.False(t, r.HasExpired(start))
	assert.False(t, r.HasExpired(start.Add(24*time.Hour-time.Second)))
	assert.True(t, r.HasExpired(start.Add(24*time.Hour)))
	assert.True(t, r.HasExpired(start.Add(48*time.Hour)))
}

func TestExtendTo(t *testing.T) {
	start := time.Now()
	r := newRental(t, start, 24*time.Hour)

	t.Run("moves the end forward", func(t *testing.T) {
		newEnd := start.Add(48 * time.Hour)
		require.NoError(t, r.ExtendTo(newEnd))
		assert.Equal(t, newEnd, r.End())
	})

	t.Run("never shrinks", func(t *testing.T) {
		err := r.ExtendTo(start.Add(12 * time.Hour))
		assert.ErrorIs(t, err, rental.ErrEndNotExtended)

		err = r.ExtendTo(r.End())
		assert.ErrorIs(t, err, rental.ErrEndNotExtended)
	})
}

func TestAddPayment(t *testing.T) {
	r := newRental(t, time.Now(), 24*time.Hour)

	require.NoError(t, r.AddPayment(money.MustNew(50_000_000)))
	assert.Equal(t, int64(150_000_000), r.PricePaid().Units())
}

func TestCounterparty(t *testing.T) {
	owner := uuid.New()
	renter := uuid.New()
	start := time.Now()
	r, err := rental.New("vault.eth", owner, renter, start, start.Add(time.Hour), money.MustNew(1), false)
	require.NoError(t, err)

	got, ok := r.Counterparty(owner)
	assert.True(t, ok)
	assert.Equal(t, renter, got)

	got, ok = r.Counterparty(renter)
	assert.True(t, ok)
	assert.Equal(t, owner, got)

	_, ok = r.Counterparty(uuid.New())
	assert.False(t, ok)
}

func TestReassignRenter(t *testing.T) {
	r := newRental(t, time.Now(), 24*time.Hour)
	next := uuid.New()

	r.ReassignRenter(next)
	assert.True(t, r.IsRenter(next))
}

func TestClose(t *testing.T) {
	r := newRental(t, time.Now(), 24*time.Hour)
	r.Close()
	assert.False(t, r.IsActive())

	var nilRental *rental.Rental
	assert.False(t, nilRental.IsActive())
}
