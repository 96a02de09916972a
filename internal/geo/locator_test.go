package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_CachesResult(t *testing.T) {
	calls := 0
	l := newLocator(func(loc geocoder.Location) ([]geocoder.Address, error) {
		calls++
		assert.Equal(t, -23.5614, loc.Latitude)
		return []geocoder.Address{{FormattedAddress: "Av. Paulista, 1578 - Bela Vista, São Paulo - SP"}}, nil
	})

	for i := 0; i < 3; i++ {
		addr, err := l.Locate(context.Background(), -23.5614, -46.6559)
		require.NoError(t, err)
		assert.Equal(t, "Av. Paulista, 1578 - Bela Vista, São Paulo - SP", addr)
	}
	assert.Equal(t, 1, calls)
}

func TestLocator_Errors(t *testing.T) {
	l := newLocator(func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, errors.New("REQUEST_DENIED")
	})
	_, err := l.Locate(context.Background(), 1, 2)
	assert.ErrorContains(t, err, "REQUEST_DENIED")

	l = newLocator(func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, nil
	})
	_, err = l.Locate(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNoAddress)
}

func TestLocator_CancelledContext(t *testing.T) {
	l := newLocator(func(geocoder.Location) ([]geocoder.Address, error) {
		t.Fatal("reverse must not be called")
		return nil, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Locate(ctx, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
