// Package geo resolves marker coordinates into street addresses.
package geo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"
)

var ErrNoAddress = errors.New("no address found for coordinates")

type reverseFunc func(geocoder.Location) ([]geocoder.Address, error)

// Locator reverse-geocodes coordinates through the Google Geocoding API
// and caches results per coordinate pair.
type Locator struct {
	reverse reverseFunc

	mu    sync.Mutex
	cache map[string]string
}

// NewLocator configures the geocoder with apiKey. The key is process-wide
// in the underlying client, so only one Locator should be created.
func NewLocator(apiKey string) *Locator {
	geocoder.ApiKey = apiKey
	return newLocator(geocoder.GeocodingReverse)
}

func newLocator(reverse reverseFunc) *Locator {
	return &Locator{reverse: reverse, cache: make(map[string]string)}
}

// Locate returns the formatted address closest to lat/lon.
func (l *Locator) Locate(ctx context.Context, lat, lon float64) (string, error) {
	key := fmt.Sprintf("%.5f,%.5f", lat, lon)

	l.mu.Lock()
	addr, ok := l.cache[key]
	l.mu.Unlock()
	if ok {
		return addr, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	addresses, err := l.reverse(geocoder.Location{Latitude: lat, Longitude: lon})
	if err != nil {
		return "", fmt.Errorf("reverse geocode %s: %w", key, err)
	}
	if len(addresses) == 0 || addresses[0].FormattedAddress == "" {
		return "", ErrNoAddress
	}

	addr = addresses[0].FormattedAddress
	l.mu.Lock()
	l.cache[key] = addr
	l.mu.Unlock()
	return addr, nil
}
