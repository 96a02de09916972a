package feeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

// FirebaseFeed polls a Realtime Database REST endpoint for the marker
// record and delivers it whenever the body changes.
type FirebaseFeed struct {
	baseURL  string
	auth     string
	interval time.Duration
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

// NewFirebaseFeed creates a feed reading <baseURL>/markers/<marker>.json.
func NewFirebaseFeed(baseURL, auth string, interval time.Duration, client *http.Client) *FirebaseFeed {
	if interval <= 0 {
		interval = time.Second
	}
	return &FirebaseFeed{
		baseURL:  strings.TrimRight(baseURL, "/"),
		auth:     auth,
		interval: interval,
		client:   client,
		circuit:  newBreaker("firebase"),
	}
}

func (f *FirebaseFeed) Name() string {
	return "firebase"
}

// MarkerURL returns the REST URL of a marker record.
func (f *FirebaseFeed) MarkerURL(marker string) string {
	u := fmt.Sprintf("%s/markers/%s.json", f.baseURL, url.PathEscape(marker))
	if f.auth != "" {
		u += "?" + url.Values{"auth": {f.auth}}.Encode()
	}
	return u
}

func (f *FirebaseFeed) Subscribe(ctx context.Context, marker string, h tank.FeedHandler) (tank.Subscription, error) {
	if marker == "" {
		return nil, errMissingMarker
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.poll(ctx, marker, h)
	}()

	return tank.NewSubscription(func() {
		cancel()
		<-done
	}), nil
}

func (f *FirebaseFeed) poll(ctx context.Context, marker string, h tank.FeedHandler) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	var last []byte
	for {
		body, err := f.fetch(ctx, marker)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			// forget the last body so the next good poll is delivered
			last = nil
			h.OnError(fmt.Errorf("%w: %v", tank.ErrFeedConnection, err))
		case last == nil || !bytes.Equal(body, last):
			last = body
			snap, decodeErr := tank.DecodeSnapshot(body)
			if decodeErr != nil {
				h.OnError(decodeErr)
			} else {
				h.OnSnapshot(snap)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (f *FirebaseFeed) fetch(ctx context.Context, marker string) ([]byte, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, f.MarkerURL(marker), nil)
	}

	resp, err := doRequest(ctx, f.client, f.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read firebase response: %w", err)
	}
	log.Debug().Str("marker", marker).Int("bytes", len(body)).Msg("firebase poll")
	return bytes.TrimSpace(body), nil
}
