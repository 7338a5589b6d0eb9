package source

import (
	"context"
	"errors"

	"github.com/gruis/nsetrack/prices"
)

var (
	// DataUnavailable means the provider answered but had no history at all
	DataUnavailable = errors.New("provider returned no price history")
	// FetchError covers transport failures, bad status codes and malformed payloads
	FetchError = errors.New("quote fetch failed")
	// UnsupportedIndex means the source does not serve the requested key
	UnsupportedIndex = errors.New("index is not supported by this source")
)

// QuoteSource produces a quote for a provider specific key. Returned errors
// always wrap one of DataUnavailable, FetchError or UnsupportedIndex.
type QuoteSource interface {
	Name() string
	Fetch(ctx context.Context, key string) (*prices.Record, error)
}
