package source

import (
	"context"
	"errors"
	"net/http"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"

	"github.com/gruis/nsetrack/prices"
)

var NoMetadata = errors.New("no metadata returned")

// FinanceClient implements ChartClient on top of piquette/finance-go.
type FinanceClient struct {
	Now func() time.Time
}

// NewFinanceClient installs hc as the finance-go HTTP client when given.
// finance-go keeps its backend in package state, so the last call wins.
func NewFinanceClient(hc *http.Client) *FinanceClient {
	if hc != nil {
		finance.SetHTTPClient(hc)
	}
	return &FinanceClient{Now: time.Now}
}

// Bars asks for whole days: the chart API takes dates, so the window runs from
// span.Days before today up to tomorrow.
func (c *FinanceClient) Bars(ctx context.Context, symbol string, span Span) (prices.Bars, error) {
	now := c.Now()
	start := now.AddDate(0, 0, -span.Days)
	end := now.AddDate(0, 0, 1)

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(span.Interval),
	})

	var bars prices.Bars
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := iter.Bar()
		bars = append(bars, prices.Bar{
			Time:  time.Unix(int64(b.Timestamp), 0),
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

func (c *FinanceClient) Metadata(ctx context.Context, symbol string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	eq, err := equity.Get(symbol)
	if err != nil {
		return Metadata{}, err
	}
	if eq == nil {
		return Metadata{}, NoMetadata
	}
	return Metadata{MarketCap: eq.MarketCap, Currency: eq.CurrencyID}, nil
}
