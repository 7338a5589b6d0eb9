package source

import (
	"context"
	"fmt"
	"time"

	"github.com/gruis/nsetrack/prices"
	log "github.com/sirupsen/logrus"
)

// Span selects a window of history and its bar width
type Span struct {
	Days     int
	Interval string
}

var (
	Intraday = Span{Days: 1, Interval: "1m"}
	Daily    = Span{Days: 5, Interval: "1d"}
)

func (s Span) String() string {
	return fmt.Sprintf("%dd/%s", s.Days, s.Interval)
}

// Metadata is descriptive data that is nice to have but never required
type Metadata struct {
	MarketCap int64
	Currency  string
}

// ChartClient is the slice of the Yahoo Finance API the primary source needs.
//
//go:generate mockgen -package=source_test -destination=mock_chart_client_test.go -source=yahoo.go ChartClient
type ChartClient interface {
	Bars(ctx context.Context, symbol string, span Span) (prices.Bars, error)
	Metadata(ctx context.Context, symbol string) (Metadata, error)
}

// Yahoo is the primary source, keyed by Yahoo symbols such as ^NSEI.
type Yahoo struct {
	Client   ChartClient
	Location *time.Location
	Logger   log.FieldLogger
}

func NewYahoo(client ChartClient, loc *time.Location, logger log.FieldLogger) *Yahoo {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Yahoo{Client: client, Location: loc, Logger: logger}
}

func (y *Yahoo) Name() string { return "yahoo" }

// Fetch derives current, open and previous close from intraday and daily
// history. With fewer than two daily bars the previous close is the current
// price, so the reported change is zero.
func (y *Yahoo) Fetch(ctx context.Context, symbol string) (*prices.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", FetchError, symbol, err)
	}
	intraday, err := y.Client.Bars(ctx, symbol, Intraday)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s history: %w", FetchError, symbol, Intraday, err)
	}
	daily, err := y.Client.Bars(ctx, symbol, Daily)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s history: %w", FetchError, symbol, Daily, err)
	}
	if intraday.Empty() && daily.Empty() {
		return nil, fmt.Errorf("%w: %s", DataUnavailable, symbol)
	}

	intraday = lastSession(intraday, y.Location)

	r := &prices.Record{Symbol: symbol, Source: y.Name()}
	if last := intraday.Last(); last != nil {
		r.Current = last.Close
		r.Time = last.Time
		r.Open = intraday.First().Open
	} else {
		last = daily.Last()
		r.Current = last.Close
		r.Time = last.Time
		r.Open = last.Open
	}

	if prev := daily.FromEnd(1); prev != nil {
		r.PreviousClose = prev.Close
	} else {
		r.PreviousClose = r.Current
	}

	y.describe(ctx, r)
	return r, nil
}

// describe fills currency and market cap, substituting defaults on failure
func (y *Yahoo) describe(ctx context.Context, r *prices.Record) {
	r.Currency = prices.DefaultCurrency
	meta, err := y.Client.Metadata(ctx, r.Symbol)
	if err != nil {
		y.Logger.WithError(err).
			WithField("symbol", r.Symbol).
			Debug("metadata unavailable, using defaults")
		return
	}
	r.Currency = prices.CurrencyCode(meta.Currency)
	r.MarketCap = prices.MarketCap(meta.MarketCap, r.Currency)
}

// lastSession keeps only the bars that share the most recent bar's calendar
// day in loc.
func lastSession(bars prices.Bars, loc *time.Location) prices.Bars {
	last := bars.Last()
	if last == nil {
		return bars
	}
	ly, lm, ld := last.Time.In(loc).Date()
	i := len(bars) - 1
	for i > 0 {
		y, m, d := bars[i-1].Time.In(loc).Date()
		if y != ly || m != lm || d != ld {
			break
		}
		i--
	}
	return bars[i:]
}
