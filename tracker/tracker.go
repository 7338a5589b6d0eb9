package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gruis/nsetrack/prices"
	"github.com/gruis/nsetrack/source"
)

// Result is one aggregation cycle. Records is keyed by primary symbol; an
// index with no entry had no data from either source.
type Result struct {
	ID        string
	StartedAt time.Time
	Elapsed   time.Duration
	Records   map[string]*prices.Record
}

// Record returns the record for idx, nil when the cycle has none
func (r Result) Record(idx Index) *prices.Record {
	if r.Records == nil {
		return nil
	}
	return r.Records[idx.Symbol]
}

// Tracker owns the index table, the latest result and the log journal.
type Tracker struct {
	Indices  []Index
	Primary  source.QuoteSource
	Fallback source.QuoteSource
	Logger   *log.Logger
	Now      func() time.Time

	journal *Journal
	current Result
	updated bool
}

func New(t Tracker) *Tracker {
	if len(t.Indices) == 0 {
		t.Indices = DefaultIndices
	}
	if t.Logger == nil {
		t.Logger = log.StandardLogger()
	}
	if t.Now == nil {
		t.Now = time.Now
	}
	t.journal = NewJournal()
	t.Logger.AddHook(t.journal)
	return &t
}

func (t *Tracker) Journal() *Journal { return t.journal }

// Current is the latest result; ok is false until the first Update
func (t *Tracker) Current() (res Result, ok bool) {
	return t.current, t.updated
}

// Update fetches every index in table order, primary first, then the
// fallback keyed by display name. A failed index is logged and skipped; the
// previous result is replaced wholesale.
func (t *Tracker) Update(ctx context.Context) Result {
	res := Result{
		ID:        uuid.NewString(),
		StartedAt: t.Now(),
		Records:   make(map[string]*prices.Record, len(t.Indices)),
	}
	logger := t.Logger.WithField("cycle", res.ID)
	logger.Info("Updating NSE indices data...")

	for _, idx := range t.Indices {
		if r := t.fetch(ctx, logger, idx); r != nil {
			res.Records[idx.Symbol] = r
		}
	}

	res.Elapsed = t.Now().Sub(res.StartedAt)
	t.current = res
	t.updated = true

	logger.WithFields(log.Fields{
		"records": len(res.Records),
		"indices": len(t.Indices),
	}).Infof("Update completed in %.2f seconds.", res.Elapsed.Seconds())
	return res
}

func (t *Tracker) fetch(ctx context.Context, logger *log.Entry, idx Index) *prices.Record {
	r, err := t.Primary.Fetch(ctx, idx.Symbol)
	if err == nil {
		logRecord(logger, idx, r)
		return r
	}
	logger.WithError(err).
		WithFields(log.Fields{"provider": t.Primary.Name(), "symbol": idx.Symbol}).
		Errorf("Error fetching data for %s", idx.Symbol)

	if r, err = t.fallback(ctx, logger, idx.Name); err == nil {
		logRecord(logger, idx, r)
		return r
	}
	logger.WithField("index", idx.Name).Errorf("No data available for %s.", idx.Name)
	return nil
}

func logRecord(logger *log.Entry, idx Index, r *prices.Record) {
	logger.WithFields(log.Fields{
		"index":      idx.Name,
		"symbol":     r.Symbol,
		"provider":   r.Source,
		"price":      r.Current.StringFixed(2),
		"change_pct": r.ChangePercent().StringFixed(2),
		"currency":   r.Currency,
		"market_cap": r.MarketCapDisplay(),
	}).Debug("quote")
}

// FallbackQuote asks the fallback source directly, logging failures the
// same way Update does.
func (t *Tracker) FallbackQuote(ctx context.Context, name string) (*prices.Record, error) {
	return t.fallback(ctx, t.Logger.WithContext(ctx), name)
}

func (t *Tracker) fallback(ctx context.Context, logger *log.Entry, name string) (*prices.Record, error) {
	if t.Fallback == nil {
		return nil, fmt.Errorf("%w: no fallback source", source.UnsupportedIndex)
	}
	r, err := t.Fallback.Fetch(ctx, name)
	switch {
	case err == nil:
		return r, nil
	case errors.Is(err, source.UnsupportedIndex):
		logger.WithField("index", name).Debug("fallback source does not serve index")
	default:
		logger.WithError(err).
			WithFields(log.Fields{"provider": t.Fallback.Name(), "index": name}).
			Errorf("Error fetching data for %s using %s", name, t.Fallback.Name())
	}
	return nil, err
}
