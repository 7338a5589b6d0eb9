package prices

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used whenever a provider does not report a usable one
const DefaultCurrency = "INR"

var hundred = decimal.NewFromInt(100)

// Record is one quote for one index, produced per fetch and replaced on the
// next update.
type Record struct {
	Symbol        string
	Source        string
	Current       decimal.Decimal
	Open          decimal.Decimal
	PreviousClose decimal.Decimal
	Time          time.Time

	// best effort; nil MarketCap means the provider did not say
	Currency  string
	MarketCap *money.Money
}

func (r Record) Change() decimal.Decimal {
	return r.Current.Sub(r.PreviousClose)
}

// ChangePercent is zero when there is no previous close to compare against
func (r Record) ChangePercent() decimal.Decimal {
	if r.PreviousClose.IsZero() {
		return decimal.Zero
	}
	return r.Change().Div(r.PreviousClose).Mul(hundred)
}

// MarketCapDisplay renders the market cap or "N/A"
func (r Record) MarketCapDisplay() string {
	if r.MarketCap == nil {
		return "N/A"
	}
	return r.MarketCap.Display()
}

// Line is the summary line shared by the console and file reports
func (r Record) Line(name string) string {
	return fmt.Sprintf("%s (%s): Current Price: %s, Open Price: %s, Previous Close: %s",
		name, r.Symbol, r.Current.StringFixed(2), r.Open.StringFixed(2), r.PreviousClose.StringFixed(2),
	)
}

// CurrencyCode returns code when go-money knows it, DefaultCurrency otherwise
func CurrencyCode(code string) string {
	if code == "" || money.GetCurrency(code) == nil {
		return DefaultCurrency
	}
	return money.GetCurrency(code).Code
}

// MarketCap converts a whole-unit capitalisation into money, nil when unknown
func MarketCap(amount int64, currency string) *money.Money {
	if amount <= 0 {
		return nil
	}
	c := money.GetCurrency(CurrencyCode(currency))
	minor := amount
	for i := 0; i < c.Fraction; i++ {
		minor *= 10
	}
	return money.New(minor, c.Code)
}
