package prices

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var NumberFormatError = errors.New("price is improperly formatted")

// Bar is a single time-series interval reported by a provider
type Bar struct {
	Time  time.Time
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}

// Bars are ordered oldest first
type Bars []Bar

func (bs Bars) Len() int { return len(bs) }

func (bs Bars) Empty() bool { return len(bs) == 0 }

// First returns the oldest bar, nil when there are none
func (bs Bars) First() *Bar {
	if len(bs) == 0 {
		return nil
	}
	return &bs[0]
}

// Last returns the most recent bar, nil when there are none
func (bs Bars) Last() *Bar {
	if len(bs) == 0 {
		return nil
	}
	return &bs[len(bs)-1]
}

// FromEnd returns the bar n positions before the most recent one; FromEnd(0)
// is Last.
func (bs Bars) FromEnd(n int) *Bar {
	i := len(bs) - 1 - n
	if n < 0 || i < 0 {
		return nil
	}
	return &bs[i]
}

// ParseDecimal reads provider numbers, including the comma grouped strings
// NSE sends ("22,345.60").
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return decimal.Zero, NumberFormatError
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NumberFormatError
	}
	return d, nil
}
