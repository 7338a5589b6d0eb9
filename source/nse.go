package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gruis/nsetrack/httpx"
	"github.com/gruis/nsetrack/prices"
)

// nseQuotePath serves one flat quote object per index code. nseindia.com
// itself exposes /api/allIndices behind a session cookie, so nse-url is
// expected to point at a gateway that answers in this shape.
const (
	DefaultNSEURL = "https://www.nseindia.com"
	nseQuotePath  = "/api/index-quote"
)

// DefaultCodes are the index codes the NSE quote endpoint answers for
var DefaultCodes = []string{"NIFTY", "BANKNIFTY", "FINNIFTY", "NIFTYNEXT50", "MIDCPNIFTY"}

type NSEConfig struct {
	BaseURL string
	Codes   []string
}

// NSE is the fallback source, keyed by conventional index codes.
type NSE struct {
	cfg       NSEConfig
	client    *httpx.Client
	supported map[string]struct{}
}

func NewNSE(cfg NSEConfig, client *httpx.Client) *NSE {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNSEURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if len(cfg.Codes) == 0 {
		cfg.Codes = DefaultCodes
	}
	if client == nil {
		client = httpx.New(15 * time.Second)
	}
	supported := make(map[string]struct{}, len(cfg.Codes))
	for _, c := range cfg.Codes {
		supported[c] = struct{}{}
	}
	return &NSE{cfg: cfg, client: client, supported: supported}
}

func (n *NSE) Name() string { return "nse" }

func (n *NSE) Supports(code string) bool {
	_, ok := n.supported[code]
	return ok
}

// Fetch reads the live quote for code. NSE reports no day open here, so the
// day high stands in for it.
func (n *NSE) Fetch(ctx context.Context, code string) (*prices.Record, error) {
	if !n.Supports(code) {
		return nil, fmt.Errorf("%w: %q", UnsupportedIndex, code)
	}

	raw, err := n.get(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", FetchError, code, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no data found for %s", FetchError, code)
	}

	last, err := field(raw, "lastPrice")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", FetchError, code, err)
	}
	high, err := field(raw, "dayHigh")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", FetchError, code, err)
	}
	prev, err := field(raw, "previousClose")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", FetchError, code, err)
	}

	return &prices.Record{
		Symbol:        code,
		Source:        n.Name(),
		Current:       last,
		Open:          high,
		PreviousClose: prev,
		Time:          time.Now(),
		Currency:      prices.DefaultCurrency,
	}, nil
}

func (n *NSE) get(ctx context.Context, code string) (map[string]any, error) {
	u := n.cfg.BaseURL + nseQuotePath + "?" + url.Values{"index": {code}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := n.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", u, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, 1<<20))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return raw, nil
}

func field(raw map[string]any, key string) (decimal.Decimal, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return decimal.Zero, fmt.Errorf("missing %s", key)
	}
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = t
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected %s type %T", key, v)
	}
	d, err := prices.ParseDecimal(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", key, s, err)
	}
	return d, nil
}
