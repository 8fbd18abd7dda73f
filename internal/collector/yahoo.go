package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"FxSentinel/internal/model"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	http    *httpClient
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string, requestsPerSec int) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: yahooChartURL,
		http:    newHTTPClient(proxyURL, requestsPerSec),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooSymbol maps "EUR/USD" to the Yahoo forex ticker "EURUSD=X".
func yahooSymbol(pair string) string {
	if strings.Contains(pair, "/") {
		return strings.ReplaceAll(pair, "/", "") + "=X"
	}
	return pair
}

// yahooInterval maps a timeframe to a Yahoo interval, a look-back range, and
// how many Yahoo bars make one bar of the timeframe.
func yahooInterval(timeframe string) (interval, rng string, group int) {
	switch timeframe {
	case "1M":
		return "1m", "5d", 1
	case "5M":
		return "5m", "1mo", 1
	case "15M":
		return "15m", "1mo", 1
	case "30M":
		return "30m", "1mo", 1
	case "4H":
		return "60m", "6mo", 4
	case "1D":
		return "1d", "2y", 1
	default:
		return "60m", "3mo", 1
	}
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChart(ctx context.Context, pair, interval, rng string) ([]model.Bar, error) {
	u := fmt.Sprintf("%s/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(yahooSymbol(pair)), interval, rng)

	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0")
	body, err := f.http.get(ctx, u, header)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", pair)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	n := len(result.Timestamp)
	for _, series := range [][]interface{}{quote.Open, quote.High, quote.Low, quote.Close} {
		if len(series) < n {
			n = len(series)
		}
	}
	for i, ts := range result.Timestamp[:n] {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 || h == 0 || l == 0 || c == 0 {
			continue // skip null bars (market closed)
		}
		var vol float64
		if i < len(quote.Volume) {
			vol = toFloat(quote.Volume[i])
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: vol,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *YahooFetcher) FetchBars(ctx context.Context, pair, timeframe string, limit int) ([]model.Bar, error) {
	interval, rng, group := yahooInterval(timeframe)
	bars, err := f.fetchChart(ctx, pair, interval, rng)
	if err != nil {
		return nil, err
	}
	if group > 1 {
		bars = Resample(bars, model.TimeframeDuration(timeframe))
	}
	// Trim to requested count
	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, pair string) (model.Quote, error) {
	bars, err := f.fetchChart(ctx, pair, "1m", "1d")
	if err != nil {
		return model.Quote{}, err
	}
	if len(bars) == 0 {
		return model.Quote{}, fmt.Errorf("yahoo: no price data for %s", pair)
	}
	last := bars[len(bars)-1]
	q := model.Quote{Pair: pair, Bid: last.Close, Ask: last.Close, Time: last.Time}
	if len(bars) > 1 {
		prev := bars[len(bars)-2].Close
		q.Change = last.Close - prev
		q.ChangePercent = q.Change / prev * 100
	}
	return q, nil
}
