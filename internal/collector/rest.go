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

// RESTFetcher implements Fetcher against a bar/quote REST API.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	http    *httpClient
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, requestsPerSec int) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		http:    newHTTPClient(proxyURL, requestsPerSec),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape of one bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type restQuote struct {
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	Timestamp int64   `json:"timestamp"`
}

func (f *RESTFetcher) FetchBars(ctx context.Context, pair, timeframe string, limit int) ([]model.Bar, error) {
	q := url.Values{}
	q.Set("symbol", pair)
	q.Set("timeframe", timeframe)
	q.Set("limit", fmt.Sprint(limit))
	body, err := f.http.get(ctx, f.BaseURL+"/api/v1/bars?"+q.Encode(), f.header())
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	var raw []restBar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.Bar, len(raw))
	for i, rb := range raw {
		bars[i] = model.Bar{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *RESTFetcher) FetchQuote(ctx context.Context, pair string) (model.Quote, error) {
	q := url.Values{}
	q.Set("symbol", pair)
	body, err := f.http.get(ctx, f.BaseURL+"/api/v1/quote?"+q.Encode(), f.header())
	if err != nil {
		return model.Quote{}, fmt.Errorf("fetch quote: %w", err)
	}
	var rq restQuote
	if err := json.Unmarshal(body, &rq); err != nil {
		return model.Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	ts := time.Now()
	if rq.Timestamp > 0 {
		ts = time.Unix(rq.Timestamp, 0)
	}
	return model.Quote{
		Pair:   pair,
		Bid:    rq.Bid,
		Ask:    rq.Ask,
		Spread: rq.Ask - rq.Bid,
		Time:   ts,
	}, nil
}

func (f *RESTFetcher) header() http.Header {
	h := http.Header{}
	if f.APIKey != "" {
		h.Set("Authorization", "Bearer "+f.APIKey)
	}
	return h
}
