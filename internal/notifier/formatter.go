package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"FxSentinel/internal/model"
	"FxSentinel/internal/strategy"
)

const timeLayout = "2006-01-02 15:04 MST"

// pipPlaces returns the quoting precision of pair: 3 decimals for yen
// crosses, 5 otherwise.
func pipPlaces(pair string) int32 {
	if strings.Contains(pair, "JPY") {
		return 3
	}
	return 5
}

// pipSize is the value of one pip: 0.01 for yen crosses, 0.0001 otherwise.
func pipSize(pair string) decimal.Decimal {
	if strings.Contains(pair, "JPY") {
		return decimal.New(1, -2)
	}
	return decimal.New(1, -4)
}

// FormatPrice rounds p to the quoting precision of pair.
func FormatPrice(pair string, p float64) string {
	return decimal.NewFromFloat(p).StringFixed(pipPlaces(pair))
}

// FormatPips expresses a price distance in pips with one decimal.
func FormatPips(pair string, d float64) string {
	return decimal.NewFromFloat(d).Div(pipSize(pair)).StringFixed(1)
}

func directionEmoji(d model.Direction) string {
	if d == model.DirectionBuy {
		return "🟢"
	}
	return "🔴"
}

func classEmoji(c model.Classification) string {
	switch c {
	case model.ClassBuy:
		return "🟢"
	case model.ClassSell:
		return "🔴"
	default:
		return "⚪"
	}
}

func formatIndicatorValue(pair string, ind model.TechnicalIndicator) string {
	v := decimal.NewFromFloat(ind.Value)
	switch ind.Name {
	case strategy.IndicatorRSI:
		return v.StringFixed(2)
	case strategy.IndicatorSMACross, strategy.IndicatorPriceVsSMA20:
		return v.StringFixed(2) + "%"
	default:
		// MACD histograms are often below one pip.
		return v.StringFixed(pipPlaces(pair) + 1)
	}
}

// FormatSignal formats a trading signal alert.
func FormatSignal(sig *model.TradingSignal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s %s</b> (%s)\n\n", directionEmoji(sig.Direction), sig.Direction, html.EscapeString(sig.Pair), sig.Strength))
	b.WriteString(fmt.Sprintf("Price: %s\n", FormatPrice(sig.Pair, sig.Price)))
	b.WriteString(fmt.Sprintf("Confidence: %s%%\n", decimal.NewFromFloat(sig.Confidence).StringFixed(0)))
	b.WriteString(fmt.Sprintf("Reasons: %s\n", strings.Join(sig.Indicators, ", ")))
	b.WriteString(fmt.Sprintf("Time: %s\n", sig.Time.UTC().Format(timeLayout)))
	return b.String()
}

// FormatAnalysis formats a full market analysis for one pair.
func FormatAnalysis(a *model.MarketAnalysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s | %s\n\n", html.EscapeString(a.Pair), a.Timeframe, a.GeneratedAt.UTC().Format(timeLayout)))

	// Price and range
	b.WriteString(fmt.Sprintf("Price: %s\n", FormatPrice(a.Pair, a.Price)))
	if a.Quote.Bid > 0 {
		b.WriteString(fmt.Sprintf("Bid/Ask: %s / %s (spread %s pips)\n",
			FormatPrice(a.Pair, a.Quote.Bid), FormatPrice(a.Pair, a.Quote.Ask),
			FormatPips(a.Pair, a.Quote.Ask-a.Quote.Bid)))
	}
	if a.BarCount > 0 {
		b.WriteString(fmt.Sprintf("Range (%d bars): %s - %s, position %.0f%%\n",
			a.BarCount, FormatPrice(a.Pair, a.Low), FormatPrice(a.Pair, a.High), a.Position*100))
	}
	b.WriteString("\n")

	if len(a.Indicators) == 0 {
		b.WriteString(fmt.Sprintf("⏳ Insufficient data: %d bars, need %d\n", a.BarCount, strategy.MinBars))
		return b.String()
	}

	// Indicator details
	b.WriteString("📈 <b>Indicators:</b>\n")
	for _, ind := range a.Indicators {
		b.WriteString(fmt.Sprintf("  %s %s: %s (%s)\n",
			classEmoji(ind.Signal), ind.Name, formatIndicatorValue(a.Pair, ind), ind.Signal))
	}
	b.WriteString("\n")

	if len(a.Signals) == 0 {
		b.WriteString("No signal: detectors are silent or tied\n")
		return b.String()
	}
	for i := range a.Signals {
		b.WriteString(FormatSignal(&a.Signals[i]))
	}
	return b.String()
}

// FormatSignalHistory formats the most recent signals of a pair.
func FormatSignalHistory(pair string, sigs []model.TradingSignal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>Recent signals: %s</b>\n\n", html.EscapeString(pair)))
	if len(sigs) == 0 {
		b.WriteString("No signals recorded yet\n")
		return b.String()
	}
	for _, s := range sigs {
		b.WriteString(fmt.Sprintf("%s %s %s %s @ %s (%s%%)\n",
			s.Time.UTC().Format(timeLayout), directionEmoji(s.Direction), s.Direction, s.Strength,
			FormatPrice(pair, s.Price), decimal.NewFromFloat(s.Confidence).StringFixed(0)))
	}
	return b.String()
}

// FormatQuotes formats a quote board.
func FormatQuotes(quotes []model.Quote) string {
	var b strings.Builder
	b.WriteString("💱 <b>Quotes</b>\n\n")
	for _, q := range quotes {
		arrow := "▲"
		if q.Change < 0 {
			arrow = "▼"
		}
		b.WriteString(fmt.Sprintf("%s: %s / %s %s %s%%\n",
			html.EscapeString(q.Pair), FormatPrice(q.Pair, q.Bid), FormatPrice(q.Pair, q.Ask),
			arrow, decimal.NewFromFloat(q.ChangePercent).StringFixed(2)))
	}
	return b.String()
}

// FormatPairs lists the watched pairs.
func FormatPairs(pairs []string) string {
	return "📋 <b>Watched pairs</b>\n\n" + html.EscapeString(strings.Join(pairs, "\n")) + "\n"
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "🤖 <b>FxSentinel commands</b>\n\n" +
		"/analyze PAIR - indicators and signal, e.g. /analyze EUR/USD\n" +
		"/signals PAIR - recent signals for a pair\n" +
		"/quotes - current quotes\n" +
		"/pairs - watched pairs\n" +
		"/reset PAIR - forget the last notified signal\n"
}
