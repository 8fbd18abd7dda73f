package strategy

import (
	"time"

	"FxSentinel/internal/model"
)

// Indicator names, in snapshot order.
const (
	IndicatorRSI          = "RSI (14)"
	IndicatorMACD         = "MACD"
	IndicatorSMACross     = "SMA Cross"
	IndicatorPriceVsSMA20 = "Price vs SMA20"
)

const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

func buildIndicators(r *readings, at time.Time) []model.TechnicalIndicator {
	rsi, _ := r.rsi.At(r.last)
	macd, _ := r.macd.MACD.At(r.last)
	signal, _ := r.macd.Signal.At(r.last)
	sma20, _ := r.sma20.At(r.last)
	sma50, _ := r.sma50.At(r.last)

	return []model.TechnicalIndicator{
		{
			Name:   IndicatorRSI,
			Value:  rsi,
			Signal: classifyRSI(rsi),
			Time:   at,
		},
		{
			Name:   IndicatorMACD,
			Value:  macd - signal,
			Signal: classifyMACD(macd, signal),
			Time:   at,
		},
		{
			Name:   IndicatorSMACross,
			Value:  (sma20 - sma50) / sma50 * 100,
			Signal: classifyAbove(sma20, sma50),
			Time:   at,
		},
		{
			Name:   IndicatorPriceVsSMA20,
			Value:  (r.price - sma20) / sma20 * 100,
			Signal: classifyAbove(r.price, sma20),
			Time:   at,
		},
	}
}

func classifyRSI(rsi float64) model.Classification {
	switch {
	case rsi < rsiOversold:
		return model.ClassBuy
	case rsi > rsiOverbought:
		return model.ClassSell
	default:
		return model.ClassNeutral
	}
}

func classifyMACD(macd, signal float64) model.Classification {
	switch {
	case macd > signal:
		return model.ClassBuy
	case macd < signal:
		return model.ClassSell
	default:
		return model.ClassNeutral
	}
}

// classifyAbove has no neutral band: a tie reads as SELL.
func classifyAbove(value, reference float64) model.Classification {
	if value > reference {
		return model.ClassBuy
	}
	return model.ClassSell
}
