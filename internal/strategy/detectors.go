package strategy

// Detector reasons, as they appear in a signal's evidence list.
const (
	ReasonRSIOversold   = "RSI Oversold"
	ReasonRSIOverbought = "RSI Overbought"
	ReasonMACDBullish   = "MACD Bullish Crossover"
	ReasonMACDBearish   = "MACD Bearish Crossover"
	ReasonBBOversold    = "BB Oversold"
	ReasonBBOverbought  = "BB Overbought"
	ReasonGoldenCross   = "Golden Cross"
	ReasonDeathCross    = "Death Cross"
)

type bias int

const (
	biasNone bias = iota
	biasBullish
	biasBearish
)

// vote is one detector's verdict. A detector votes at most once.
type vote struct {
	bias   bias
	reason string
}

// evaluateDetectors runs the detectors in their fixed order.
func evaluateDetectors(r *readings) []vote {
	return []vote{
		detectRSI(r),
		detectMACDCross(r),
		detectBands(r),
		detectMACross(r),
	}
}

// detectRSI votes on RSI(14) leaving the 30-70 band.
func detectRSI(r *readings) vote {
	rsi, ok := r.rsi.At(r.last)
	switch {
	case !ok:
		return vote{}
	case rsi < rsiOversold:
		return vote{biasBullish, ReasonRSIOversold}
	case rsi > rsiOverbought:
		return vote{biasBearish, ReasonRSIOverbought}
	}
	return vote{}
}

// detectMACDCross votes only when MACD crossed its signal line on the last bar.
func detectMACDCross(r *readings) vote {
	switch crossing(r.macd.MACD.At, r.macd.Signal.At, r.last) {
	case biasBullish:
		return vote{biasBullish, ReasonMACDBullish}
	case biasBearish:
		return vote{biasBearish, ReasonMACDBearish}
	}
	return vote{}
}

// detectBands votes when the close touches or leaves the Bollinger envelope.
func detectBands(r *readings) vote {
	lower, okLower := r.bands.Lower.At(r.last)
	upper, okUpper := r.bands.Upper.At(r.last)
	switch {
	case !okLower || !okUpper:
		return vote{}
	case r.price <= lower:
		return vote{biasBullish, ReasonBBOversold}
	case r.price >= upper:
		return vote{biasBearish, ReasonBBOverbought}
	}
	return vote{}
}

// detectMACross votes on SMA20 crossing SMA50 on the last bar.
func detectMACross(r *readings) vote {
	switch crossing(r.sma20.At, r.sma50.At, r.last) {
	case biasBullish:
		return vote{biasBullish, ReasonGoldenCross}
	case biasBearish:
		return vote{biasBearish, ReasonDeathCross}
	}
	return vote{}
}

// crossing compares line a against line b on bar and the bar before it.
// Both lines need a value on both bars, otherwise there is no crossing.
func crossing(a, b func(int) (float64, bool), bar int) bias {
	curA, ok1 := a(bar)
	curB, ok2 := b(bar)
	prevA, ok3 := a(bar - 1)
	prevB, ok4 := b(bar - 1)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return biasNone
	}
	switch {
	case curA > curB && prevA <= prevB:
		return biasBullish
	case curA < curB && prevA >= prevB:
		return biasBearish
	}
	return biasNone
}
