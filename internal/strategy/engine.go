package strategy

import (
	"time"

	"FxSentinel/internal/model"
)

// strengthTiers maps the winning side's vote count to a strength.
var strengthTiers = []struct {
	MinVotes int
	Strength model.Strength
}{
	{3, model.StrengthStrong},
	{2, model.StrengthModerate},
	{1, model.StrengthWeak},
}

func mapStrength(votes int) model.Strength {
	for _, t := range strengthTiers {
		if votes >= t.MinVotes {
			return t.Strength
		}
	}
	return model.StrengthWeak
}

// decision is the outcome of tallying detector votes.
type decision struct {
	direction model.Direction
	winning   int
	losing    int
	reasons   []string
}

// decide tallies votes. It reports false on a tie, including zero votes.
func decide(votes []vote) (decision, bool) {
	var bullish, bearish int
	var bullReasons, bearReasons []string
	for _, v := range votes {
		switch v.bias {
		case biasBullish:
			bullish++
			bullReasons = append(bullReasons, v.reason)
		case biasBearish:
			bearish++
			bearReasons = append(bearReasons, v.reason)
		}
	}

	switch {
	case bullish > bearish:
		return decision{model.DirectionBuy, bullish, bearish, bullReasons}, true
	case bearish > bullish:
		return decision{model.DirectionSell, bearish, bullish, bearReasons}, true
	}
	return decision{}, false
}

// synthesize turns detector votes into a signal, or nil when there is no clear bias.
func (a *Analyzer) synthesize(pair string, r *readings, votes []vote, at time.Time) *model.TradingSignal {
	d, ok := decide(votes)
	if !ok {
		return nil
	}
	return &model.TradingSignal{
		ID:         a.newID(),
		Pair:       pair,
		Direction:  d.direction,
		Strength:   mapStrength(d.winning),
		Price:      r.price,
		Time:       at,
		Indicators: d.reasons,
		Confidence: float64(d.winning) / float64(d.winning+d.losing) * 100,
	}
}
