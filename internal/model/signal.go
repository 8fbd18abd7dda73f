package model

import "time"

// Direction is the side a trading signal recommends.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Strength grades a signal by how many detectors agreed.
type Strength string

const (
	StrengthWeak     Strength = "WEAK"
	StrengthModerate Strength = "MODERATE"
	StrengthStrong   Strength = "STRONG"
)

// TradingSignal is the final output of the signal synthesizer.
type TradingSignal struct {
	ID         string
	Pair       string
	Direction  Direction
	Strength   Strength
	Price      float64
	Time       time.Time
	Indicators []string // reasons from the winning side, in detector order
	Confidence float64  // 0 ~ 100
}
