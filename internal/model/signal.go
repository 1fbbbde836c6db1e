package model

// Signal is a discrete trading recommendation derived from a prediction.
// It is recomputed on demand and never persisted; the logs store the
// underlying numbers instead.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalBuy        Signal = "BUY"
	SignalHold       Signal = "HOLD"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG_SELL"
)
