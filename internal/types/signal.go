package types

// SignalType is a strategy's decision for a single bar.
type SignalType string

const (
	SignalTypeBuy  SignalType = "BUY"
	SignalTypeSell SignalType = "SELL"
	SignalTypeHold SignalType = "HOLD"
)

// IsValid reports whether s is one of the known signal types.
func (s SignalType) IsValid() bool {
	switch s {
	case SignalTypeBuy, SignalTypeSell, SignalTypeHold:
		return true
	default:
		return false
	}
}
