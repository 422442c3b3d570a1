package engine

import (
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/shopspring/decimal"
)

// Execution describes what the ledger did with a signal.
type Execution struct {
	Executed bool
	Reason   string
}

const (
	reasonOpened           = "opened long position"
	reasonClosed           = "closed long position"
	reasonAlreadyLong      = "already long"
	reasonAlreadyFlat      = "no position to sell"
	reasonInsufficientCash = "insufficient cash for minimum quantity"
)

type openPosition struct {
	quantity        decimal.Decimal
	entryPrice      decimal.Decimal
	entryNotional   decimal.Decimal
	entryCommission decimal.Decimal
	entryTime       time.Time
}

func (p openPosition) costBasis() decimal.Decimal {
	return p.entryNotional.Add(p.entryCommission)
}

// Ledger owns the cash, the single long-or-flat position and the trade log of
// one run. Orders execute at the close of the signal bar.
type Ledger struct {
	fee       commission_fee.CommissionFee
	fraction  decimal.Decimal
	precision int32
	minUnit   decimal.Decimal

	cash     decimal.Decimal
	position *openPosition
	lastMark decimal.Decimal
	trades   []types.Trade
}

// NewLedger creates a flat ledger holding initialCash.
func NewLedger(initialCash float64, fee commission_fee.CommissionFee, positionFraction float64, decimalPrecision int) *Ledger {
	precision := int32(decimalPrecision)

	return &Ledger{
		fee:       fee,
		fraction:  decimal.NewFromFloat(positionFraction),
		precision: precision,
		minUnit:   decimal.New(1, -precision),
		cash:      decimal.NewFromFloat(initialCash),
	}
}

// Apply executes signal against bar and returns the mark-to-market equity at
// the bar's close. Signals that cannot act on the current position are no-ops.
func (l *Ledger) Apply(signal types.SignalType, bar types.MarketData) (types.EquityPoint, Execution, error) {
	price := decimal.NewFromFloat(bar.Close)

	var execution Execution

	switch signal {
	case types.SignalTypeBuy:
		execution = l.buy(price, bar.Time)
	case types.SignalTypeSell:
		execution = l.sell(price, bar.Time)
	case types.SignalTypeHold:
	default:
		return types.EquityPoint{}, Execution{}, errors.Newf(errors.ErrCodeInvalidSignal, "unknown signal %q", signal)
	}

	l.lastMark = price

	return l.equityPoint(bar.Time), execution, nil
}

func (l *Ledger) buy(price decimal.Decimal, t time.Time) Execution {
	if l.position != nil {
		return Execution{Reason: reasonAlreadyLong}
	}

	spend := l.cash.Mul(l.fraction)
	commission := l.fee.Calculate(spend)

	if commission.GreaterThanOrEqual(spend) {
		return Execution{Reason: reasonInsufficientCash}
	}

	quantity := calculateQuantity(spend.Sub(commission), price, l.precision)
	if quantity.LessThan(l.minUnit) {
		return Execution{Reason: reasonInsufficientCash}
	}

	notional := quantity.Mul(price)
	l.cash = l.cash.Sub(notional).Sub(commission)
	l.position = &openPosition{
		quantity:        quantity,
		entryPrice:      price,
		entryNotional:   notional,
		entryCommission: commission,
		entryTime:       t,
	}

	return Execution{Executed: true, Reason: reasonOpened}
}

func (l *Ledger) sell(price decimal.Decimal, t time.Time) Execution {
	if l.position == nil {
		return Execution{Reason: reasonAlreadyFlat}
	}

	p := l.position
	proceeds := p.quantity.Mul(price)
	// a fee never exceeds the proceeds it is charged on
	commission := decimal.Min(l.fee.Calculate(proceeds), proceeds)
	costBasis := p.costBasis()
	pnl := proceeds.Sub(commission).Sub(costBasis)

	returnPct := decimal.Zero
	if costBasis.IsPositive() {
		returnPct = pnl.Div(costBasis).Mul(decimal.NewFromInt(100))
	}

	l.trades = append(l.trades, types.Trade{
		EntryTime:      p.entryTime,
		EntryPrice:     p.entryPrice.InexactFloat64(),
		ExitTime:       t,
		ExitPrice:      price.InexactFloat64(),
		Quantity:       p.quantity.InexactFloat64(),
		CommissionPaid: p.entryCommission.Add(commission).InexactFloat64(),
		RealizedPnL:    pnl.InexactFloat64(),
		ReturnPct:      returnPct.InexactFloat64(),
	})

	l.cash = l.cash.Add(proceeds).Sub(commission)
	l.position = nil

	return Execution{Executed: true, Reason: reasonClosed}
}

func (l *Ledger) positionValue() decimal.Decimal {
	if l.position == nil {
		return decimal.Zero
	}

	return l.position.quantity.Mul(l.lastMark)
}

func (l *Ledger) equityPoint(t time.Time) types.EquityPoint {
	cash := l.cash.InexactFloat64()
	value := l.positionValue().InexactFloat64()

	return types.EquityPoint{
		Time:          t,
		Cash:          cash,
		PositionValue: value,
		TotalEquity:   cash + value,
	}
}

// Position returns the current position marked at the last applied close.
func (l *Ledger) Position() types.Position {
	if l.position == nil {
		return types.Position{Side: types.PositionSideFlat}
	}

	p := l.position

	return types.Position{
		Side:              types.PositionSideLong,
		Quantity:          p.quantity.InexactFloat64(),
		AverageEntryPrice: p.entryPrice.InexactFloat64(),
		CostBasis:         p.costBasis().InexactFloat64(),
		EntryCommission:   p.entryCommission.InexactFloat64(),
		EntryTime:         p.entryTime,
		UnrealizedPnL:     l.positionValue().Sub(p.costBasis()).InexactFloat64(),
	}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() float64 {
	return l.cash.InexactFloat64()
}

// Trades returns a copy of the closed trades.
func (l *Ledger) Trades() []types.Trade {
	out := make([]types.Trade, len(l.trades))
	copy(out, l.trades)

	return out
}

func (l *Ledger) lastTrade() (types.Trade, bool) {
	if len(l.trades) == 0 {
		return types.Trade{}, false
	}

	return l.trades[len(l.trades)-1], true
}
