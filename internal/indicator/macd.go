package indicator

import (
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MACDColumn keeps the MACD and signal lines for a growing prefix of closes.
type MACDColumn struct {
	fast   *EMAColumn
	slow   *EMAColumn
	signal *EMAColumn
	macd   []float64
	synced syncedPrefix
}

// NewMACDColumn validates the spans and creates an empty column.
func NewMACDColumn(fast, slow, signal int) (*MACDColumn, error) {
	for _, p := range []int{fast, slow, signal} {
		if err := checkPeriod(p); err != nil {
			return nil, err
		}
	}

	if fast >= slow {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "fast period %d must be less than slow period %d", fast, slow)
	}

	return &MACDColumn{
		fast:   NewEMAColumn(fast),
		slow:   NewEMAColumn(slow),
		signal: NewEMAColumn(signal),
	}, nil
}

// Sync makes the column cover exactly closes. When closes is a longer prefix
// of the slice synced last time only the new values are consumed; any other
// slice rebuilds the column from scratch.
func (c *MACDColumn) Sync(closes []float64) {
	n := c.synced.resume(closes)
	if n == 0 {
		c.reset()
	}

	for _, x := range closes[n:] {
		c.update(x)
	}

	c.synced.mark(closes)
}

func (c *MACDColumn) update(x float64) {
	line := c.fast.Update(x) - c.slow.Update(x)
	c.macd = append(c.macd, line)
	c.signal.Update(line)
}

func (c *MACDColumn) reset() {
	c.fast.Reset()
	c.slow.Reset()
	c.signal.Reset()
	c.macd = c.macd[:0]
	c.synced = syncedPrefix{}
}

// Len returns the number of synced closes.
func (c *MACDColumn) Len() int {
	return len(c.macd)
}

// MACD returns the MACD line at index i.
func (c *MACDColumn) MACD(i int) float64 {
	return c.macd[i]
}

// Signal returns the signal line at index i.
func (c *MACDColumn) Signal(i int) float64 {
	return c.signal.At(i)
}

// Histogram returns MACD minus signal at index i.
func (c *MACDColumn) Histogram(i int) float64 {
	return c.macd[i] - c.signal.At(i)
}

// MACD computes the MACD and signal lines for every element of closes.
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine []float64, err error) {
	column, err := NewMACDColumn(fast, slow, signal)
	if err != nil {
		return nil, nil, err
	}

	column.Sync(closes)

	return column.macd, column.signal.Values(), nil
}
