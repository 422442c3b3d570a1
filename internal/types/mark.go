package types

import "time"

// Mark records a non-HOLD decision and what the ledger did with it.
type Mark struct {
	Index    int        `csv:"index" yaml:"index"`
	Time     time.Time  `csv:"time" yaml:"time"`
	Signal   SignalType `csv:"signal" yaml:"signal"`
	Price    float64    `csv:"price" yaml:"price"`
	Executed bool       `csv:"executed" yaml:"executed"`
	Reason   string     `csv:"reason" yaml:"reason"`
}
