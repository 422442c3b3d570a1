package datasource

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"
)

var intervalMinutes = map[Interval]int{
	Interval1m:  1,
	Interval5m:  5,
	Interval15m: 15,
	Interval30m: 30,
	Interval1h:  60,
	Interval4h:  240,
	Interval6h:  360,
	Interval8h:  480,
	Interval12h: 720,
	Interval1d:  1440,
	Interval1w:  10080,
}

func getIntervalMinutes(interval Interval) (int, error) {
	minutes, ok := intervalMinutes[interval]
	if !ok {
		return 0, fmt.Errorf("unsupported interval: %q", interval)
	}

	return minutes, nil
}

// inRange reports whether t lies within the optional inclusive bounds.
func inRange(t time.Time, start optional.Option[time.Time], end optional.Option[time.Time]) bool {
	if start.IsSome() && t.Before(start.Unwrap()) {
		return false
	}

	if end.IsSome() && t.After(end.Unwrap()) {
		return false
	}

	return true
}
