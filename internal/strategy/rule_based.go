package strategy

import (
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

const NameRuleBased = "rule_based"

// Condition compares two operands. An operand is a number, an indicator name
// such as "close", or an indicator with a period such as "sma:20".
type Condition struct {
	Left     string `yaml:"left" validate:"required"`
	Operator string `yaml:"operator" validate:"oneof=< <= > >= =="`
	Right    string `yaml:"right" validate:"required"`
	// Multiplier scales the right operand. Zero means 1.
	Multiplier float64 `yaml:"multiplier" validate:"gte=0"`
}

// RuleSet fires when at least MinMatch of its conditions hold.
type RuleSet struct {
	MinMatch   int         `yaml:"min_match" validate:"gte=1"`
	Conditions []Condition `yaml:"conditions" validate:"required,min=1,dive"`
}

type RuleBasedConfig struct {
	Buy  RuleSet `yaml:"buy"`
	Sell RuleSet `yaml:"sell"`
}

// DefaultRuleBasedConfig scores RSI, trend, volume and momentum and trades
// when three of the four agree.
func DefaultRuleBasedConfig() RuleBasedConfig {
	return RuleBasedConfig{
		Buy: RuleSet{
			MinMatch: 3,
			Conditions: []Condition{
				{Left: "rsi:14", Operator: "<", Right: "35"},
				{Left: "sma:10", Operator: ">", Right: "sma:30"},
				{Left: "volume", Operator: ">", Right: "volume_sma:20", Multiplier: 1.2},
				{Left: "momentum:5", Operator: ">", Right: "-2"},
			},
		},
		Sell: RuleSet{
			MinMatch: 3,
			Conditions: []Condition{
				{Left: "rsi:14", Operator: ">", Right: "65"},
				{Left: "sma:10", Operator: "<", Right: "sma:30"},
				{Left: "volume", Operator: ">", Right: "volume_sma:20", Multiplier: 1.1},
				{Left: "momentum:5", Operator: "<", Right: "1"},
			},
		},
	}
}

type operand struct {
	constant  float64
	indicator indicator.Indicator
	period    int
	stream    indicator.Stream
}

func (o operand) value(history types.History) (float64, error) {
	switch {
	case o.stream != nil:
		return o.stream.Value(history)
	case o.indicator != nil:
		return o.indicator.RawValue(history, o.period)
	default:
		return o.constant, nil
	}
}

func (o operand) lookback() int {
	if o.indicator == nil {
		return 0
	}

	return o.indicator.Lookback(o.period)
}

type compiledCondition struct {
	left, right operand
	operator    string
	multiplier  float64
}

type compiledRuleSet struct {
	minMatch   int
	conditions []compiledCondition
}

// RuleBased evaluates buy rules first, then sell rules.
type RuleBased struct {
	buy    compiledRuleSet
	sell   compiledRuleSet
	warmUp int
}

// NewRuleBased creates the strategy from YAML params using the default
// indicator registry.
func NewRuleBased(params []byte) (Strategy, error) {
	return NewRuleBasedWithRegistry(params, indicator.NewDefaultIndicatorRegistry())
}

// NewRuleBasedWithRegistry resolves operands against registry.
func NewRuleBasedWithRegistry(params []byte, registry indicator.IndicatorRegistry) (Strategy, error) {
	cfg := DefaultRuleBasedConfig()
	if err := decodeParams(NameRuleBased, params, &cfg); err != nil {
		return nil, err
	}

	r := &RuleBased{}

	var err error
	if r.buy, err = compileRuleSet(cfg.Buy, registry); err != nil {
		return nil, err
	}

	if r.sell, err = compileRuleSet(cfg.Sell, registry); err != nil {
		return nil, err
	}

	for _, set := range []compiledRuleSet{r.buy, r.sell} {
		for _, c := range set.conditions {
			r.warmUp = max(r.warmUp, c.left.lookback()-1, c.right.lookback()-1)
		}
	}

	return r, nil
}

func compileRuleSet(set RuleSet, registry indicator.IndicatorRegistry) (compiledRuleSet, error) {
	if set.MinMatch > len(set.Conditions) {
		return compiledRuleSet{}, errors.Newf(errors.ErrCodeStrategyConfigError,
			"min_match %d exceeds %d conditions", set.MinMatch, len(set.Conditions))
	}

	out := compiledRuleSet{minMatch: set.MinMatch}

	for _, c := range set.Conditions {
		left, err := parseOperand(c.Left, registry)
		if err != nil {
			return compiledRuleSet{}, err
		}

		right, err := parseOperand(c.Right, registry)
		if err != nil {
			return compiledRuleSet{}, err
		}

		multiplier := c.Multiplier
		if multiplier == 0 {
			multiplier = 1
		}

		out.conditions = append(out.conditions, compiledCondition{
			left:       left,
			right:      right,
			operator:   c.Operator,
			multiplier: multiplier,
		})
	}

	return out, nil
}

func parseOperand(raw string, registry indicator.IndicatorRegistry) (operand, error) {
	raw = strings.TrimSpace(raw)

	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return operand{constant: v}, nil
	}

	name, periodText, hasPeriod := strings.Cut(raw, ":")

	ind, err := registry.GetIndicator(indicator.IndicatorType(name))
	if err != nil {
		return operand{}, errors.Wrapf(errors.ErrCodeIndicatorNotFound, err, "unknown operand %q", raw)
	}

	period := 0

	if hasPeriod {
		period, err = strconv.Atoi(periodText)
		if err != nil || period <= 0 {
			return operand{}, errors.Newf(errors.ErrCodeInvalidPeriod, "invalid period in operand %q", raw)
		}
	}

	if period == 0 && ind.RequiresPeriod() {
		return operand{}, errors.Newf(errors.ErrCodeInvalidPeriod, "operand %q needs a period, as in %s:14", raw, name)
	}

	op := operand{indicator: ind, period: period}
	if streaming, ok := ind.(indicator.StreamingIndicator); ok {
		op.stream = streaming.NewStream(period)
	}

	return op, nil
}

func (r *RuleBased) Name() string { return NameRuleBased }

func (r *RuleBased) WarmUp() int { return r.warmUp }

func (r *RuleBased) Decide(history types.History) types.SignalType {
	if r.buy.matches(history) {
		return types.SignalTypeBuy
	}

	if r.sell.matches(history) {
		return types.SignalTypeSell
	}

	return types.SignalTypeHold
}

func (s compiledRuleSet) matches(history types.History) bool {
	matched := 0

	for _, c := range s.conditions {
		if c.holds(history) {
			matched++
		}
	}

	return matched >= s.minMatch
}

// holds treats an operand that cannot be evaluated yet as a failed condition.
func (c compiledCondition) holds(history types.History) bool {
	left, err := c.left.value(history)
	if err != nil {
		return false
	}

	right, err := c.right.value(history)
	if err != nil {
		return false
	}

	right *= c.multiplier

	switch c.operator {
	case "<":
		return left < right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case ">=":
		return left >= right
	case "==":
		return left == right
	default:
		return false
	}
}
