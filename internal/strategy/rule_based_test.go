package strategy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const fakeRules = `
buy:
  min_match: 1
  conditions:
    - left: fake:3
      operator: ">"
      right: "50"
sell:
  min_match: 1
  conditions:
    - left: fake:3
      operator: "<"
      right: "10"
`

func setupFakeIndicator(t *testing.T) (*mocks.MockIndicator, indicator.IndicatorRegistry) {
	t.Helper()

	ctrl := gomock.NewController(t)
	fake := mocks.NewMockIndicator(ctrl)
	fake.EXPECT().Name().Return(indicator.IndicatorType("fake")).AnyTimes()
	fake.EXPECT().Lookback(3).Return(4).AnyTimes()
	fake.EXPECT().RequiresPeriod().Return(true).AnyTimes()

	registry := indicator.NewIndicatorRegistry()
	require.NoError(t, registry.RegisterIndicator(fake))

	return fake, registry
}

func history() types.History {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.MarketData, 5)

	for i := range bars {
		bars[i] = types.MarketData{Time: start.AddDate(0, 0, i), Symbol: "T", Open: 1, High: 1, Low: 1, Close: 1, Volume: 1}
	}

	return types.NewHistory(bars)
}

func TestRuleBasedWithMockIndicator(t *testing.T) {
	t.Run("buy rules are evaluated before sell rules", func(t *testing.T) {
		fake, registry := setupFakeIndicator(t)

		gomock.InOrder(
			fake.EXPECT().RawValue(gomock.Any(), 3).Return(60.0, nil),
			fake.EXPECT().RawValue(gomock.Any(), 3).Return(5.0, nil).Times(2),
		)

		s, err := strategy.NewRuleBasedWithRegistry([]byte(fakeRules), registry)
		require.NoError(t, err)
		assert.Equal(t, 3, s.WarmUp())

		assert.Equal(t, types.SignalTypeBuy, s.Decide(history()))
		assert.Equal(t, types.SignalTypeSell, s.Decide(history()))
	})

	t.Run("indicator errors fail the condition", func(t *testing.T) {
		fake, registry := setupFakeIndicator(t)
		fake.EXPECT().RawValue(gomock.Any(), 3).Return(0.0, errors.New("not enough data")).Times(2)

		s, err := strategy.NewRuleBasedWithRegistry([]byte(fakeRules), registry)
		require.NoError(t, err)

		assert.Equal(t, types.SignalTypeHold, s.Decide(history()))
	})

	t.Run("unknown indicator is rejected", func(t *testing.T) {
		_, registry := setupFakeIndicator(t)

		_, err := strategy.NewRuleBasedWithRegistry([]byte(`
buy:
  min_match: 1
  conditions:
    - left: sma:5
      operator: ">"
      right: "1"
`), registry)
		assert.Error(t, err)
	})
}
