package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestOnProcessDataCallbackType() {
	var callback OnProcessDataCallback = func(current int, total int) error {
		return nil
	}

	suite.NotNil(callback)
	err := callback(1, 10)
	suite.NoError(err)
}

func (suite *EngineTestSuite) TestOnProcessDataCallbackWithProgress() {
	var progress []int
	callback := OnProcessDataCallback(func(current int, total int) error {
		progress = append(progress, current)
		return nil
	})

	for i := 1; i <= 5; i++ {
		err := callback(i, 5)
		suite.NoError(err)
	}

	suite.Equal([]int{1, 2, 3, 4, 5}, progress)
}

func (suite *EngineTestSuite) TestOnTradeCallbackError() {
	callback := OnTradeCallback(func(trade types.Trade) error {
		if trade.RealizedPnL < 0 {
			return errors.New("loss")
		}

		return nil
	})

	now := time.Now()
	suite.NoError(callback(types.Trade{EntryTime: now, ExitTime: now.Add(time.Hour), RealizedPnL: 5}))
	suite.Error(callback(types.Trade{EntryTime: now, ExitTime: now.Add(time.Hour), RealizedPnL: -5}))
}

func (suite *EngineTestSuite) TestNilCallbacks() {
	callbacks := LifecycleCallbacks{}

	suite.Nil(callbacks.OnBacktestStart)
	suite.Nil(callbacks.OnBacktestEnd)
	suite.Nil(callbacks.OnProcessData)
	suite.Nil(callbacks.OnTrade)
}
