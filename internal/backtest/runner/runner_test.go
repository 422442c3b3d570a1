package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/mocks"
	argoerrors "github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RunnerTestSuite struct {
	suite.Suite
	series   *types.BarSeries
	registry strategy.Registry
	config   engine_v1.BacktestEngineV1Config
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func (suite *RunnerTestSuite) SetupTest() {
	suite.series = mocks.NewBarGenerator(11).GenerateSeries(mocks.CycleConfig(300))
	suite.registry = strategy.NewDefaultRegistry()
	suite.config = engine_v1.TestConfig(10000, 0.001)
}

func (suite *RunnerTestSuite) factory(name string) StrategyFactory {
	return func() (strategy.Strategy, error) {
		return suite.registry.Create(name, nil)
	}
}

func (suite *RunnerTestSuite) jobs(names ...string) []Job {
	jobs := make([]Job, len(names))
	for i, name := range names {
		jobs[i] = Job{
			Name:        name,
			Series:      suite.series,
			NewStrategy: suite.factory(name),
			Config:      suite.config,
		}
	}

	return jobs
}

func (suite *RunnerTestSuite) TestResultsFollowJobOrder() {
	names := suite.registry.List()

	results, err := Run(context.Background(), suite.jobs(names...), Options{Concurrency: 3, Logger: logger.NewNopLogger()})
	suite.Require().NoError(err)
	suite.Require().Len(results, len(names))

	for i, result := range results {
		suite.Equal(names[i], result.Name)
		suite.Equal(names[i], result.Result.Strategy)
		suite.Len(result.Result.EquityCurve, suite.series.Len())
		suite.Equal(suite.series.Len(), result.Report.Bars)
	}
}

func (suite *RunnerTestSuite) TestMatchesSequentialRun() {
	results, err := Run(context.Background(), suite.jobs(strategy.NameSMACrossover, strategy.NameRSI), Options{})
	suite.Require().NoError(err)

	for _, result := range results {
		strat, err := suite.registry.Create(result.Name, nil)
		suite.Require().NoError(err)

		backtest, err := engine_v1.NewBacktestEngineV1WithConfig(suite.config, nil)
		suite.Require().NoError(err)

		expected, err := backtest.Run(context.Background(), suite.series, strat, engine.LifecycleCallbacks{})
		suite.Require().NoError(err)

		suite.Equal(expected.EquityCurve, result.Result.EquityCurve)
		suite.Equal(expected.Trades, result.Result.Trades)
	}
}

func (suite *RunnerTestSuite) TestFactoryErrorFailsBatch() {
	jobs := suite.jobs(strategy.NameSMACrossover, strategy.NameMACD)
	jobs[1].NewStrategy = func() (strategy.Strategy, error) {
		return nil, errors.New("boom")
	}

	results, err := Run(context.Background(), jobs, Options{Concurrency: 1})
	suite.Error(err)
	suite.Nil(results)
	suite.Contains(err.Error(), "job macd")
	suite.Contains(err.Error(), "boom")
}

func (suite *RunnerTestSuite) TestFirstErrorCancelsRemainingJobs() {
	ctrl := gomock.NewController(suite.T())

	failing := mocks.NewMockStrategy(ctrl)
	failing.EXPECT().Name().Return("invalid").AnyTimes()
	failing.EXPECT().WarmUp().Return(0).AnyTimes()
	failing.EXPECT().Decide(gomock.Any()).Return(types.SignalType("SHORT")).AnyTimes()

	jobs := []Job{
		{
			Name:        "invalid",
			Series:      suite.series,
			NewStrategy: func() (strategy.Strategy, error) { return failing, nil },
			Config:      suite.config,
		},
	}
	jobs = append(jobs, suite.jobs(strategy.NameSMACrossover, strategy.NameRSI)...)

	_, err := Run(context.Background(), jobs, Options{Concurrency: 1})
	suite.Error(err)
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeInvalidSignal))
}

func (suite *RunnerTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, suite.jobs(strategy.NameSMACrossover), Options{})
	suite.Error(err)
	suite.True(errors.Is(err, context.Canceled))
}

func (suite *RunnerTestSuite) TestNoJobs() {
	results, err := Run(context.Background(), nil, Options{})
	suite.NoError(err)
	suite.Empty(results)
}
