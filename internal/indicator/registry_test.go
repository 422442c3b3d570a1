package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type RegistryTestSuite struct {
	suite.Suite
	registry IndicatorRegistry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = NewIndicatorRegistry()
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	suite.NoError(suite.registry.RegisterIndicator(NewMA()))

	ind, err := suite.registry.GetIndicator(IndicatorTypeSMA)
	suite.NoError(err)
	suite.Equal(IndicatorTypeSMA, ind.Name())
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	suite.NoError(suite.registry.RegisterIndicator(NewRSI()))
	err := suite.registry.RegisterIndicator(NewRSI())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *RegistryTestSuite) TestGetMissing() {
	_, err := suite.registry.GetIndicator(IndicatorTypeEMA)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestRemove() {
	suite.NoError(suite.registry.RegisterIndicator(NewEMA()))
	suite.NoError(suite.registry.RemoveIndicator(IndicatorTypeEMA))
	suite.Error(suite.registry.RemoveIndicator(IndicatorTypeEMA))
	suite.Empty(suite.registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestDefaultRegistry() {
	names := NewDefaultIndicatorRegistry().ListIndicators()
	suite.Len(names, 11)
	suite.Contains(names, IndicatorTypeBollingerUpper)
	suite.Contains(names, IndicatorTypeDonchianLow)
	suite.Equal(IndicatorTypeBollingerLower, names[0])
}
