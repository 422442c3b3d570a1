package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// calculateQuantity returns how many units budget buys at price, truncated to
// precision decimal places.
func calculateQuantity(budget decimal.Decimal, price decimal.Decimal, precision int32) decimal.Decimal {
	if !price.IsPositive() || !budget.IsPositive() {
		return decimal.Zero
	}

	return budget.DivRound(price, precision+8).Truncate(precision)
}

// GetResultFolder returns <output>/<strategy>/<data file>[/<start>_<end>].
func GetResultFolder(outputDir string, strategyName string, dataPath string, config BacktestEngineV1Config) string {
	dataFileName := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	folder := filepath.Join(outputDir, strategyName, dataFileName)

	if config.StartTime.IsSome() || config.EndTime.IsSome() {
		startTimeStr := "all"
		endTimeStr := "all"

		if config.StartTime.IsSome() {
			startTimeStr = config.StartTime.Unwrap().Format("20060102")
		}

		if config.EndTime.IsSome() {
			endTimeStr = config.EndTime.Unwrap().Format("20060102")
		}

		folder = filepath.Join(folder, fmt.Sprintf("%s_%s", startTimeStr, endTimeStr))
	}

	return folder
}
