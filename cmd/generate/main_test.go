package main

import (
	"os"
	"path/filepath"
	"testing"

	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/stretchr/testify/suite"
)

type GenerateCmdTestSuite struct {
	suite.Suite
	tempDir string
}

func (suite *GenerateCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *GenerateCmdTestSuite) TestGenerate() {
	dir := filepath.Join(suite.tempDir, "config")
	suite.Require().NoError(generate(dir))

	schema, err := os.ReadFile(filepath.Join(dir, schemaName))
	suite.Require().NoError(err)
	suite.Contains(string(schema), "initial_capital")

	sample, err := os.ReadFile(filepath.Join(dir, sampleConfigName))
	suite.Require().NoError(err)
	suite.Contains(string(sample), "# yaml-language-server: $schema="+schemaName)

	for _, name := range []string{"sma_crossover", "rsi", "macd", "bollinger_bands", "breakout", "rule_based"} {
		suite.FileExists(filepath.Join(dir, "strategies", name+".json"))
	}

	rsi, err := os.ReadFile(filepath.Join(dir, "strategies", "rsi.json"))
	suite.Require().NoError(err)
	suite.Contains(string(rsi), "oversold")
}

func (suite *GenerateCmdTestSuite) TestSampleConfigParses() {
	dir := filepath.Join(suite.tempDir, "config")
	suite.Require().NoError(generate(dir))

	content, err := os.ReadFile(filepath.Join(dir, sampleConfigName))
	suite.Require().NoError(err)

	config, err := engine.ParseConfig(string(content))
	suite.Require().NoError(err)

	expected := engine.EmptyConfig()
	expected.InitialCapital = 10000
	suite.Equal(expected, config)
}

func (suite *GenerateCmdTestSuite) TestSampleConfigNotOverwritten() {
	dir := filepath.Join(suite.tempDir, "config")
	suite.Require().NoError(generate(dir))

	samplePath := filepath.Join(dir, sampleConfigName)
	suite.Require().NoError(os.WriteFile(samplePath, []byte("initial_capital: 500\n"), 0644))

	suite.Require().NoError(generate(dir))

	content, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal("initial_capital: 500\n", string(content))
}

func (suite *GenerateCmdTestSuite) TestGenerateSchemaFile() {
	schemaPath := filepath.Join(suite.tempDir, "test-schema", "schema.json")

	err := generateSchemaFile(engine.EmptyConfig(), schemaPath)
	suite.Require().NoError(err)

	content, err := os.ReadFile(schemaPath)
	suite.Require().NoError(err)
	suite.NotEmpty(content)
}

func (suite *GenerateCmdTestSuite) TestGenerateSchemaFileInvalidPath() {
	blocker := filepath.Join(suite.tempDir, "blocker")
	suite.Require().NoError(os.WriteFile(blocker, []byte("x"), 0644))

	err := generateSchemaFile(engine.EmptyConfig(), filepath.Join(blocker, "schema.json"))
	suite.Error(err)
	suite.Contains(err.Error(), "failed to")
}

func (suite *GenerateCmdTestSuite) TestGenerateStrategySchemaUnknown() {
	err := generateStrategySchema("missing", filepath.Join(suite.tempDir, "missing.json"))
	suite.Error(err)
	suite.NoFileExists(filepath.Join(suite.tempDir, "missing.json"))
}

func (suite *GenerateCmdTestSuite) TestValidatePaths() {
	suite.NoError(validatePaths("/some/path/schema.json", "/some/path/config.yaml"))

	err := validatePaths("", "/some/path/config.yaml")
	suite.Error(err)
	suite.Contains(err.Error(), "schema path cannot be empty")

	err = validatePaths("/some/path/schema.json", "")
	suite.Error(err)
	suite.Contains(err.Error(), "sample config path cannot be empty")
}

func (suite *GenerateCmdTestSuite) TestValidateSchemaName() {
	suite.NoError(validateSchemaName("schema.json"))
	suite.NoError(validateSchemaName("my-schema-file.json"))

	err := validateSchemaName("")
	suite.Error(err)
	suite.Contains(err.Error(), "schema name cannot be empty")

	err = validateSchemaName("schema.txt")
	suite.Error(err)
	suite.Contains(err.Error(), "must have .json extension")
}

func (suite *GenerateCmdTestSuite) TestGetSchemaReference() {
	suite.Equal("# yaml-language-server: $schema=test-schema.json\n", getSchemaReference("test-schema.json"))
	suite.Equal("# yaml-language-server: $schema=\n", getSchemaReference(""))
}

func TestGenerateCmdSuite(t *testing.T) {
	suite.Run(t, new(GenerateCmdTestSuite))
}
