package runner

import (
	"testing"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite is a test suite for the run configuration
type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestParseValidConfig() {
	config, err := ParseConfig([]byte(`
source: csv
data: ./bars.csv
output: ./results
indicators:
  - kind: ma
    period: 20
  - kind: macd
    fast_period: 12
    slow_period: 26
    signal_period: 9
`))
	suite.Require().NoError(err)

	suite.Equal(SourceTypeCSV, config.Source)
	suite.Equal("./bars.csv", config.Data)
	suite.Require().Len(config.Indicators, 2)
	suite.Equal(types.IndicatorTypeMA, config.Indicators[0].Kind)
	suite.Equal(20, config.Indicators[0].Period)
	suite.Equal(26, config.Indicators[1].SlowPeriod)
}

func (suite *ConfigTestSuite) TestParseInvalidConfig() {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "missing source", yaml: "data: ./bars.csv\noutput: ./r\nindicators:\n  - kind: ma\n"},
		{name: "unknown source", yaml: "source: postgres\ndata: ./bars.csv\noutput: ./r\nindicators:\n  - kind: ma\n"},
		{name: "no indicators", yaml: "source: csv\ndata: ./bars.csv\noutput: ./r\nindicators: []\n"},
		{name: "negative period", yaml: "source: csv\ndata: ./bars.csv\noutput: ./r\nindicators:\n  - kind: ma\n    period: -1\n"},
		{name: "macd fast not below slow", yaml: "source: csv\ndata: ./bars.csv\noutput: ./r\nindicators:\n  - kind: macd\n    fast_period: 26\n    slow_period: 12\n"},
		{name: "not yaml", yaml: "{{{"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := ParseConfig([]byte(tc.yaml))
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfig))
		})
	}
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	schema, err := GenerateSchemaJSON()
	suite.Require().NoError(err)
	suite.Contains(schema, "indicators")
	suite.Contains(schema, "duckdb")
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
