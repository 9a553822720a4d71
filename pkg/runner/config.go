// Package runner wires data sources, indicator construction and result
// writing into a single configurable computation run.
package runner

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SourceType selects where bars are loaded from.
type SourceType string

const (
	SourceTypeCSV    SourceType = "csv"
	SourceTypeDuckDB SourceType = "duckdb"
)

// IndicatorConfig describes one indicator to compute. Only the parameters
// relevant to the configured kind are read; the rest are ignored.
type IndicatorConfig struct {
	Kind         types.IndicatorType `yaml:"kind" json:"kind" jsonschema:"title=Kind,description=Indicator kind to compute,required" validate:"required"`
	Period       int                 `yaml:"period" json:"period" jsonschema:"title=Period,description=Main lookback period,minimum=1" validate:"omitempty,min=1"`
	FastPeriod   int                 `yaml:"fast_period" json:"fast_period" jsonschema:"title=Fast Period,description=Fast EMA period for MACD,minimum=1" validate:"omitempty,min=1"`
	SlowPeriod   int                 `yaml:"slow_period" json:"slow_period" jsonschema:"title=Slow Period,description=Slow EMA period for MACD,minimum=1" validate:"omitempty,min=1"`
	SignalPeriod int                 `yaml:"signal_period" json:"signal_period" jsonschema:"title=Signal Period,description=Signal EMA period for MACD,minimum=1" validate:"omitempty,min=1"`
	KPeriod      int                 `yaml:"k_period" json:"k_period" jsonschema:"title=K Period,description=Stochastic %K lookback,minimum=1" validate:"omitempty,min=1"`
	DPeriod      int                 `yaml:"d_period" json:"d_period" jsonschema:"title=D Period,description=Stochastic %D smoothing,minimum=1" validate:"omitempty,min=1"`
	Width        float64             `yaml:"width" json:"width" jsonschema:"title=Width,description=Bollinger band width in standard deviations,minimum=0" validate:"omitempty,gt=0"`
	Reversal     float64             `yaml:"reversal" json:"reversal" jsonschema:"title=Reversal,description=ZigZag reversal fraction,minimum=0,maximum=0.5" validate:"omitempty,gt=0,lte=0.5"`
}

// Config is the YAML configuration of a computation run.
type Config struct {
	Source     SourceType        `yaml:"source" json:"source" jsonschema:"title=Source,description=Bar source type,required,enum=csv,enum=duckdb" validate:"required,oneof=csv duckdb"`
	Data       string            `yaml:"data" json:"data" jsonschema:"title=Data,description=Path to the CSV file or DuckDB database,required" validate:"required"`
	Output     string            `yaml:"output" json:"output" jsonschema:"title=Output,description=Directory to write results into,required" validate:"required"`
	Indicators []IndicatorConfig `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators,description=Indicators to compute over the series" validate:"min=1,dive"`
}

// ParseConfig parses and validates a YAML config.
func ParseConfig(yamlConfig []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(yamlConfig, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, "ParseConfig: failed to parse YAML config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfig reads and parses the YAML config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfig, err, "LoadConfig: failed to read config file %s", path)
	}

	return ParseConfig(data)
}

// Validate validates the Config fields.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, "invalid config", err)
	}

	for _, ind := range c.Indicators {
		if ind.Kind == types.IndicatorTypeMACD && ind.FastPeriod > 0 && ind.SlowPeriod > 0 &&
			ind.FastPeriod >= ind.SlowPeriod {
			return errors.Newf(errors.ErrCodeInvalidConfig,
				"invalid config: macd fast_period %d must be less than slow_period %d",
				ind.FastPeriod, ind.SlowPeriod)
		}
	}

	return nil
}

// GenerateSchemaJSON returns the JSON schema of the config format.
func GenerateSchemaJSON() (string, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&Config{})

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, "GenerateSchemaJSON: failed to marshal schema", err)
	}

	return string(schemaBytes), nil
}
