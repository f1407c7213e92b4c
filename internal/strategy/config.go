package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-macdrsi/internal/indicator"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parameter names as they appear in sweep grids and the result table.
const (
	ParamMACDFast   = "macd_fast"
	ParamMACDSlow   = "macd_slow"
	ParamMACDSignal = "macd_signal"
	ParamRSI        = "rsi"
)

// Config is the parameter block of the MACD/RSI strategy.
type Config struct {
	MACDFast   int `yaml:"macd_fast" json:"macd_fast" validate:"required,gt=0" jsonschema:"title=MACD Fast Period,minimum=1,default=8"`
	MACDSlow   int `yaml:"macd_slow" json:"macd_slow" validate:"required,gt=0,nefield=MACDFast" jsonschema:"title=MACD Slow Period,description=Must differ from the fast period. The two are swapped when slow is the smaller,minimum=1,default=21"`
	MACDSignal int `yaml:"macd_signal" json:"macd_signal" validate:"required,gt=0" jsonschema:"title=MACD Signal Period,minimum=1,default=6"`
	RSIPeriod  int `yaml:"rsi" json:"rsi" validate:"required,gt=0" jsonschema:"title=RSI Period,minimum=1,default=13"`
}

// DefaultConfig returns 8/21/6 with a 13 bar RSI.
func DefaultConfig() Config {
	return Config{
		MACDFast:   8,
		MACDSlow:   21,
		MACDSignal: 6,
		RSIPeriod:  13,
	}
}

// ParseConfig reads a YAML document on top of the defaults and validates it.
func ParseConfig(data string) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(data), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to parse strategy config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// ConfigFromParameters applies a parameter set on top of the defaults. Names
// other than the four strategy parameters are ignored.
func ConfigFromParameters(params types.ParameterSet) (Config, error) {
	return DefaultConfig().WithParameters(params)
}

// WithParameters returns a copy of c with the named parameters replaced and
// validates the result.
func (c Config) WithParameters(params types.ParameterSet) (Config, error) {
	config := Config{
		MACDFast:   params.GetOrDefault(ParamMACDFast, c.MACDFast),
		MACDSlow:   params.GetOrDefault(ParamMACDSlow, c.MACDSlow),
		MACDSignal: params.GetOrDefault(ParamMACDSignal, c.MACDSignal),
		RSIPeriod:  params.GetOrDefault(ParamRSI, c.RSIPeriod),
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the periods.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy config", err)
	}

	return nil
}

// Parameters returns the config as a parameter set in canonical order.
func (c Config) Parameters() types.ParameterSet {
	return types.NewParameterSet(
		types.Parameter{Name: ParamMACDFast, Value: c.MACDFast},
		types.Parameter{Name: ParamMACDSlow, Value: c.MACDSlow},
		types.Parameter{Name: ParamMACDSignal, Value: c.MACDSignal},
		types.Parameter{Name: ParamRSI, Value: c.RSIPeriod},
	)
}

// FeedConfig returns the indicator periods.
func (c Config) FeedConfig() indicator.FeedConfig {
	return indicator.FeedConfig{
		MACDFast:    c.MACDFast,
		MACDSlow:    c.MACDSlow,
		MACDSignal:  c.MACDSignal,
		RSIPeriod:   c.RSIPeriod,
		HistorySize: 0,
	}
}
