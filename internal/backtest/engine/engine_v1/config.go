package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1Config struct {
	InitialCapital   float64                    `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting cash of every run,minimum=0,default=500"`
	Broker           commission_fee.Broker      `yaml:"broker" json:"broker" validate:"omitempty,oneof=interactive_broker zero_commission percentage" jsonschema:"title=Broker,description=The broker to use for commission calculations"`
	CommissionRate   float64                    `yaml:"commission_rate" json:"commission_rate" validate:"gte=0,lt=1" jsonschema:"title=Commission Rate,description=Share of the trade value charged by the percentage broker,minimum=0,default=0"`
	StartTime        optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime          optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
	DecimalPrecision int                        `yaml:"decimal_precision" json:"decimal_precision" validate:"gte=0,lte=10" jsonschema:"title=Decimal Precision,description=Decimal places of the reported values,minimum=0,default=2"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config.
// Fields missing from the document keep their current values.
func (c *BacktestEngineV1Config) UnmarshalYAML(value *yaml.Node) error {
	type Config struct {
		InitialCapital   *float64               `yaml:"initial_capital"`
		Broker           *commission_fee.Broker `yaml:"broker"`
		CommissionRate   *float64               `yaml:"commission_rate"`
		StartTime        *time.Time             `yaml:"start_time"`
		EndTime          *time.Time             `yaml:"end_time"`
		DecimalPrecision *int                   `yaml:"decimal_precision"`
	}

	var config Config
	if err := value.Decode(&config); err != nil {
		return err
	}

	if config.InitialCapital != nil {
		c.InitialCapital = *config.InitialCapital
	}

	if config.Broker != nil {
		c.Broker = *config.Broker
	}

	if config.CommissionRate != nil {
		c.CommissionRate = *config.CommissionRate
	}

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	if config.DecimalPrecision != nil {
		c.DecimalPrecision = *config.DecimalPrecision
	}

	return nil
}

// Validate checks field ranges and the time window.
func (c BacktestEngineV1Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.StartTime.Unwrap().After(c.EndTime.Unwrap()) {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "start_time %s is after end_time %s",
			c.StartTime.Unwrap().Format(time.RFC3339), c.EndTime.Unwrap().Format(time.RFC3339))
	}

	return nil
}

// CommissionFee returns the fee model of the configured broker.
func (c BacktestEngineV1Config) CommissionFee() commission_fee.CommissionFee {
	return commission_fee.GetCommissionFeeHandler(c.Broker, c.CommissionRate)
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper:                     SchemaMapper,
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// SchemaMapper describes the engine config types that do not reflect cleanly:
// optional times and the broker enum.
func SchemaMapper(t reflect.Type) *jsonschema.Schema {
	if t.String() == "optional.Option[time.Time]" {
		return &jsonschema.Schema{
			Type:   "string",
			Format: "date-time",
		}
	}

	if strings.Contains(t.String(), "commission_fee.Broker") {
		return &jsonschema.Schema{
			Type: "string",
			Enum: commission_fee.AllBrokers,
		}
	}

	return nil
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital:   500,
		Broker:           commission_fee.BrokerZero,
		CommissionRate:   0,
		StartTime:        optional.None[time.Time](),
		EndTime:          optional.None[time.Time](),
		DecimalPrecision: 2,
	}
}
