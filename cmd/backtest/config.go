package main

import (
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	v1 "github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/sweep"
	"github.com/rxtech-lab/argo-macdrsi/internal/version"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/rxtech-lab/argo-macdrsi/pkg/utils"
	"gopkg.in/yaml.v3"
)

// FileConfig is the layout of a backtest config file. The engine and strategy
// sections are kept as YAML and handed to their Initialize methods.
type FileConfig struct {
	Version  string       `yaml:"version"`
	Optimize bool         `yaml:"optimize"`
	Engine   yaml.Node    `yaml:"engine"`
	Strategy yaml.Node    `yaml:"strategy"`
	Sweep    sweep.Config `yaml:"sweep"`
}

// fileSchema mirrors FileConfig with typed sections for schema generation.
type fileSchema struct {
	Version  string                    `yaml:"version" jsonschema:"title=Version,description=Binary version the config was written for"`
	Optimize bool                      `yaml:"optimize" jsonschema:"title=Optimize,description=Sweep the parameter grid instead of a single run,default=false"`
	Engine   v1.BacktestEngineV1Config `yaml:"engine" jsonschema:"title=Engine"`
	Strategy strategy.Config           `yaml:"strategy" jsonschema:"title=Strategy"`
	Sweep    sweep.Config              `yaml:"sweep" jsonschema:"title=Sweep"`
}

// LoadConfig reads and checks the config file at path. A sweep section
// without ranges gets the default grid.
func LoadConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %q", path)
	}

	return ParseConfig(data)
}

// ParseConfig decodes a config file.
func ParseConfig(data []byte) (FileConfig, error) {
	var config FileConfig

	if err := yaml.Unmarshal(data, &config); err != nil {
		return FileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), config.Version); err != nil {
		return FileConfig{}, err
	}

	if err := validator.New().Struct(config.Sweep); err != nil {
		return FileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid sweep config", err)
	}

	if len(config.Sweep.Ranges) == 0 {
		config.Sweep.Ranges = sweep.DefaultRanges()
	}

	return config, nil
}

// EngineYAML returns the engine section, empty when the section is missing.
func (c FileConfig) EngineYAML() (string, error) {
	return sectionYAML(c.Engine)
}

// StrategyYAML returns the strategy section, empty when the section is missing.
func (c FileConfig) StrategyYAML() (string, error) {
	return sectionYAML(c.Strategy)
}

func sectionYAML(node yaml.Node) (string, error) {
	if node.IsZero() {
		return "", nil
	}

	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to encode config section", err)
	}

	return string(out), nil
}

// ConfigSchema returns the JSON schema of the config file.
func ConfigSchema() (string, error) {
	return utils.GetSchemaFromConfig(fileSchema{}, v1.SchemaMapper, rangeValuesMapper)
}

func rangeValuesMapper(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeOf(sweep.RangeValues{}) {
		return nil
	}

	step := jsonschema.NewProperties()
	step.Set("start", &jsonschema.Schema{Type: "integer"})
	step.Set("stop", &jsonschema.Schema{Type: "integer", Description: "exclusive"})
	step.Set("step", &jsonschema.Schema{Type: "integer", Default: 1})

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "array", Items: &jsonschema.Schema{Type: "integer"}},
			{Type: "object", Properties: step, Required: []string{"start", "stop"}},
		},
	}
}
