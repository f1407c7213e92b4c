package utils

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// GetSchemaFromConfig reflects config into an inlined JSON schema keyed by
// yaml field names. mappers are tried in order for every type; the first
// non-nil schema wins.
func GetSchemaFromConfig(config any, mappers ...func(reflect.Type) *jsonschema.Schema) (string, error) {
	reflector := jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			for _, mapper := range mappers {
				if schema := mapper(t); schema != nil {
					return schema
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(config)

	jsonSchemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
