package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GetSchemaFromConfig reflects a JSON schema from config. Property names
// follow the yaml tags, matching how configs and strategy params are parsed.
func GetSchemaFromConfig(config any) (string, error) {
	reflector := jsonschema.Reflector{
		FieldNameTag: "yaml",
	}
	schema := reflector.Reflect(config)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
