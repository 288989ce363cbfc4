package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Имена схем ответов бэкенда
const (
	PropertySchema     = "property"
	PropertyPageSchema = "property-page"
)

const schemaBaseURL = "https://property-client.local/schemas/"

//go:embed schemas/*.json
var schemaFiles embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	names := []string{PropertySchema, PropertyPageSchema}
	for _, name := range names {
		raw, err := schemaFiles.ReadFile("schemas/" + name + ".json")
		if err != nil {
			log.Fatalf("failed to read embedded schema %s: %v", name, err)
		}
		if err := compiler.AddResource(schemaURL(name), bytes.NewReader(raw)); err != nil {
			log.Fatalf("failed to register schema %s: %v", name, err)
		}
	}

	for _, name := range names {
		schema, err := compiler.Compile(schemaURL(name))
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", name, err)
		}
		compiledSchemas[name] = schema
	}
}

func schemaURL(name string) string {
	return schemaBaseURL + name + ".json"
}

// ValidateResponse проверяет тело ответа бэкенда по схеме name
func ValidateResponse(name string, body []byte) error {
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("schema '%s' not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("response body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
