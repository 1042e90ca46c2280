package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionsSchema accepts level -> [entry] or level -> {dimension -> [entry]},
// where an entry is a bare string or {question, hint?, difficulty?}.
const questionsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "oneOf": [
      {"$ref": "#/$defs/entries"},
      {"type": "object", "additionalProperties": {"$ref": "#/$defs/entries"}}
    ]
  },
  "$defs": {
    "entries": {"type": "array", "items": {"$ref": "#/$defs/entry"}},
    "entry": {
      "oneOf": [
        {"type": "string", "minLength": 1},
        {
          "type": "object",
          "required": ["question"],
          "properties": {
            "question": {"type": "string", "minLength": 1},
            "hint": {"type": ["string", "null"]},
            "difficulty": {"enum": ["Beginner", "Intermediate", "Advanced", null]}
          }
        }
      ]
    }
  }
}`

// promptsSchema accepts level -> {key -> [string] | {key -> [string]}}.
const promptsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "additionalProperties": {
      "oneOf": [
        {"$ref": "#/$defs/strings"},
        {"type": "object", "additionalProperties": {"$ref": "#/$defs/strings"}}
      ]
    }
  },
  "$defs": {
    "strings": {"type": "array", "items": {"type": "string"}}
  }
}`

var schemaSources = map[string]string{
	DocQuestions: questionsSchema,
	DocPrompts:   promptsSchema,
}

// schemaCache caches compiled schemas by document name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateDocument checks a decoded tree against the schema registered for name.
func validateDocument(name string, n *Node) error {
	compiled, err := compiledSchema(name)
	if err != nil {
		return err
	}
	if err := compiled.Validate(n.Value()); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	src, ok := schemaSources[name]
	if !ok {
		return nil, fmt.Errorf("no schema for document %q", name)
	}

	// The compiler wants a parsed JSON value, not raw bytes.
	var def any
	if err := json.Unmarshal([]byte(src), &def); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
