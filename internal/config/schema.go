package config

import (
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "specsync-config.schema.json"

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "project": {
      "type": "object",
      "properties": {"root": {"type": "string"}}
    },
    "oracle": {
      "type": "object",
      "properties": {
        "provider": {"enum": ["anthropic", "openai", "gemini", "none", ""]},
        "model": {"type": "string"},
        "api_key": {"type": "string"},
        "base_url": {"type": "string"},
        "max_tokens": {"type": "integer", "minimum": 0},
        "temperature": {"type": "number", "minimum": 0, "maximum": 2}
      }
    },
    "transcripts": {
      "type": "object",
      "properties": {
        "extensions": {"type": "array", "items": {"type": "string"}}
      }
    },
    "excerpt": {
      "type": "object",
      "properties": {
        "budget": {"type": "integer", "minimum": 0},
        "patterns": {"type": "array", "items": {"type": "string"}}
      }
    },
    "catalog": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path", "sections"],
        "properties": {
          "path": {"type": "string", "minLength": 1},
          "sections": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}}
        }
      }
    },
    "stages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "transcript_dir"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "title": {"type": "string"},
          "transcript_dir": {"type": "string", "minLength": 1},
          "draft_targets": {"type": "array", "items": {"type": "string"}},
          "function_list": {"type": "string"},
          "function_list_section": {"type": "string"}
        }
      }
    },
    "requirements": {
      "type": "object",
      "properties": {
        "path": {"type": "string"},
        "sections": {"type": "array", "items": {"type": "string"}}
      }
    },
    "estimate": {
      "type": "object",
      "properties": {
        "function_list": {"type": "string"},
        "template": {"type": "string"},
        "ai_input": {"type": "string"},
        "output": {"type": "string"},
        "recent": {"type": "integer", "minimum": 0},
        "max_tokens": {"type": "integer", "minimum": 0}
      }
    },
    "git": {
      "type": "object",
      "properties": {"stage": {"type": "boolean"}}
    }
  }
}`

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(configSchema)); err != nil {
			schemaErr = err
			return
		}
		schemaCompiled, schemaErr = compiler.Compile(schemaURL)
	})
	return schemaCompiled, schemaErr
}
