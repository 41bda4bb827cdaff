package jvschema

import (
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jvlang.dev/jv/jv"
)

// ErrInvalidInput is returned when an input cannot be decoded as YAML/JSON.
var ErrInvalidInput = errors.New("invalid input")

// Generator produces JSON Schema from decoded JSON/YAML input.
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) { g.title = title }
}

// WithDescription sets the schema description.
func WithDescription(desc string) Option {
	return func(g *Generator) { g.description = desc }
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) { g.id = id }
}

// WithStrict sets additionalProperties: false on inferred objects.
func WithStrict(strict bool) Option {
	return func(g *Generator) { g.strict = strict }
}

// Generate produces a JSON Schema from one or more YAML-or-JSON inputs
// (YAML is a superset of JSON, so both are accepted through the same
// decoder). Schemas inferred from each input are merged with union/widen
// semantics when more than one input is given.
func (g *Generator) Generate(inputs ...[]byte) (*jsonschema.Schema, error) {
	var result *jsonschema.Schema

	if len(inputs) == 0 {
		result = &jsonschema.Schema{}
	} else {
		var schemas []*jsonschema.Schema

		for i, input := range inputs {
			v, err := DecodeYAML(input)
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}

			schemas = append(schemas, g.inferSchema(v))
			v.Free()
		}

		result = schemas[0]
		for i := 1; i < len(schemas); i++ {
			result = mergeSchemas(result, schemas[i])
		}
	}

	result.Schema = "http://json-schema.org/draft-07/schema#"

	if g.title != "" {
		result.Title = g.title
	}
	if g.description != "" {
		result.Description = g.description
	}
	if g.id != "" {
		result.ID = g.id
	}

	if (result.Type == typeObject || result.Properties != nil) && result.AdditionalProperties == nil {
		if g.strict {
			result.AdditionalProperties = FalseSchema()
		} else {
			result.AdditionalProperties = TrueSchema()
		}
	}

	return result, nil
}

// GenerateValue produces a JSON Schema fragment for an already-decoded
// [jv.Value], bypassing input parsing entirely. Useful when the caller
// already has a jv.Value graph in hand (e.g. from [cmd/jvtool]'s inspector).
func (g *Generator) GenerateValue(v jv.Value) *jsonschema.Schema {
	return g.inferSchema(v)
}
