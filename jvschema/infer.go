package jvschema

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.jvlang.dev/jv/jv"
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// inferType returns the JSON Schema type string for v's kind. Returns an
// empty string for Null (maximally permissive) and for Invalid.
func inferType(v jv.Value) string {
	switch v.Kind() {
	case jv.KindTrue, jv.KindFalse:
		return typeBoolean
	case jv.KindNumber:
		if v.IsInteger() {
			return typeInteger
		}
		return typeNumber
	case jv.KindString:
		return typeString
	case jv.KindArray:
		return typeArray
	case jv.KindObject:
		return typeObject
	default: // Null, Invalid
		return ""
	}
}

// widenType returns the widened type when merging two type strings. Returns
// empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

// inferSchema builds a schema fragment for v, recursing into Array elements
// and Object properties. Every key actually present on an Object is marked
// required for that input; [mergeSchemas]'s Required intersection then
// naturally drops keys that are not present in every merged input.
func (g *Generator) inferSchema(v jv.Value) *jsonschema.Schema {
	switch v.Kind() {
	case jv.KindArray:
		return g.inferArray(v)
	case jv.KindObject:
		return g.inferObject(v)
	default:
		if t := inferType(v); t != "" {
			return &jsonschema.Schema{Type: t}
		}
		return &jsonschema.Schema{}
	}
}

func (g *Generator) inferArray(v jv.Value) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: typeArray}

	n := v.ArrayLength()
	if n == 0 {
		return schema
	}

	var items *jsonschema.Schema
	for i := 0; i < n; i++ {
		elem := v.ArrayGet(i)
		elemSchema := g.inferSchema(elem)
		elem.Free()

		if items == nil {
			items = elemSchema
			continue
		}
		items = mergeSchemas(items, elemSchema)
	}

	schema.Items = items
	return schema
}

func (g *Generator) inferObject(v jv.Value) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema),
	}

	if g.strict {
		schema.AdditionalProperties = FalseSchema()
	} else {
		schema.AdditionalProperties = TrueSchema()
	}

	var order, required []string
	v.ObjectEach(func(k, val jv.Value) bool {
		key := k.StringValue()
		schema.Properties[key] = g.inferSchema(val)
		order = append(order, key)
		required = append(required, key)
		k.Free()
		val.Free()
		return true
	})

	schema.PropertyOrder = order
	schema.Required = required

	if len(schema.Properties) == 0 {
		schema.Properties = nil
		schema.PropertyOrder = nil
	}

	return schema
}
