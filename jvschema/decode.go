// Package jvschema infers a JSON Schema (draft-07) from one or more decoded
// [jv.Value] documents and merges the results.
//
// The pipeline has four stages:
//
//  1. decode each input (JSON or YAML) into a [jv.Value] ([DecodeJSON],
//     [DecodeYAML]);
//  2. infer a schema fragment per value, recursing into Array/Object
//     children (inferSchema in infer.go);
//  3. merge the per-input fragments with union/widen semantics when more
//     than one input is given (mergeSchemas in merge.go);
//  4. apply root-level Generator options (title, description, $id, strict
//     additionalProperties) to the merged result.
package jvschema

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"go.jvlang.dev/jv/jv"
)

// DecodeJSON decodes a single JSON document into a [jv.Value].
func DecodeJSON(data []byte) (jv.Value, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return jv.Value{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fromAny(v), nil
}

// DecodeYAML decodes a single YAML document into a [jv.Value]. YAML's
// richer type set (maps with non-string keys, explicit tags) is normalized
// to JSON's: non-string map keys are rendered with fmt.Sprint.
func DecodeYAML(data []byte) (jv.Value, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return jv.Value{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fromAny(v), nil
}

// fromAny converts a decoded Go value (as produced by encoding/json or
// goccy/go-yaml) into a jv.Value tree.
func fromAny(v any) jv.Value {
	switch x := v.(type) {
	case nil:
		return jv.Null()
	case bool:
		return jv.Bool(x)
	case float64:
		return jv.Number(x)
	case float32:
		return jv.Number(float64(x))
	case int:
		return jv.Number(float64(x))
	case int8:
		return jv.Number(float64(x))
	case int16:
		return jv.Number(float64(x))
	case int32:
		return jv.Number(float64(x))
	case int64:
		return jv.Number(float64(x))
	case uint:
		return jv.Number(float64(x))
	case uint8:
		return jv.Number(float64(x))
	case uint16:
		return jv.Number(float64(x))
	case uint32:
		return jv.Number(float64(x))
	case uint64:
		return jv.Number(float64(x))
	case json.Number:
		return jv.NumberFromLiteral(x.String())
	case string:
		return jv.String(x)
	case []any:
		elems := make([]jv.Value, len(x))
		for i, e := range x {
			elems[i] = fromAny(e)
		}
		return jv.Array(elems...)
	case map[string]any:
		return mapToObject(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return mapToObject(m)
	default:
		return jv.Invalid()
	}
}

func mapToObject(m map[string]any) jv.Value {
	obj := jv.Object()
	for k, val := range m {
		obj = obj.ObjectSet(jv.String(k), fromAny(val))
	}
	return obj
}
