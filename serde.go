package ot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSON serialization format:
//   - Skip(n) → non-negative integer n
//   - Delete(n) → negative integer -n
//   - Insert(s) → string "s"
//
// Example: [40, -47, "!"]
//   = Skip(40), Delete(47), Insert("!")
//
// Delete(0) encodes as 0 and decodes back as Skip(0). Both leave the
// document untouched.

// ErrInvalidEncoding is returned when an encoded operation cannot be decoded.
var ErrInvalidEncoding = errors.New("invalid operation encoding")

// MarshalJSON implements json.Marshaler for Transformation.
func (t Transformation) MarshalJSON() ([]byte, error) {
	result := make([]any, len(t.Ops))
	for i, op := range t.Ops {
		switch v := op.(type) {
		case Skip:
			result[i] = json.Number(strconv.FormatUint(v.N, 10))
		case Delete:
			if v.N == 0 {
				result[i] = json.Number("0")
			} else {
				result[i] = json.Number("-" + strconv.FormatUint(v.N, 10))
			}
		case Insert:
			result[i] = v.Text
		default:
			return nil, fmt.Errorf("op %d: %w: %T", i, ErrInvalidEncoding, op)
		}
	}
	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler for Transformation.
func (t *Transformation) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	ops := make([]Operation, 0, len(raw))
	for i, item := range raw {
		var (
			op  Operation
			err error
		)
		switch v := item.(type) {
		case string:
			op = Insert{Text: v}
		case json.Number:
			op, err = parseCount(v.String(), 10)
		default:
			err = fmt.Errorf("%w: unexpected %T", ErrInvalidEncoding, item)
		}
		if err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, op)
	}

	t.Ops = ops
	return nil
}

// parseCount decodes a signed integer literal into a Skip or Delete.
// base is passed to strconv.ParseUint; 0 accepts Go/YAML prefixes and underscores.
func parseCount(s string, base int) (Operation, error) {
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		n, err := strconv.ParseUint(rest, base, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: delete count %q", ErrInvalidEncoding, s)
		}
		return Delete{N: n}, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), base, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: skip count %q", ErrInvalidEncoding, s)
	}
	return Skip{N: n}, nil
}

// ParseTransformation decodes the compact JSON form of a transformation.
func ParseTransformation(s string) (Transformation, error) {
	var t Transformation
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return Transformation{}, fmt.Errorf("parse transformation: %w", err)
	}
	return t, nil
}

// String returns a JSON representation of the transformation.
func (t Transformation) String() string {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// YAML serialization format is a sequence of single-key mappings:
//
//	- skip: 40
//	- delete: 47
//	- insert: "!"
//
// The compact JSON form ([40, -47, "!"]) is accepted on input as well. Counts
// may use any YAML integer spelling (1_000, 0x10, 0o17). Only string scalars
// are inserts; floats, booleans and nulls are rejected as in JSON.

type yamlOp struct {
	Skip   *uint64 `yaml:"skip,omitempty"`
	Delete *uint64 `yaml:"delete,omitempty"`
	Insert *string `yaml:"insert,omitempty"`
}

// MarshalYAML implements yaml.Marshaler for Transformation.
func (t Transformation) MarshalYAML() (any, error) {
	out := make([]yamlOp, len(t.Ops))
	for i, op := range t.Ops {
		switch v := op.(type) {
		case Skip:
			n := v.N
			out[i].Skip = &n
		case Delete:
			n := v.N
			out[i].Delete = &n
		case Insert:
			s := v.Text
			out[i].Insert = &s
		default:
			return nil, fmt.Errorf("op %d: %w: %T", i, ErrInvalidEncoding, op)
		}
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Transformation.
func (t *Transformation) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: %w: expected a sequence of operations", value.Line, ErrInvalidEncoding)
	}

	ops := make([]Operation, 0, len(value.Content))
	for i, node := range value.Content {
		op, err := decodeYAMLOp(node)
		if err != nil {
			return fmt.Errorf("line %d: op %d: %w", node.Line, i, err)
		}
		ops = append(ops, op)
	}

	t.Ops = ops
	return nil
}

func decodeYAMLOp(node *yaml.Node) (Operation, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return decodeYAMLScalar(node)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, fmt.Errorf("%w: want exactly one of skip, delete, insert", ErrInvalidEncoding)
		}
		key, value := node.Content[0], node.Content[1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: %s wants a scalar value", ErrInvalidEncoding, key.Value)
		}

		switch key.Value {
		case "skip", "delete":
			if value.ShortTag() != "!!int" {
				return nil, fmt.Errorf("%w: %s count %q", ErrInvalidEncoding, key.Value, value.Value)
			}
			n, err := strconv.ParseUint(strings.TrimPrefix(yamlInt(value.Value), "+"), 0, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s count %q", ErrInvalidEncoding, key.Value, value.Value)
			}
			if key.Value == "delete" {
				return Delete{N: n}, nil
			}
			return Skip{N: n}, nil
		case "insert":
			if value.ShortTag() != "!!str" {
				return nil, fmt.Errorf("%w: insert wants a string, got %s", ErrInvalidEncoding, value.ShortTag())
			}
			return Insert{Text: value.Value}, nil
		default:
			return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidEncoding, key.Value)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected node kind %d", ErrInvalidEncoding, node.Kind)
	}
}

func decodeYAMLScalar(node *yaml.Node) (Operation, error) {
	switch tag := node.ShortTag(); tag {
	case "!!int":
		return parseCount(yamlInt(node.Value), 0)
	case "!!str":
		return Insert{Text: node.Value}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s %q", ErrInvalidEncoding, tag, node.Value)
	}
}

// yamlInt strips digit separators the way yaml.v3 does before resolving ints.
func yamlInt(s string) string {
	return strings.ReplaceAll(s, "_", "")
}
