package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

var errNotObject = errors.New("top-level value must be an object")

// decodeJSON decodes data into an order-preserving Object. The token stream
// is walked by hand because map decoding loses key order.
func decodeJSON(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	obj, ok := v.(Object)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if num, isNum := tok.(json.Number); isNum {
		return jsonNumber(num)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := Object{}
		for dec.More() {
			keyTok, keyErr := dec.Token()
			if keyErr != nil {
				return nil, keyErr
			}
			key, isString := keyTok.(string)
			if !isString {
				return nil, fmt.Errorf("object key %v is not a string", keyTok)
			}
			val, valErr := decodeJSONValue(dec)
			if valErr != nil {
				return nil, valErr
			}
			obj = obj.set(key, val)
		}
		if _, err = dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, valErr := decodeJSONValue(dec)
			if valErr != nil {
				return nil, valErr
			}
			arr = append(arr, val)
		}
		if _, err = dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// jsonNumber converts a numeric literal to float64. Literals beyond the
// float64 range become signed infinity instead of failing the document, so
// an oversized value only affects the activity that carries it.
func jsonNumber(num json.Number) (float64, error) {
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

// decodeYAML decodes data through yaml.Node so mapping order survives.
func decodeYAML(data []byte) (Object, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, errNotObject
	}

	v, err := yamlValue(&root)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])
	case yaml.MappingNode:
		obj := Object{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			val, err := yamlValue(valNode)
			if err != nil {
				return nil, err
			}
			obj = obj.set(keyNode.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := yamlValue(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return normalizeNumber(v), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

// normalizeNumber widens YAML integers to float64 so both formats produce
// the same value types.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return v
	}
}
