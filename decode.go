package semequal

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// ParseJSON decodes a single JSON document into a tree. Object keys keep the
// order they're written in & numbers keep their literal text, so no precision
// is lost to float64 conversion. Duplicate keys keep the last value
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "decoding json")
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, errors.New("decoding json: unexpected data after top-level value")
		}
		return nil, errors.Wrap(err, "decoding json")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, errors.Errorf("unexpected delimiter %q", rune(t))
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	}
	return nil, errors.Errorf("unexpected token: %v", tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	b := newObjectBuilder(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("expected object key, got %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", key)
		}
		b.set(key, v)
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return b.obj, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	arr := NewArray()
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", len(arr.Elems))
		}
		arr.Elems = append(arr.Elems, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// ParseYAML decodes a YAML document into a tree, keeping mapping keys in
// document order. Non-string keys are converted to their string form
func ParseYAML(data []byte) (*Node, error) {
	var v interface{}
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	n, err := FromValue(v)
	if err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	return n, nil
}
