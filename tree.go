package semequal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// NodeType defines all of the atoms in our universe, the kinds of value a
// document tree can hold. The set is fixed by the JSON data model
type NodeType uint8

const (
	// NTUnknown defines a type outside our universe, should never be encountered
	NTUnknown NodeType = iota
	// NTObject is a dictionary of key / value pairs
	NTObject
	// NTArray is an ordered list of values
	NTArray
	NTString
	// NTNumber holds any JSON number, integral or not
	NTNumber
	NTBool
	NTNull
)

func (nt NodeType) String() string {
	switch nt {
	case NTObject:
		return "Object"
	case NTArray:
		return "Array"
	case NTString:
		return "String"
	case NTNumber:
		return "Number"
	case NTBool:
		return "Boolean"
	case NTNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// Node is a value in a document tree. A nil *Node stands for a value that
// is absent, which is different from an explicit null
type Node struct {
	Type NodeType
	// Str holds the value of a string, or the decimal literal of a number as it
	// was written in the source document
	Str  string
	Bool bool
	// Fields lists object members in insertion order. keys are unique
	Fields []Field
	// Elems lists array elements
	Elems []*Node
}

// Field is a single key / value pair of an object
type Field struct {
	Key   string
	Value *Node
}

// NewObject creates an object node. Later fields replace earlier fields with
// the same key, keeping the position of the first one
func NewObject(fields ...Field) *Node {
	b := newObjectBuilder(len(fields))
	for _, f := range fields {
		b.set(f.Key, f.Value)
	}
	return b.obj
}

// NewArray creates an array node
func NewArray(elems ...*Node) *Node {
	if elems == nil {
		elems = []*Node{}
	}
	return &Node{Type: NTArray, Elems: elems}
}

// NewString creates a string node
func NewString(s string) *Node { return &Node{Type: NTString, Str: s} }

// NewNumber creates a number node from a decimal literal like "12.90" or "1e3"
func NewNumber(lit string) *Node { return &Node{Type: NTNumber, Str: lit} }

// NewBool creates a boolean node
func NewBool(b bool) *Node { return &Node{Type: NTBool, Bool: b} }

// NewNull creates an explicit null node
func NewNull() *Node { return &Node{Type: NTNull} }

// Get returns the value stored under key in an object node
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Type != NTObject {
		return nil, false
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Len is the number of members of an object or elements of an array, zero
// for scalars
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Type {
	case NTObject:
		return len(n.Fields)
	case NTArray:
		return len(n.Elems)
	}
	return 0
}

// objectBuilder appends fields to a new object. A repeated key replaces the
// value stored at its first position
type objectBuilder struct {
	obj   *Node
	index map[string]int
}

func newObjectBuilder(size int) *objectBuilder {
	return &objectBuilder{
		obj:   &Node{Type: NTObject, Fields: make([]Field, 0, size)},
		index: make(map[string]int, size),
	}
}

func (b *objectBuilder) set(key string, v *Node) {
	if i, ok := b.index[key]; ok {
		b.obj.Fields[i].Value = v
		return
	}
	b.index[key] = len(b.obj.Fields)
	b.obj.Fields = append(b.obj.Fields, Field{Key: key, Value: v})
}

// FromValue builds a document tree from values created by unmarshaling into
// interface{}, eg. from encoding/json or a YAML decoder. Containers are
// map[string]interface{}, map[interface{}]interface{}, yaml.MapSlice and
// []interface{}. Scalars are string, json.Number, bool, nil, time.Time & the
// int, uint and float types. Map keys carry no order, so they are sorted
func FromValue(v interface{}) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return NewNull(), nil
	case *Node:
		return x, nil
	case string:
		return NewString(x), nil
	case bool:
		return NewBool(x), nil
	case json.Number:
		return NewNumber(x.String()), nil
	case float64:
		return NewNumber(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case float32:
		return NewNumber(strconv.FormatFloat(float64(x), 'g', -1, 32)), nil
	case int:
		return NewNumber(strconv.FormatInt(int64(x), 10)), nil
	case int8:
		return NewNumber(strconv.FormatInt(int64(x), 10)), nil
	case int16:
		return NewNumber(strconv.FormatInt(int64(x), 10)), nil
	case int32:
		return NewNumber(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return NewNumber(strconv.FormatInt(x, 10)), nil
	case uint:
		return NewNumber(strconv.FormatUint(uint64(x), 10)), nil
	case uint8:
		return NewNumber(strconv.FormatUint(uint64(x), 10)), nil
	case uint16:
		return NewNumber(strconv.FormatUint(uint64(x), 10)), nil
	case uint32:
		return NewNumber(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return NewNumber(strconv.FormatUint(x, 10)), nil
	case time.Time:
		return NewString(x.Format(time.RFC3339Nano)), nil
	case []interface{}:
		arr := NewArray(make([]*Node, len(x))...)
		for i, v := range x {
			ch, err := FromValue(v)
			if err != nil {
				return nil, err
			}
			arr.Elems[i] = ch
		}
		return arr, nil
	case map[string]interface{}:
		// gotta sort keys for a stable rendering order :(
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		sort.Strings(names)

		b := newObjectBuilder(len(names))
		for _, name := range names {
			ch, err := FromValue(x[name])
			if err != nil {
				return nil, err
			}
			b.set(name, ch)
		}
		return b.obj, nil
	case yaml.MapSlice:
		b := newObjectBuilder(len(x))
		for _, item := range x {
			ch, err := FromValue(item.Value)
			if err != nil {
				return nil, err
			}
			b.set(keyString(item.Key), ch)
		}
		return b.obj, nil
	case map[interface{}]interface{}:
		names := make([]string, 0, len(x))
		vals := make(map[string]interface{}, len(x))
		for k, v := range x {
			name := keyString(k)
			names = append(names, name)
			vals[name] = v
		}
		sort.Strings(names)
		return FromValue(orderedValues(names, vals))
	default:
		return nil, fmt.Errorf("unexpected type: %T", v)
	}
}

func orderedValues(names []string, vals map[string]interface{}) yaml.MapSlice {
	ms := make(yaml.MapSlice, len(names))
	for i, name := range names {
		ms[i] = yaml.MapItem{Key: name, Value: vals[name]}
	}
	return ms
}

func keyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	if k == nil {
		return "null"
	}
	return fmt.Sprint(k)
}

// numbersEqual compares two decimal literals by value, so "1", "1.0" & "1e0"
// are all the same number. Exponents of any size compare exactly. literals
// that aren't decimals (eg. NaN from a YAML document) only equal themselves
func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	da, ok := parseDecimal(a)
	if !ok {
		return false
	}
	db, ok := parseDecimal(b)
	if !ok {
		return false
	}
	return da == db
}

// decimal is a number in normal form, digits * 10^exp with no leading or
// trailing zeros in digits. Zero has no digits & no sign
type decimal struct {
	neg    bool
	digits string
	exp    int64
}

func parseDecimal(lit string) (decimal, bool) {
	var d decimal
	s := lit
	if s != "" && (s[0] == '-' || s[0] == '+') {
		d.neg = s[0] == '-'
		s = s[1:]
	}

	mant := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant = s[:i]
		exp, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil {
			return decimal{}, false
		}
		d.exp = exp
	}

	whole, frac := mant, ""
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		whole, frac = mant[:i], mant[i+1:]
	}
	if whole+frac == "" || !isDigits(whole) || !isDigits(frac) {
		return decimal{}, false
	}

	digits := strings.TrimLeft(whole+frac, "0")
	trimmed := strings.TrimRight(digits, "0")
	d.exp += int64(len(digits)-len(trimmed)) - int64(len(frac))
	if trimmed == "" {
		return decimal{}, true
	}
	d.digits = trimmed
	return d, true
}

func isDigits(s string) bool {
	return strings.TrimLeft(s, "0123456789") == ""
}
