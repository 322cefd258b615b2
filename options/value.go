package options

import (
	"strconv"
	"strings"
)

// Lookup resolves a dotted path such as "ticks.font.size". Numeric segments
// index into sequences.
func (n *Node) Lookup(path string) (any, bool) {
	if n == nil || path == "" {
		return nil, false
	}
	var current any = n
	for _, segment := range strings.Split(path, ".") {
		switch c := current.(type) {
		case *Node:
			v, ok := c.Get(segment)
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			current = c[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Resolve returns the value of key for the item at index. Sequence values are
// indexable options: entry index modulo the sequence length is used.
func (n *Node) Resolve(key string, index int) (any, bool) {
	v, ok := n.Get(key)
	if !ok {
		return nil, false
	}
	if seq, isSeq := v.([]any); isSeq {
		if len(seq) == 0 {
			return nil, false
		}
		size := len(seq)
		return seq[((index%size)+size)%size], true
	}
	return v, true
}

// String returns the string value of key, or def when unset or not a string.
func (n *Node) String(key, def string) string {
	if s, ok := n.Value(key).(string); ok {
		return s
	}
	return def
}

// Bool returns the boolean value of key, or def.
func (n *Node) Bool(key string, def bool) bool {
	if b, ok := n.Value(key).(bool); ok {
		return b
	}
	return def
}

// Float returns the numeric value of key, or def.
func (n *Node) Float(key string, def float64) float64 {
	if f, ok := ToFloat(n.Value(key)); ok {
		return f
	}
	return def
}

// Int returns the numeric value of key truncated to int, or def.
func (n *Node) Int(key string, def int) int {
	if f, ok := ToFloat(n.Value(key)); ok {
		return int(f)
	}
	return def
}

// ToFloat converts the numeric kinds produced by YAML/JSON decoding.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
