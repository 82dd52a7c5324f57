package debts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// numberField is a raw numeric value read from an upstream item.
type numberField struct {
	value   float64
	present bool
	invalid bool
}

type intField struct {
	value   int
	present bool
	invalid bool
}

type textField struct {
	value   string
	present bool
	invalid bool
}

func (t textField) blank() bool {
	return strings.TrimSpace(t.value) == ""
}

// missing reports a value that may be replaced by a default.
func (t textField) missing() bool {
	return !t.invalid && t.blank()
}

func readNumber(raw map[string]any, key string) numberField {
	v, ok := raw[key]
	if !ok || v == nil {
		return numberField{}
	}

	var s string
	switch n := v.(type) {
	case float64:
		return numberField{value: n, present: true}
	case float32:
		return numberField{value: float64(n), present: true}
	case int:
		return numberField{value: float64(n), present: true}
	case int64:
		return numberField{value: float64(n), present: true}
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
		if s == "" {
			return numberField{}
		}
	case fmt.Stringer:
		s = n.String()
	default:
		return numberField{present: true, invalid: true}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return numberField{present: true, invalid: true}
	}
	return numberField{value: f, present: true}
}

func readInt(raw map[string]any, key string) intField {
	n := readNumber(raw, key)
	if !n.present {
		return intField{}
	}
	if n.invalid || n.value != math.Trunc(n.value) || n.value < math.MinInt32 || n.value > math.MaxInt32 {
		return intField{present: true, invalid: true}
	}
	return intField{value: int(n.value), present: true}
}

func readText(raw map[string]any, key string) textField {
	v, ok := raw[key]
	if !ok || v == nil {
		return textField{}
	}

	switch s := v.(type) {
	case string:
		return textField{value: s, present: true}
	case json.Number:
		return textField{value: s.String(), present: true}
	case float64:
		return textField{value: strconv.FormatFloat(s, 'f', -1, 64), present: true}
	case int:
		return textField{value: strconv.Itoa(s), present: true}
	default:
		return textField{present: true, invalid: true}
	}
}

// cents reads an amount sent as integer cents and scales it to currency units.
func cents(raw map[string]any, key string) numberField {
	n := readNumber(raw, key)
	if n.present && !n.invalid {
		n.value = n.value / 100
	}
	return n
}
