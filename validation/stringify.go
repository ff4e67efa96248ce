package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotStringable indicates a raw value has no textual rendering.
var ErrNotStringable = errors.New("value cannot be rendered as text")

// Kind classifies the shapes a raw feed value is allowed to take. Feeds
// arrive as decoded JSON, so values are typically string, float64,
// json.Number, bool, or nil; anything else is KindOther.
type Kind int

const (
	// KindNull identifies a nil value.
	KindNull Kind = iota
	// KindText identifies a native string value.
	KindText
	// KindNumber identifies a numeric value of any Go width, including json.Number.
	KindNumber
	// KindBool identifies a boolean value.
	KindBool
	// KindOther identifies every remaining shape (objects, arrays, funcs, ...).
	KindOther
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "other"
	}
}

// KindOf classifies a raw value into one of the accepted shapes.
func KindOf(value any) Kind {
	switch value.(type) {
	case nil:
		return KindNull
	case string:
		return KindText
	case json.Number, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return KindNumber
	case bool:
		return KindBool
	default:
		return KindOther
	}
}

// Stringify renders a raw value as text using one explicit rule per accepted
// shape. It reports whether a conversion was applied: native strings pass
// through with converted=false, every other accepted shape converts with
// converted=true. Null values and shapes without a textual rendering fail
// with ErrNotStringable.
//
// Numeric values are rendered without exponent notation so downstream
// decimal parsing sees plain integer/decimal forms.
func Stringify(value any) (text string, converted bool, err error) {
	switch v := value.(type) {
	case nil:
		return "", false, fmt.Errorf("%w: value is null", ErrNotStringable)
	case string:
		return v, false, nil
	case json.Number:
		return v.String(), true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case int:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int8:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int16:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int32:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint64:
		return strconv.FormatUint(v, 10), true, nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	case fmt.Stringer:
		return v.String(), true, nil
	default:
		return "", false, fmt.Errorf("%w: unsupported type %T", ErrNotStringable, value)
	}
}
