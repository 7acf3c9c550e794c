package forestx

import (
	"sort"
	"strconv"
	"strings"
)

// ValueKind enumerates the variants of RtValue.
type ValueKind int

const (
	NilValue ValueKind = iota
	BoolValue
	IntValue
	FloatValue
	StringValue
	// PointerValue references a blackboard key; Cast dereferences it.
	PointerValue
	ListValue
	ObjectValue
)

func (k ValueKind) String() string {
	switch k {
	case NilValue:
		return "nil"
	case BoolValue:
		return "bool"
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case StringValue:
		return "string"
	case PointerValue:
		return "pointer"
	case ListValue:
		return "list"
	default:
		return "object"
	}
}

// ObjectEntry is one key/value pair of an object value. Entry order is part
// of the value but not of its equality.
type ObjectEntry struct {
	Key   string
	Value RtValue
}

// RtValue is the tagged value used for action arguments and blackboard cell
// contents. Equality is structural (see Equals).
type RtValue struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string // payload for StringValue and PointerValue
	list []RtValue
	obj  []ObjectEntry
}

func Nil() RtValue { return RtValue{kind: NilValue} }
func Bool(v bool) RtValue { return RtValue{kind: BoolValue, b: v} }
func Int(v int64) RtValue { return RtValue{kind: IntValue, i: v} }
func Float(v float64) RtValue { return RtValue{kind: FloatValue, f: v} }
func Str(v string) RtValue { return RtValue{kind: StringValue, s: v} }
func Pointer(key string) RtValue { return RtValue{kind: PointerValue, s: key} }
func List(items ...RtValue) RtValue {
	return RtValue{kind: ListValue, list: items}
}
func Object(entries ...ObjectEntry) RtValue {
	return RtValue{kind: ObjectValue, obj: entries}
}

func (v RtValue) Kind() ValueKind { return v.kind }
func (v RtValue) IsNil() bool { return v.kind == NilValue }

func (v RtValue) AsBool() (bool, bool) {
	return v.b, v.kind == BoolValue
}

func (v RtValue) AsInt() (int64, bool) {
	return v.i, v.kind == IntValue
}

func (v RtValue) AsFloat() (float64, bool) {
	return v.f, v.kind == FloatValue
}

func (v RtValue) AsString() (string, bool) {
	return v.s, v.kind == StringValue
}

// AsPointer returns the referenced blackboard key.
func (v RtValue) AsPointer() (string, bool) {
	return v.s, v.kind == PointerValue
}

func (v RtValue) AsList() ([]RtValue, bool) {
	return v.list, v.kind == ListValue
}

func (v RtValue) AsObject() ([]ObjectEntry, bool) {
	return v.obj, v.kind == ObjectValue
}

// Cast resolves the value against the tick context: a PointerValue is
// dereferenced through the blackboard, every other kind casts to itself.
// A pointer to an absent key is an error, not a Failure.
func (v RtValue) Cast(ctx TreeContextRef) (RtValue, error) {
	if v.kind != PointerValue {
		return v, nil
	}
	cell, ok := ctx.BB().Get(v.s)
	if !ok {
		return RtValue{}, errUex("the pointer %s does not resolve to a blackboard key", v.s)
	}
	return cell, nil
}

// Equals reports structural equality. Int and Float never compare equal to
// each other; object entry order is irrelevant.
func (v RtValue) Equals(o RtValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NilValue:
		return true
	case BoolValue:
		return v.b == o.b
	case IntValue:
		return v.i == o.i
	case FloatValue:
		return v.f == o.f
	case StringValue, PointerValue:
		return v.s == o.s
	case ListValue:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equals(o.list[i]) {
				return false
			}
		}
		return true
	default:
		if len(v.obj) != len(o.obj) {
			return false
		}
		left := make(map[string]RtValue, len(v.obj))
		for _, e := range v.obj {
			left[e.Key] = e.Value
		}
		for _, e := range o.obj {
			lv, ok := left[e.Key]
			if !ok || !lv.Equals(e.Value) {
				return false
			}
		}
		return true
	}
}

func (v RtValue) String() string {
	switch v.kind {
	case NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(v.b)
	case IntValue:
		return strconv.FormatInt(v.i, 10)
	case FloatValue:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringValue:
		return v.s
	case PointerValue:
		return "&" + v.s
	case ListValue:
		parts := make([]string, len(v.list))
		for i, it := range v.list {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		parts := make([]string, len(v.obj))
		for i, e := range v.obj {
			parts[i] = e.Key + ": " + e.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
}

// ValueOf converts a decoded Go value (as produced by yaml/json unmarshaling
// into any) to an RtValue. Map keys are sorted so the resulting object is
// deterministic.
func ValueOf(v any) (RtValue, error) {
	switch x := v.(type) {
	case nil:
		return Nil(), nil
	case RtValue:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint64:
		return Int(int64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Str(x), nil
	case []any:
		items := make([]RtValue, 0, len(x))
		for _, it := range x {
			rv, err := ValueOf(it)
			if err != nil {
				return RtValue{}, err
			}
			items = append(items, rv)
		}
		return List(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]ObjectEntry, 0, len(keys))
		for _, k := range keys {
			rv, err := ValueOf(x[k])
			if err != nil {
				return RtValue{}, err
			}
			entries = append(entries, ObjectEntry{Key: k, Value: rv})
		}
		return Object(entries...), nil
	default:
		return RtValue{}, errUex("unsupported value type %T", v)
	}
}
