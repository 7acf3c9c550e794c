package forestx_test

import (
	"testing"

	. "github.com/comalice/forestx"
)

func TestValueEquality(t *testing.T) {
	cases := []struct {
		name string
		a, b RtValue
		eq   bool
	}{
		{"nils", Nil(), Nil(), true},
		{"bools", Bool(true), Bool(true), true},
		{"ints", Int(3), Int(3), true},
		{"int ne", Int(3), Int(4), false},
		{"int vs float", Int(3), Float(3), false},
		{"strings", Str("a"), Str("a"), true},
		{"string vs pointer", Str("a"), Pointer("a"), false},
		{"lists", List(Int(1), Str("x")), List(Int(1), Str("x")), true},
		{"list length", List(Int(1)), List(Int(1), Int(2)), false},
		{"objects ignore order",
			Object(ObjectEntry{"a", Int(1)}, ObjectEntry{"b", Int(2)}),
			Object(ObjectEntry{"b", Int(2)}, ObjectEntry{"a", Int(1)}),
			true},
		{"object mismatch",
			Object(ObjectEntry{"a", Int(1)}),
			Object(ObjectEntry{"a", Int(2)}),
			false},
	}
	for _, c := range cases {
		if got := c.a.Equals(c.b); got != c.eq {
			t.Errorf("%s: %s == %s: expected %v, got %v", c.name, c.a, c.b, c.eq, got)
		}
	}
}

func TestValueCastDereferencesPointer(t *testing.T) {
	bb := NewBlackBoard()
	if err := bb.Put("cell", Int(42)); err != nil {
		t.Fatal(err)
	}
	ctx := NewTreeContextRef(NewTreeContext(bb, nil), 0)

	v, err := Pointer("cell").Cast(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equals(Int(42)) {
		t.Errorf("expected 42, got %s", v)
	}

	// Non-pointer casts to itself.
	v, err = Str("cell").Cast(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equals(Str("cell")) {
		t.Errorf("expected cell, got %s", v)
	}

	// Dangling pointer is an error.
	if _, err := Pointer("missing").Cast(ctx); err == nil {
		t.Error("expected error for dangling pointer")
	}
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf(map[string]any{
		"b": true,
		"a": 3,
		"l": []any{"x", 1.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Object(
		ObjectEntry{"a", Int(3)},
		ObjectEntry{"b", Bool(true)},
		ObjectEntry{"l", List(Str("x"), Float(1.5))},
	)
	if !v.Equals(want) {
		t.Errorf("expected %s, got %s", want, v)
	}

	if _, err := ValueOf(struct{}{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestArgsFindOrIth(t *testing.T) {
	args := RtArgs{
		NewArg("key", Str("k")),
		NewArg("", Int(7)),
	}

	if v, ok := args.Find("key"); !ok || !v.Equals(Str("k")) {
		t.Errorf("Find(key) = %s, %v", v, ok)
	}
	if _, ok := args.Find("missing"); ok {
		t.Error("expected missing name to report false")
	}
	if v, ok := args.Ith(1); !ok || !v.Equals(Int(7)) {
		t.Errorf("Ith(1) = %s, %v", v, ok)
	}
	if _, ok := args.Ith(2); ok {
		t.Error("expected out-of-range index to report false")
	}

	// Named wins over positional.
	if v, ok := args.FindOrIth("key", 1); !ok || !v.Equals(Str("k")) {
		t.Errorf("FindOrIth(key, 1) = %s, %v", v, ok)
	}
	// Positional fallback.
	if v, ok := args.FindOrIth("expected", 1); !ok || !v.Equals(Int(7)) {
		t.Errorf("FindOrIth(expected, 1) = %s, %v", v, ok)
	}
	if _, ok := args.FindOrIth("expected", 5); ok {
		t.Error("expected no fallback to report false")
	}
}
