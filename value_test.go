package jsondelta

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEquals(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null/null", Null(), Null(), true},
		{"bool true/number 1", Bool(true), Number(1), true},
		{"bool false/number 0", Bool(false), Number(0), true},
		{"bool true/number 0", Bool(true), Number(0), false},
		{"number/string", Number(1), String("1"), false},
		{"equal strings", String("a"), String("a"), true},
		{"array order matters", Array([]Value{Number(1), Number(2)}), Array([]Value{Number(2), Number(1)}), false},
		{"array equal", Array([]Value{Number(1), Number(2)}), Array([]Value{Number(1), Number(2)}), true},
		{
			"object key order irrelevant",
			Object(map[string]Value{"a": Number(1), "b": Number(2)}),
			Object(map[string]Value{"b": Number(2), "a": Number(1)}),
			true,
		},
		{
			"object missing key",
			Object(map[string]Value{"a": Number(1)}),
			Object(map[string]Value{"a": Number(1), "b": Number(2)}),
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equals(c.a, c.b); got != c.want {
				t.Errorf("Equals(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestDeepCopyIsIndependent(t *testing.T) {
	orig := Object(map[string]Value{
		"list": Array([]Value{Number(1), Number(2)}),
	})
	cp := DeepCopy(orig)

	cp.AsObject()["list"].AsArray()[0] = Number(99)

	if orig.AsObject()["list"].AsArray()[0].AsNumber() != 1 {
		t.Fatal("mutating the copy affected the original")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	src := `{"a":1,"b":[true,null,"x"],"c":{"d":2.5}}`

	var v Value
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		t.Fatal(err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}

	var want, got interface{}
	if err := json.Unmarshal([]byte(src), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "boolean"},
		{Number(1), "number"},
		{String("x"), "string"},
		{Array(nil), "array"},
		{Object(nil), "object"},
	}
	for _, c := range cases {
		if got := TypeOf(c.v); got != c.want {
			t.Errorf("TypeOf(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestRequireObject(t *testing.T) {
	m, err := RequireObject(Object(map[string]Value{"a": Number(1)}))
	if err != nil {
		t.Fatalf("RequireObject on an object: %v", err)
	}
	if len(m) != 1 {
		t.Fatalf("RequireObject returned %v, want 1 field", m)
	}

	if _, err := RequireObject(Array([]Value{Number(1)})); err == nil {
		t.Fatal("RequireObject on an array: want ErrNotAnObject, got nil")
	}
}

func TestRequireList(t *testing.T) {
	vs, err := RequireList(Array([]Value{Number(1), Number(2)}))
	if err != nil {
		t.Fatalf("RequireList on an array: %v", err)
	}
	if len(vs) != 2 {
		t.Fatalf("RequireList returned %v, want 2 elements", vs)
	}

	if _, err := RequireList(Object(nil)); err == nil {
		t.Fatal("RequireList on an object: want ErrNotAList, got nil")
	}
}
