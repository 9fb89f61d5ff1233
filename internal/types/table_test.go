package types

import "testing"

func TestInternerStableIDs(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Conn")
	b := in.Intern("Conn")
	if a != b {
		t.Errorf("Intern not stable: %v != %v", a, b)
	}
	if in.Name(a) != "Conn" {
		t.Errorf("Name(%v) = %q, want %q", a, in.Name(a), "Conn")
	}
}

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	tests := []struct {
		id   TypeID
		want string
	}{
		{b.Bool, "bool"},
		{b.String, "string"},
		{b.Int, "int"},
		{b.F64, "f64"},
		{b.Byte, "u8"},
	}
	for _, tt := range tests {
		if got := in.Name(tt.id); got != tt.want {
			t.Errorf("Name(%v) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestEmptyNameIsInvalid(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id.IsValid() {
		t.Errorf("Intern(\"\") = %v, want the invalid sentinel", id)
	}
}

func TestNamePanicsOnUnknownID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Name on an unknown id must panic")
		}
	}()
	NewInterner().Name(TypeID(9999))
}
