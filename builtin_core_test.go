package lullabyte

import "testing"

func Test_Core_length(t *testing.T) {
	v := mustBuiltin(t, "length", Arr([]Value{Int(1), Int(2), Int(3)}))
	if v != Int(3) {
		t.Fatalf("length = %#v", v)
	}
	_, err := callBuiltin(t, "length", Int(3))
	wantKind(t, err, ErrWrongArgumentType)
	_, err = callBuiltin(t, "length")
	wantKind(t, err, ErrWrongArgumentType)
}

func Test_Core_print_returns_zero(t *testing.T) {
	ip, out := newTestInterp(t)
	v, err := ip.builtins["print"](ip, []Value{Pitch("C2")})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if v != Int(0) {
		t.Fatalf("print return = %#v", v)
	}
	if got := out.String(); got != "C2\n" {
		t.Fatalf("print output = %q", got)
	}
}

func Test_Core_randomInt_bounds(t *testing.T) {
	ip, _ := newTestInterp(t)
	for i := 0; i < 100; i++ {
		v, err := ip.builtins["randomInt"](ip, []Value{Int(10)})
		if err != nil {
			t.Fatalf("randomInt: %v", err)
		}
		n := v.Data.(int64)
		if v.Tag != VTInt || n < 0 || n >= 10 {
			t.Fatalf("randomInt(10) = %#v", v)
		}
	}
	_, err := ip.builtins["randomInt"](ip, []Value{Int(0)})
	wantKind(t, err, ErrWrongArgumentType)
	_, err = ip.builtins["randomInt"](ip, []Value{Double(10)})
	wantKind(t, err, ErrWrongArgumentType)
}

func Test_Core_randomInt_seed_is_deterministic(t *testing.T) {
	roll := func() []Value {
		ip := New(WithRandomSeed(7))
		out := make([]Value, 5)
		for i := range out {
			v, err := ip.builtins["randomInt"](ip, []Value{Int(1000)})
			if err != nil {
				t.Fatalf("randomInt: %v", err)
			}
			out[i] = v
		}
		return out
	}
	a, b := roll(), roll()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded sequences differ at %d: %#v vs %#v", i, a[i], b[i])
		}
	}
}

func Test_Core_randomDouble_range(t *testing.T) {
	ip, _ := newTestInterp(t)
	for i := 0; i < 100; i++ {
		v, err := ip.builtins["randomDouble"](ip, []Value{Double(2.5)})
		if err != nil {
			t.Fatalf("randomDouble: %v", err)
		}
		f := v.Data.(float64)
		if v.Tag != VTDouble || f < 0 || f >= 2.5 {
			t.Fatalf("randomDouble(2.5) = %#v", v)
		}
	}
	_, err := ip.builtins["randomDouble"](ip, []Value{Double(0)})
	wantKind(t, err, ErrWrongArgumentType)
	_, err = ip.builtins["randomDouble"](ip, []Value{Int(1)})
	wantKind(t, err, ErrWrongArgumentType)
}
