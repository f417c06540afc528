package lullabyte

import "testing"

// evalIn evaluates one decoded expression against an environment seeded
// with the given globals.
func evalIn(t *testing.T, src string, globals map[string]Value, order []string) (Value, Environment, error) {
	t.Helper()
	ip, _ := newTestInterp(t)
	e, err := DecodeExpr(src)
	if err != nil {
		t.Fatalf("DecodeExpr(%q): %v", src, err)
	}
	return ip.evalExpr(e, envWith(nil, globals, nil, order))
}

func mustEval(t *testing.T, src string, globals map[string]Value, order []string) Value {
	t.Helper()
	v, _, err := evalIn(t, src, globals, order)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func Test_Eval_literals(t *testing.T) {
	if v := mustEval(t, `(int 5)`, nil, nil); v != Int(5) {
		t.Fatalf("int literal = %#v", v)
	}
	if v := mustEval(t, `(double 1.5)`, nil, nil); v != Double(1.5) {
		t.Fatalf("double literal = %#v", v)
	}
	if v := mustEval(t, `(pitch "C2")`, nil, nil); v != Pitch("C2") {
		t.Fatalf("pitch literal = %#v", v)
	}
	v := mustEval(t, `(sound (pitches "C2" "E2") 1.5 100)`, nil, nil)
	if FormatValue(v) != "|C2, E2|:1.5:100" {
		t.Fatalf("sound literal = %q", FormatValue(v))
	}
}

func Test_Eval_identifier(t *testing.T) {
	v := mustEval(t, `(id "x")`, map[string]Value{"x": Int(7)}, []string{"x"})
	if v != Int(7) {
		t.Fatalf("identifier = %#v", v)
	}
	_, _, err := evalIn(t, `(id "y")`, nil, nil)
	wantKind(t, err, ErrUndeclaredIdentifier)
}

func Test_Eval_array_literal(t *testing.T) {
	v := mustEval(t, `(array (int 1) (int 2) (int 3))`, nil, nil)
	if FormatValue(v) != "[1, 2, 3]" {
		t.Fatalf("array literal = %q", FormatValue(v))
	}

	_, _, err := evalIn(t, `(array)`, nil, nil)
	wantKind(t, err, ErrEmptyArrayLiteral)

	_, _, err = evalIn(t, `(array (int 1) (bool true))`, nil, nil)
	wantKind(t, err, ErrHeterogeneousArrayLiteral)
}

func Test_Eval_array_literal_threads_env(t *testing.T) {
	// Later elements observe the effects of earlier ones.
	globals := map[string]Value{"x": Int(1)}
	v := mustEval(t, `(array (assign (id "x") (int 9)) (id "x"))`, globals, []string{"x"})
	if FormatValue(v) != "[9, 9]" {
		t.Fatalf("array literal threading = %q", FormatValue(v))
	}
}

func Test_Eval_index_read(t *testing.T) {
	globals := map[string]Value{
		"a": Arr([]Value{Int(10), Int(20), Int(30)}),
		"n": Int(5),
	}
	order := []string{"a", "n"}

	if v := mustEval(t, `(index "a" (int 1))`, globals, order); v != Int(20) {
		t.Fatalf("a[1] = %#v", v)
	}

	_, _, err := evalIn(t, `(index "n" (int 0))`, globals, order)
	wantKind(t, err, ErrNotAnArray)

	_, _, err = evalIn(t, `(index "a" (double 1))`, globals, order)
	wantKind(t, err, ErrInvalidIndex)

	_, _, err = evalIn(t, `(index "a" (int 5))`, globals, order)
	wantKind(t, err, ErrIndexOutOfBounds)

	_, _, err = evalIn(t, `(index "a" (unop "-" (int 1)))`, globals, order)
	wantKind(t, err, ErrIndexOutOfBounds)
}

func Test_Eval_assign_identifier(t *testing.T) {
	globals := map[string]Value{"x": Int(1)}
	v, env, err := evalIn(t, `(assign (id "x") (int 5))`, globals, []string{"x"})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	// Assignment is an expression yielding the assigned value.
	if v != Int(5) {
		t.Fatalf("assign value = %#v", v)
	}
	if got, _ := env.Lookup("x"); got != Int(5) {
		t.Fatalf("assign binding = %#v", got)
	}

	_, _, err = evalIn(t, `(assign (id "x") (double 1.5))`, globals, []string{"x"})
	wantKind(t, err, ErrTypeMismatch)

	_, _, err = evalIn(t, `(assign (id "nope") (int 1))`, nil, nil)
	wantKind(t, err, ErrUndeclaredIdentifier)
}

func Test_Eval_assign_array_compares_element_type(t *testing.T) {
	globals := map[string]Value{"a": Arr([]Value{Int(1)})}

	v, _, err := evalIn(t, `(assign (id "a") (array (int 7) (int 8)))`, globals, []string{"a"})
	if err != nil {
		t.Fatalf("same-element-type array assign: %v", err)
	}
	if FormatValue(v) != "[7, 8]" {
		t.Fatalf("assign value = %q", FormatValue(v))
	}

	_, _, err = evalIn(t, `(assign (id "a") (array (bool true)))`, globals, []string{"a"})
	wantKind(t, err, ErrTypeMismatch)
}

func Test_Eval_index_assign_within_bounds(t *testing.T) {
	globals := map[string]Value{"a": Arr([]Value{Int(1), Int(2), Int(3)})}
	_, env, err := evalIn(t, `(assign (index "a" (int 1)) (int 9))`, globals, []string{"a"})
	if err != nil {
		t.Fatalf("index assign: %v", err)
	}
	got, _ := env.Lookup("a")
	if FormatValue(got) != "[1, 9, 3]" {
		t.Fatalf("a = %q", FormatValue(got))
	}
}

func Test_Eval_index_assign_grows(t *testing.T) {
	globals := map[string]Value{"a": Arr([]Value{Int(1), Int(2), Int(3)})}
	_, env, err := evalIn(t, `(assign (index "a" (int 5)) (int 9))`, globals, []string{"a"})
	if err != nil {
		t.Fatalf("growing index assign: %v", err)
	}
	got, _ := env.Lookup("a")
	// Originals unchanged, gaps filled with the assigned value's default,
	// slot 5 holds the value.
	if FormatValue(got) != "[1, 2, 3, 0, 0, 9]" {
		t.Fatalf("a = %q", FormatValue(got))
	}
}

func Test_Eval_index_assign_errors(t *testing.T) {
	globals := map[string]Value{"n": Int(1), "a": Arr([]Value{Int(1)})}
	order := []string{"n", "a"}

	_, _, err := evalIn(t, `(assign (index "n" (int 0)) (int 9))`, globals, order)
	wantKind(t, err, ErrNotAnArray)

	_, _, err = evalIn(t, `(assign (index "a" (bool true)) (int 9))`, globals, order)
	wantKind(t, err, ErrInvalidIndex)

	_, _, err = evalIn(t, `(assign (index "a" (unop "-" (int 1))) (int 9))`, globals, order)
	wantKind(t, err, ErrIndexOutOfBounds)
}

func Test_Eval_binary_left_to_right_threading(t *testing.T) {
	// The right operand sees the left operand's assignment.
	globals := map[string]Value{"x": Int(1)}
	v := mustEval(t, `(binop "+" (assign (id "x") (int 10)) (id "x"))`, globals, []string{"x"})
	if v != Int(20) {
		t.Fatalf("threading result = %#v, want 20", v)
	}
}

func Test_Eval_builtin_shadows_user_function(t *testing.T) {
	// A user function named like a built-in is unreachable: built-ins match
	// first.
	src := `(program (globals) (funcs
		(fun "length" (params "a") (locals) (body (return (int 99))))
		(fun "main" (params) (locals (var int "n")) (body
			(expr (assign (id "n") (call "length" (array (int 1) (int 2)))))
			(expr (call "print" (id "n")))))))`
	_, out := runSource(t, src)
	if got := out.String(); got != "2\n" {
		t.Fatalf("console output = %q, want %q", got, "2\n")
	}
}
