package lullabyte

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

/* ---------- shared test harness ---------- */

// newTestInterp builds an engine with captured stdout, a per-test track
// file, and a pinned random seed.
func newTestInterp(t *testing.T) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ip := New(
		WithStdout(&out),
		WithTrackPath(filepath.Join(t.TempDir(), "track.lul")),
		WithRandomSeed(1),
	)
	return ip, &out
}

func mustDecode(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := DecodeProgram(src)
	if err != nil {
		t.Fatalf("DecodeProgram: %v", err)
	}
	return prog
}

func runSource(t *testing.T, src string) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	ip, out := newTestInterp(t)
	if err := ip.Run(mustDecode(t, src)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return ip, out
}

func runSourceErr(t *testing.T, src string) error {
	t.Helper()
	ip, _ := newTestInterp(t)
	return ip.Run(mustDecode(t, src))
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := ErrKindOf(err); got != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, got, err)
	}
}

func trackContents(t *testing.T, ip *Interpreter) string {
	t.Helper()
	data, err := os.ReadFile(ip.emitter.path)
	if err != nil {
		t.Fatalf("read track file: %v", err)
	}
	return string(data)
}

// wrapMain builds a program with the given globals forms and a main whose
// body is the given statement forms.
func wrapMain(globals string, locals string, body string) string {
	return `(program (globals ` + globals + `) (funcs
		(fun "main" (params) (locals ` + locals + `) (body ` + body + `))))`
}

/* ---------- end-to-end scenarios ---------- */

func Test_Run_main_not_found(t *testing.T) {
	ip, _ := newTestInterp(t)
	err := ip.Run(mustDecode(t, `(program (globals) (funcs))`))
	wantKind(t, err, ErrMainNotFound)
}

func Test_Run_global_assign_and_print(t *testing.T) {
	// int x; void main(){ x = 5; print(x); } → console "5"
	_, out := runSource(t, wrapMain(`(var int "x")`, ``,
		`(expr (assign (id "x") (int 5)))
		 (expr (call "print" (id "x")))`))
	if got := out.String(); got != "5\n" {
		t.Fatalf("console output = %q, want %q", got, "5\n")
	}
}

func Test_Run_no_mixdown_leaves_sentinel(t *testing.T) {
	ip, _ := runSource(t, wrapMain(``, ``, `(expr (int 0))`))
	if got := trackContents(t, ip); got != "x\n" {
		t.Fatalf("track file = %q, want sentinel", got)
	}
}

func Test_Run_sound_pipeline_mixdown(t *testing.T) {
	// sound s; s = setPitches(setDuration(setAmplitude(s,100),1.5),[C2]);
	// mixdown(s) → line 1 "220", line 2 "0[C2]:1.5:100"
	ip, out := runSource(t, wrapMain(`(var sound "s")`, ``,
		`(expr (assign (id "s")
			(call "setPitches"
				(call "setDuration"
					(call "setAmplitude" (id "s") (int 100))
					(double 1.5))
				(array (pitch "C2")))))
		 (expr (call "mixdown" (id "s")))`))
	if got := trackContents(t, ip); got != "220\n0[C2]:1.5:100\n" {
		t.Fatalf("track file = %q", got)
	}
	if !strings.Contains(out.String(), "track 0") {
		t.Fatalf("missing mixdown confirmation, got %q", out.String())
	}
}

func Test_Run_return_value_and_globals_propagate(t *testing.T) {
	src := `(program (globals (var int "g")) (funcs
		(fun "bump" (params "n") (locals) (body
			(expr (assign (id "g") (binop "+" (id "g") (id "n"))))
			(return (id "g"))))
		(fun "main" (params) (locals (var int "a")) (body
			(expr (assign (id "a") (call "bump" (int 3))))
			(expr (assign (id "a") (call "bump" (int 4))))
			(expr (call "print" (id "a")))
			(expr (call "print" (id "g")))))))`
	_, out := runSource(t, src)
	if got := out.String(); got != "7\n7\n" {
		t.Fatalf("console output = %q, want %q", got, "7\n7\n")
	}
}

func Test_Run_fallthrough_call_yields_false(t *testing.T) {
	src := `(program (globals) (funcs
		(fun "noop" (params) (locals) (body (expr (int 1))))
		(fun "main" (params) (locals) (body
			(expr (call "print" (call "noop")))))))`
	_, out := runSource(t, src)
	if got := out.String(); got != "false\n" {
		t.Fatalf("console output = %q, want %q", got, "false\n")
	}
}

func Test_Run_arity_mismatch(t *testing.T) {
	src := `(program (globals) (funcs
		(fun "f" (params "a" "b") (locals) (body (return (id "a"))))
		(fun "main" (params) (locals) (body
			(expr (call "f" (int 1)))))))`
	wantKind(t, runSourceErr(t, src), ErrArityMismatch)
}

func Test_Run_undefined_function(t *testing.T) {
	wantKind(t,
		runSourceErr(t, wrapMain(``, ``, `(expr (call "nope"))`)),
		ErrUndefinedFunction)
}

func Test_Run_locals_default_initialized(t *testing.T) {
	_, out := runSource(t, wrapMain(``,
		`(var int "i") (var double "d") (var bool "b") (var pitch "p") (var sound "s") (var int[] "xs")`,
		`(expr (call "print" (id "i")))
		 (expr (call "print" (id "d")))
		 (expr (call "print" (id "b")))
		 (expr (call "print" (id "p")))
		 (expr (call "print" (id "s")))
		 (expr (call "print" (id "xs")))`))
	want := "0\n0\nfalse\nC0\n|C0|:0:0\n[0]\n"
	if got := out.String(); got != want {
		t.Fatalf("console output = %q, want %q", got, want)
	}
}

func Test_EvalExpr_persistent_globals(t *testing.T) {
	ip, _ := newTestInterp(t)
	if err := ip.DefineGlobal("int", "x"); err != nil {
		t.Fatalf("DefineGlobal: %v", err)
	}
	e, err := DecodeExpr(`(assign (id "x") (int 41))`)
	if err != nil {
		t.Fatalf("DecodeExpr: %v", err)
	}
	if _, err := ip.EvalExpr(e); err != nil {
		t.Fatalf("EvalExpr: %v", err)
	}
	e2, _ := DecodeExpr(`(binop "+" (id "x") (int 1))`)
	v, err := ip.EvalExpr(e2)
	if err != nil {
		t.Fatalf("EvalExpr: %v", err)
	}
	if v.Tag != VTInt || v.Data.(int64) != 42 {
		t.Fatalf("x+1 = %#v, want 42", v)
	}
}
