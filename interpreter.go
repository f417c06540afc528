// interpreter.go — PUBLIC SURFACE of the Lullabyte execution engine.
//
// OVERVIEW
// ========
// Lullabyte programs arrive pre-parsed (see ast.go and decode.go) and are
// interpreted directly: there is no compiler, no bytecode, and no static
// type checker — type errors surface while evaluating. The engine produces
// two side effects: console output (print, mixdown confirmations) and the
// serialized track file consumed by the external renderer.
//
// What you get in this file:
//   - The Interpreter type and its functional options (stdout writer, track
//     file path, random seed).
//   - Run: locate main, build the global frame from the top-level variable
//     declarations, and execute.
//   - CallFunction / EvalExpr / ExecStmt / DefineGlobal: the entry points
//     the REPL and embedders use against the persistent global frame.
//
// EXECUTION MODEL
// ---------------
// Evaluation is single-threaded, synchronous, and strict. Every evaluation
// step returns (value, environment); environments are immutable pairs of
// (locals, globals) frames and are threaded explicitly, so no step ever
// observes a sibling's uncommitted changes. Function return is an explicit
// unwind signal that discards the callee's locals and carries its globals
// back to the caller. The only run-wide mutable state — tempo and the
// has-emitted flag — lives in the Emitter owned by this Interpreter.
package lullabyte

import (
	"io"
	"math/rand"
	"os"
	"time"
)

// DefaultTrackPath is the track file written when no option overrides it.
const DefaultTrackPath = "track.lul"

// Interpreter executes Lullabyte programs. Construct with New; zero values
// are not usable.
type Interpreter struct {
	funcs    map[string]*FuncDecl
	builtins map[string]builtinFn
	globals  frame
	emitter  *Emitter
	stdout   io.Writer
	rng      *rand.Rand
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithStdout redirects print output and mixdown confirmations.
func WithStdout(w io.Writer) Option {
	return func(ip *Interpreter) { ip.stdout = w }
}

// WithTrackPath sets the track file location.
func WithTrackPath(path string) Option {
	return func(ip *Interpreter) { ip.emitter.path = path }
}

// WithRandomSeed pins the random source, making randomInt/randomDouble
// deterministic.
func WithRandomSeed(seed int64) Option {
	return func(ip *Interpreter) { ip.rng = rand.New(rand.NewSource(seed)) }
}

// New constructs a ready-to-use engine with all built-ins registered and an
// empty global frame.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		funcs:    map[string]*FuncDecl{},
		builtins: map[string]builtinFn{},
		globals:  newFrame(),
		stdout:   os.Stdout,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	ip.emitter = newEmitter(DefaultTrackPath, os.Stdout)
	registerCoreBuiltins(ip)
	registerSoundBuiltins(ip)
	registerTrackBuiltins(ip)
	for _, opt := range opts {
		opt(ip)
	}
	ip.emitter.stdout = ip.stdout
	return ip
}

// Run executes a program: the track file is reset to its sentinel form, the
// global frame is built from the top-level declarations (each
// default-initialized by declared type), and the zero-argument function
// named main is invoked. Globals mutated during the run stay visible on the
// Interpreter afterwards (the REPL relies on this).
func (ip *Interpreter) Run(prog *Program) error {
	if err := ip.emitter.Reset(); err != nil {
		return err
	}
	if err := ip.load(prog); err != nil {
		return err
	}
	mainFn, ok := ip.funcs["main"]
	if !ok {
		return failf(ErrMainNotFound, "program declares no function named main")
	}
	_, globals, err := ip.callFunction(mainFn, nil, ip.globals)
	if err != nil {
		return err
	}
	ip.globals = globals
	return nil
}

// load installs the function table and default-initializes the globals.
func (ip *Interpreter) load(prog *Program) error {
	for i := range prog.Funcs {
		fd := &prog.Funcs[i]
		ip.funcs[fd.Name] = fd
	}
	for _, g := range prog.Globals {
		dv, err := DefaultValue(g.Type)
		if err != nil {
			return err
		}
		ip.globals.put(g.Name, dv)
	}
	return nil
}

// CallFunction invokes a loaded function by name with the given argument
// values, against the current globals.
func (ip *Interpreter) CallFunction(name string, args []Value) (Value, error) {
	fd, ok := ip.funcs[name]
	if !ok {
		return Value{}, failf(ErrUndefinedFunction, "undefined function %q", name)
	}
	v, globals, err := ip.callFunction(fd, args, ip.globals)
	if err != nil {
		return Value{}, err
	}
	ip.globals = globals
	return v, nil
}

// EvalExpr evaluates one expression against the persistent global frame
// (with an empty locals frame). Used by the REPL.
func (ip *Interpreter) EvalExpr(e Expr) (Value, error) {
	v, env, err := ip.evalExpr(e, NewEnvironment(newFrame(), ip.globals))
	if err != nil {
		return Value{}, err
	}
	ip.globals = env.globals
	return v, nil
}

// ExecStmt executes one statement against the persistent global frame. A
// top-level return is reported as its value.
func (ip *Interpreter) ExecStmt(st Stmt) (Value, error) {
	env, sig, err := ip.execStmt(st, NewEnvironment(newFrame(), ip.globals))
	if err != nil {
		return Value{}, err
	}
	if sig != nil {
		ip.globals = sig.globals
		return sig.value, nil
	}
	ip.globals = env.globals
	return Bool(false), nil
}

// DefineGlobal declares a new global with the default value for its type.
// Redeclaring an existing name is a TypeMismatch.
func (ip *Interpreter) DefineGlobal(declType, name string) error {
	if ip.globals.has(name) {
		return failf(ErrTypeMismatch, "global %q is already declared", name)
	}
	dv, err := DefaultValue(declType)
	if err != nil {
		return err
	}
	// The global frame is only grown here and at load time, both outside of
	// any in-flight evaluation, so in-place growth is safe.
	ip.globals.put(name, dv)
	return nil
}

// GlobalSnapshot returns the current globals in declaration order.
func (ip *Interpreter) GlobalSnapshot() []Binding {
	return NewEnvironment(newFrame(), ip.globals).Snapshot()
}

// Tempo exposes the emitter's current beats-per-minute.
func (ip *Interpreter) Tempo() int64 { return ip.emitter.Tempo() }
