package lullabyte

// ---- core built-ins ----------------------------------------------------
//
// print, length, randomInt, randomDouble. Built-ins are matched by name
// before the program's function table; each receives its arguments already
// evaluated, left to right.

import "fmt"

// builtinFn is the implementation signature shared by all built-ins.
type builtinFn func(ip *Interpreter, args []Value) (Value, error)

func registerCoreBuiltins(ip *Interpreter) {
	// print(x) -> Int(0): render x and write it as one line to the
	// program's stdout.
	ip.builtins["print"] = func(ip *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, failf(ErrWrongArgumentType, "print expects 1 argument, got %d", len(args))
		}
		fmt.Fprintln(ip.stdout, FormatValue(args[0]))
		return Int(0), nil
	}

	// length(array) -> Int
	ip.builtins["length"] = func(_ *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, failf(ErrWrongArgumentType, "length expects 1 argument, got %d", len(args))
		}
		if args[0].Tag != VTArray {
			return Value{}, failf(ErrWrongArgumentType, "length expects an array, got %s", Classify(args[0]))
		}
		return Int(int64(len(args[0].Data.([]Value)))), nil
	}

	// randomInt(bound: Int) -> Int in [0, bound)
	ip.builtins["randomInt"] = func(ip *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, failf(ErrWrongArgumentType, "randomInt expects 1 argument, got %d", len(args))
		}
		if args[0].Tag != VTInt {
			return Value{}, failf(ErrWrongArgumentType, "randomInt expects an int bound, got %s", Classify(args[0]))
		}
		bound := args[0].Data.(int64)
		if bound <= 0 {
			return Value{}, failf(ErrWrongArgumentType, "randomInt bound must be positive, got %d", bound)
		}
		return Int(ip.rng.Int63n(bound)), nil
	}

	// randomDouble(bound: Double) -> Double in [0, bound)
	ip.builtins["randomDouble"] = func(ip *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, failf(ErrWrongArgumentType, "randomDouble expects 1 argument, got %d", len(args))
		}
		if args[0].Tag != VTDouble {
			return Value{}, failf(ErrWrongArgumentType, "randomDouble expects a double bound, got %s", Classify(args[0]))
		}
		bound := args[0].Data.(float64)
		if bound <= 0 {
			return Value{}, failf(ErrWrongArgumentType, "randomDouble bound must be positive, got %v", bound)
		}
		return Double(ip.rng.Float64() * bound), nil
	}
}
