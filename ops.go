// ops.go — the per-operator, per-type-pair resolution matrix.
//
// Binary operators are dispatched through one central table keyed by
// (operator, left tag, right tag). A pair absent from the table is an
// InvalidOperation naming both operand types and the operator; a present
// pair is total and deterministic. There is no general numeric tower — the
// legal pairs are exactly the ones registered here.
package lullabyte

type opKey struct {
	op   string
	l, r ValueTag
}

type binFn func(l, r Value) (Value, error)

var binOps = buildBinOps()

// applyBinary resolves op for the (already evaluated) operand pair.
func applyBinary(op string, l, r Value) (Value, error) {
	fn, ok := binOps[opKey{op, l.Tag, r.Tag}]
	if !ok {
		return Value{}, failf(ErrInvalidOperation,
			"operator %q is not defined for %s and %s", op, Classify(l), Classify(r))
	}
	return fn(l, r)
}

// applyUnary resolves the two unary operators.
func applyUnary(op string, x Value) (Value, error) {
	switch op {
	case "!":
		if x.Tag != VTBool {
			return Value{}, failf(ErrInvalidOperation, "operator %q is not defined for %s", op, Classify(x))
		}
		return Bool(!x.Data.(bool)), nil
	case "-":
		switch x.Tag {
		case VTInt:
			return Int(-x.Data.(int64)), nil
		case VTDouble:
			return Double(-x.Data.(float64)), nil
		}
		return Value{}, failf(ErrInvalidOperation, "operator %q is not defined for %s", op, Classify(x))
	default:
		return Value{}, failf(ErrInvalidOperation, "unknown unary operator %q", op)
	}
}

func asDouble(v Value) float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}

func buildBinOps() map[opKey]binFn {
	t := map[opKey]binFn{}

	reg := func(op string, l, r ValueTag, fn binFn) {
		t[opKey{op, l, r}] = fn
	}

	// Numeric arithmetic: (int,int) stays int, any double operand widens.
	intArith := func(fn func(a, b int64) (int64, error)) binFn {
		return func(l, r Value) (Value, error) {
			n, err := fn(l.Data.(int64), r.Data.(int64))
			if err != nil {
				return Value{}, err
			}
			return Int(n), nil
		}
	}
	dblArith := func(fn func(a, b float64) float64) binFn {
		return func(l, r Value) (Value, error) {
			return Double(fn(asDouble(l), asDouble(r))), nil
		}
	}
	regNumeric := func(op string, ifn func(a, b int64) (int64, error), dfn func(a, b float64) float64) {
		reg(op, VTInt, VTInt, intArith(ifn))
		reg(op, VTInt, VTDouble, dblArith(dfn))
		reg(op, VTDouble, VTInt, dblArith(dfn))
		reg(op, VTDouble, VTDouble, dblArith(dfn))
	}

	regNumeric("+",
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) float64 { return a + b })
	regNumeric("-",
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) float64 { return a - b })
	regNumeric("*",
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) float64 { return a * b })
	regNumeric("/",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, failf(ErrInvalidOperation, "division by zero")
			}
			return a / b, nil
		},
		func(a, b float64) float64 { return a / b })

	// Modulo: integers only among the numeric pairs.
	reg("%", VTInt, VTInt, intArith(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, failf(ErrInvalidOperation, "modulo by zero")
		}
		return a % b, nil
	}))

	// Pitch arithmetic works on the semitone value; the result is a pitch.
	pitchArith := func(fn func(p, n int64) (int64, error), pitchLeft bool) binFn {
		return func(l, r Value) (Value, error) {
			pv, nv := l, r
			if !pitchLeft {
				pv, nv = r, l
			}
			p, err := PitchToInt(pv.Data.(string))
			if err != nil {
				return Value{}, failf(ErrInvalidOperation, "%v", err)
			}
			out, err := fn(p, nv.Data.(int64))
			if err != nil {
				return Value{}, err
			}
			name, err := IntToPitch(out)
			if err != nil {
				return Value{}, failf(ErrInvalidOperation, "%v", err)
			}
			return Pitch(name), nil
		}
	}

	// + shifts up regardless of operand order.
	shiftUp := func(p, n int64) (int64, error) { return p + n, nil }
	reg("+", VTPitch, VTInt, pitchArith(shiftUp, true))
	reg("+", VTInt, VTPitch, pitchArith(shiftUp, false))

	// - shifts down; (int,pitch) subtracts the semitone value from the int.
	reg("-", VTPitch, VTInt, pitchArith(func(p, n int64) (int64, error) { return p - n, nil }, true))
	reg("-", VTInt, VTPitch, func(l, r Value) (Value, error) {
		p, err := PitchToInt(r.Data.(string))
		if err != nil {
			return Value{}, failf(ErrInvalidOperation, "%v", err)
		}
		name, err := IntToPitch(l.Data.(int64) - p)
		if err != nil {
			return Value{}, failf(ErrInvalidOperation, "%v", err)
		}
		return Pitch(name), nil
	})

	// * scales the semitone value; only (pitch,int) is in the table.
	reg("*", VTPitch, VTInt, pitchArith(func(p, n int64) (int64, error) { return p * n, nil }, true))

	// / and % follow the +/- pairing.
	pitchDiv := func(p, n int64) (int64, error) {
		if n == 0 {
			return 0, failf(ErrInvalidOperation, "division by zero")
		}
		return p / n, nil
	}
	pitchMod := func(p, n int64) (int64, error) {
		if n == 0 {
			return 0, failf(ErrInvalidOperation, "modulo by zero")
		}
		return p % n, nil
	}
	reg("/", VTPitch, VTInt, pitchArith(pitchDiv, true))
	reg("/", VTInt, VTPitch, func(l, r Value) (Value, error) {
		p, err := PitchToInt(r.Data.(string))
		if err != nil {
			return Value{}, failf(ErrInvalidOperation, "%v", err)
		}
		if p == 0 {
			return Value{}, failf(ErrInvalidOperation, "division by zero")
		}
		name, err := IntToPitch(l.Data.(int64) / p)
		if err != nil {
			return Value{}, failf(ErrInvalidOperation, "%v", err)
		}
		return Pitch(name), nil
	})
	reg("%", VTPitch, VTInt, pitchArith(pitchMod, true))
	reg("%", VTInt, VTPitch, func(l, r Value) (Value, error) {
		p, err := PitchToInt(r.Data.(string))
		if err != nil {
			return Value{}, failf(ErrInvalidOperation, "%v", err)
		}
		if p == 0 {
			return Value{}, failf(ErrInvalidOperation, "modulo by zero")
		}
		name, err := IntToPitch(l.Data.(int64) % p)
		if err != nil {
			return Value{}, failf(ErrInvalidOperation, "%v", err)
		}
		return Pitch(name), nil
	})

	// Array repetition by concatenation. Zero or negative counts would
	// violate the non-empty invariant, so they are rejected.
	repeat := func(arr Value, n int64) (Value, error) {
		if n < 1 {
			return Value{}, failf(ErrInvalidOperation, "array repetition count must be >= 1, got %d", n)
		}
		src := arr.Data.([]Value)
		out := make([]Value, 0, int(n)*len(src))
		for i := int64(0); i < n; i++ {
			out = append(out, src...)
		}
		return Arr(out), nil
	}
	reg("*", VTArray, VTInt, func(l, r Value) (Value, error) { return repeat(l, r.Data.(int64)) })
	reg("*", VTInt, VTArray, func(l, r Value) (Value, error) { return repeat(r, l.Data.(int64)) })

	// Sound * numeric scales the duration; the pitches and amplitude are
	// untouched.
	scaleSound := func(s Value, factor float64) Value {
		sd := s.Data.(SoundData)
		return Sound(sd.Pitches, sd.Duration*factor, sd.Amplitude)
	}
	for _, numTag := range []ValueTag{VTInt, VTDouble} {
		nt := numTag
		reg("*", VTSound, nt, func(l, r Value) (Value, error) { return scaleSound(l, asDouble(r)), nil })
		reg("*", nt, VTSound, func(l, r Value) (Value, error) { return scaleSound(r, asDouble(l)), nil })
	}

	// Logical operators: boolean pairs only. Both operands are evaluated
	// before dispatch, so there is no short circuit.
	reg("&&", VTBool, VTBool, func(l, r Value) (Value, error) {
		return Bool(l.Data.(bool) && r.Data.(bool)), nil
	})
	reg("||", VTBool, VTBool, func(l, r Value) (Value, error) {
		return Bool(l.Data.(bool) || r.Data.(bool)), nil
	})

	// Comparisons: numeric cross-pairs, pitch/pitch and pitch/int by
	// semitone value, boolean/boolean (false < true). All yield bool.
	cmps := []string{"==", "!=", "<", ">", "<=", ">="}
	cmpOut := func(op string, c int) bool {
		switch op {
		case "==":
			return c == 0
		case "!=":
			return c != 0
		case "<":
			return c < 0
		case ">":
			return c > 0
		case "<=":
			return c <= 0
		default:
			return c >= 0
		}
	}
	cmpF := func(a, b float64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	semitone := func(v Value) (int64, error) {
		if v.Tag == VTInt {
			return v.Data.(int64), nil
		}
		n, err := PitchToInt(v.Data.(string))
		if err != nil {
			return 0, failf(ErrInvalidOperation, "%v", err)
		}
		return n, nil
	}
	for _, op := range cmps {
		o := op
		numCmp := func(l, r Value) (Value, error) {
			return Bool(cmpOut(o, cmpF(asDouble(l), asDouble(r)))), nil
		}
		reg(o, VTInt, VTInt, numCmp)
		reg(o, VTInt, VTDouble, numCmp)
		reg(o, VTDouble, VTInt, numCmp)
		reg(o, VTDouble, VTDouble, numCmp)

		pitchCmp := func(l, r Value) (Value, error) {
			a, err := semitone(l)
			if err != nil {
				return Value{}, err
			}
			b, err := semitone(r)
			if err != nil {
				return Value{}, err
			}
			return Bool(cmpOut(o, cmpF(float64(a), float64(b)))), nil
		}
		reg(o, VTPitch, VTPitch, pitchCmp)
		reg(o, VTPitch, VTInt, pitchCmp)
		reg(o, VTInt, VTPitch, pitchCmp)

		reg(o, VTBool, VTBool, func(l, r Value) (Value, error) {
			bi := func(b bool) float64 {
				if b {
					return 1
				}
				return 0
			}
			return Bool(cmpOut(o, cmpF(bi(l.Data.(bool)), bi(r.Data.(bool))))), nil
		})
	}

	return t
}
