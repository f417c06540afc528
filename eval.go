// eval.go — the expression evaluator.
//
// Every evaluation produces (value, environment). Environments are
// functionally updated, so the environment returned by one sub-evaluation is
// explicitly threaded into the next; sibling expressions never share
// in-progress state. Operand order for binary expressions is left fully,
// then right against the resulting environment; array-literal elements and
// call arguments evaluate left to right the same way.
package lullabyte

// resolveValue chases loop-variable aliases down to a concrete value.
// Aliases only ever live in environment frames (see exec.go), so every read
// site passes Lookup results through here before using them. The base name
// may itself be bound to an alias (a nested loop over an array of arrays);
// the base is resolved fully before the index applies, so each level of
// nesting selects its own element.
func resolveValue(v Value, env Environment) (Value, error) {
	for v.Tag == vtAlias {
		ref := v.Data.(aliasRef)
		arr, err := env.Lookup(ref.Array)
		if err != nil {
			return Value{}, err
		}
		arr, err = resolveValue(arr, env)
		if err != nil {
			return Value{}, err
		}
		if arr.Tag != VTArray {
			return Value{}, failf(ErrNotAnArray, "%q is not an array", ref.Array)
		}
		elems := arr.Data.([]Value)
		if ref.Index < 0 || ref.Index >= int64(len(elems)) {
			return Value{}, failf(ErrIndexOutOfBounds,
				"index %d out of bounds for %q (length %d)", ref.Index, ref.Array, len(elems))
		}
		v = elems[ref.Index]
	}
	return v, nil
}

// evalExpr evaluates one expression node against env.
func (ip *Interpreter) evalExpr(e Expr, env Environment) (Value, Environment, error) {
	switch n := e.(type) {
	case *IntLit:
		return Int(n.N), env, nil
	case *DoubleLit:
		return Double(n.F), env, nil
	case *BoolLit:
		return Bool(n.B), env, nil
	case *PitchLit:
		return Pitch(n.Name), env, nil
	case *SoundLit:
		return Sound(n.Pitches, n.Duration, n.Amplitude), env, nil

	case *Ident:
		v, err := env.Lookup(n.Name)
		if err != nil {
			return Value{}, env, err
		}
		v, err = resolveValue(v, env)
		return v, env, err

	case *ArrayLit:
		elems := make([]Value, 0, len(n.Elems))
		for _, el := range n.Elems {
			v, env2, err := ip.evalExpr(el, env)
			if err != nil {
				return Value{}, env, err
			}
			env = env2
			elems = append(elems, v)
		}
		v, err := newArray(elems)
		return v, env, err

	case *IndexExpr:
		return ip.evalIndex(n, env)

	case *AssignExpr:
		return ip.evalAssign(n, env)

	case *BinaryExpr:
		l, env1, err := ip.evalExpr(n.L, env)
		if err != nil {
			return Value{}, env, err
		}
		r, env2, err := ip.evalExpr(n.R, env1)
		if err != nil {
			return Value{}, env, err
		}
		v, err := applyBinary(n.Op, l, r)
		return v, env2, err

	case *UnaryExpr:
		x, env1, err := ip.evalExpr(n.X, env)
		if err != nil {
			return Value{}, env, err
		}
		v, err := applyUnary(n.Op, x)
		return v, env1, err

	case *CallExpr:
		return ip.evalCall(n, env)

	default:
		return Value{}, env, failf(ErrInvalidOperation, "unmatched expression node %T", e)
	}
}

// evalIndex reads one array slot: the base must name an array, the index
// must evaluate to an int, and it must be within [0, length).
func (ip *Interpreter) evalIndex(n *IndexExpr, env Environment) (Value, Environment, error) {
	base, err := env.Lookup(n.Array)
	if err != nil {
		return Value{}, env, err
	}
	base, err = resolveValue(base, env)
	if err != nil {
		return Value{}, env, err
	}
	if base.Tag != VTArray {
		return Value{}, env, failf(ErrNotAnArray, "%q is not an array", n.Array)
	}
	idx, env1, err := ip.evalExpr(n.Index, env)
	if err != nil {
		return Value{}, env, err
	}
	if idx.Tag != VTInt {
		return Value{}, env, failf(ErrInvalidIndex, "array index must be an int, got %s", Classify(idx))
	}
	i := idx.Data.(int64)
	elems := base.Data.([]Value)
	if i < 0 || i >= int64(len(elems)) {
		return Value{}, env, failf(ErrIndexOutOfBounds,
			"index %d out of bounds for %q (length %d)", i, n.Array, len(elems))
	}
	return elems[i], env1, nil
}

// evalAssign handles both assignment targets. The right-hand side is always
// evaluated first; the target is resolved against the resulting environment.
func (ip *Interpreter) evalAssign(n *AssignExpr, env Environment) (Value, Environment, error) {
	v, env1, err := ip.evalExpr(n.X, env)
	if err != nil {
		return Value{}, env, err
	}

	switch target := n.Target.(type) {
	case *Ident:
		cur, err := env1.Lookup(target.Name)
		if err != nil {
			return Value{}, env, err
		}
		// A loop variable is bound to a deferred array-slot reference; an
		// assignment through it writes the underlying slot and leaves the
		// alias in place. Retained legacy behavior — see DESIGN.md.
		if cur.Tag == vtAlias {
			ref := cur.Data.(aliasRef)
			env2, err := ip.storeIndexed(ref.Array, ref.Index, v, env1)
			return v, env2, err
		}
		if terr := assignable(cur, v); terr != nil {
			return Value{}, env, terr
		}
		env2, err := env1.Assign(target.Name, v)
		if err != nil {
			return Value{}, env, err
		}
		return v, env2, nil

	case *IndexExpr:
		idx, env2, err := ip.evalExpr(target.Index, env1)
		if err != nil {
			return Value{}, env, err
		}
		if idx.Tag != VTInt {
			return Value{}, env, failf(ErrInvalidIndex, "array index must be an int, got %s", Classify(idx))
		}
		env3, err := ip.storeIndexed(target.Array, idx.Data.(int64), v, env2)
		return v, env3, err

	default:
		return Value{}, env, failf(ErrInvalidOperation, "invalid assignment target %T", n.Target)
	}
}

// assignable checks the declared-vs-new type for a plain identifier
// assignment: classifications must match, with arrays compared by element
// type rather than by container.
func assignable(cur, v Value) error {
	ct, vt := Classify(cur), Classify(v)
	if ct == "array" && vt == "array" {
		ct, vt = elemType(cur), elemType(v)
	}
	if ct != vt {
		return failf(ErrTypeMismatch, "cannot assign %s to a variable holding %s", vt, ct)
	}
	return nil
}

// storeIndexed writes v into slot i of the named array, growing the array
// when i is at or beyond the current length: gap slots are filled with the
// default of v's classification and slot i gets v. Assigning past the end is
// never an error; a negative index is.
func (ip *Interpreter) storeIndexed(name string, i int64, v Value, env Environment) (Environment, error) {
	cur, err := env.Lookup(name)
	if err != nil {
		return env, err
	}
	// When name is a loop variable it aliases an array slot; the updated
	// array must land back in that slot, not under the variable's own name.
	var viaSlot *aliasRef
	if cur.Tag == vtAlias {
		ref := cur.Data.(aliasRef)
		viaSlot = &ref
		cur, err = resolveValue(cur, env)
		if err != nil {
			return env, err
		}
	}
	if cur.Tag != VTArray {
		return env, failf(ErrNotAnArray, "%q is not an array", name)
	}
	if i < 0 {
		return env, failf(ErrIndexOutOfBounds, "index %d out of bounds for %q", i, name)
	}

	elems := cur.Data.([]Value)
	var out []Value
	if i < int64(len(elems)) {
		out = make([]Value, len(elems))
		copy(out, elems)
		out[i] = v
	} else {
		out = make([]Value, i+1)
		copy(out, elems)
		filler, err := defaultOf(v)
		if err != nil {
			return env, err
		}
		for k := int64(len(elems)); k < i; k++ {
			out[k] = filler
		}
		out[i] = v
	}
	if viaSlot != nil {
		return ip.storeIndexed(viaSlot.Array, viaSlot.Index, Arr(out), env)
	}
	return env.Assign(name, Arr(out))
}

// evalCall evaluates arguments left to right, then dispatches: built-ins are
// matched by name before the program's function table.
func (ip *Interpreter) evalCall(n *CallExpr, env Environment) (Value, Environment, error) {
	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, env1, err := ip.evalExpr(a, env)
		if err != nil {
			return Value{}, env, err
		}
		env = env1
		args = append(args, v)
	}

	if fn, ok := ip.builtins[n.Name]; ok {
		v, err := fn(ip, args)
		return v, env, err
	}

	fd, ok := ip.funcs[n.Name]
	if !ok {
		return Value{}, env, failf(ErrUndefinedFunction, "undefined function %q", n.Name)
	}
	ret, globals, err := ip.callFunction(fd, args, env.globals)
	if err != nil {
		return Value{}, env, err
	}
	return ret, NewEnvironment(env.locals, globals), nil
}
