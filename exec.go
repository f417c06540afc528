// exec.go — the statement executor and the call mechanism.
//
// Statement execution threads the environment exactly like expression
// evaluation does, and additionally propagates an explicit return signal
// instead of throwing: every executor returns (env, *returnSignal, error),
// where a non-nil signal means "unwind to the nearest enclosing call". The
// signal carries the return value and the globals at the point of return;
// the locals of the returning frame are discarded by the call boundary.
package lullabyte

// returnSignal is the non-local exit raised by a return statement.
type returnSignal struct {
	value   Value
	globals frame
}

func (ip *Interpreter) execBlock(b *BlockStmt, env Environment) (Environment, *returnSignal, error) {
	if b == nil {
		return env, nil, nil
	}
	for _, st := range b.Stmts {
		env2, sig, err := ip.execStmt(st, env)
		if err != nil {
			return env, nil, err
		}
		if sig != nil {
			return env2, sig, nil
		}
		env = env2
	}
	return env, nil, nil
}

func (ip *Interpreter) execStmt(st Stmt, env Environment) (Environment, *returnSignal, error) {
	switch n := st.(type) {
	case *BlockStmt:
		return ip.execBlock(n, env)

	case *ExprStmt:
		_, env1, err := ip.evalExpr(n.X, env)
		return env1, nil, err

	case *IfStmt:
		cond, env1, err := ip.evalExpr(n.Cond, env)
		if err != nil {
			return env, nil, err
		}
		// The only condition coercion in the language: anything other than
		// boolean true takes the else branch.
		if isTrue(cond) {
			return ip.execBlock(n.Then, env1)
		}
		return ip.execBlock(n.Else, env1)

	case *WhileStmt:
		for {
			cond, env1, err := ip.evalExpr(n.Cond, env)
			if err != nil {
				return env, nil, err
			}
			if !isTrue(cond) {
				return env1, nil, nil
			}
			env2, sig, err := ip.execBlock(n.Body, env1)
			if err != nil {
				return env, nil, err
			}
			if sig != nil {
				return env2, sig, nil
			}
			env = env2
		}

	case *ForStmt:
		_, env1, err := ip.evalExpr(n.Init, env)
		if err != nil {
			return env, nil, err
		}
		env = env1
		for {
			cond, env2, err := ip.evalExpr(n.Cond, env)
			if err != nil {
				return env, nil, err
			}
			if !isTrue(cond) {
				return env2, nil, nil
			}
			env3, sig, err := ip.execBlock(n.Body, env2)
			if err != nil {
				return env, nil, err
			}
			if sig != nil {
				return env3, sig, nil
			}
			_, env4, err := ip.evalExpr(n.Step, env3)
			if err != nil {
				return env, nil, err
			}
			env = env4
		}

	case *LoopStmt:
		return ip.execLoop(n, env)

	case *ReturnStmt:
		v, env1, err := ip.evalExpr(n.X, env)
		if err != nil {
			return env, nil, err
		}
		v, err = resolveValue(v, env1)
		if err != nil {
			return env, nil, err
		}
		return env1, &returnSignal{value: v, globals: env1.globals}, nil

	default:
		return env, nil, failf(ErrInvalidOperation, "unmatched statement node %T", st)
	}
}

// execLoop runs `for v in arr`: the named array is resolved once to fix the
// iteration count, then each index binds the loop variable to a deferred
// reference arr[i] rather than a copied element — so a mutation of the
// underlying array inside the body is visible through the variable in the
// same iteration. Retained legacy behavior; see DESIGN.md.
func (ip *Interpreter) execLoop(n *LoopStmt, env Environment) (Environment, *returnSignal, error) {
	arr, err := env.Lookup(n.Array)
	if err != nil {
		return env, nil, err
	}
	arr, err = resolveValue(arr, env)
	if err != nil {
		return env, nil, err
	}
	if arr.Tag != VTArray {
		return env, nil, failf(ErrNotAnArray, "%q is not an array", n.Array)
	}
	count := int64(len(arr.Data.([]Value)))

	for i := int64(0); i < count; i++ {
		env1, err := env.Assign(n.Var, aliasVal(n.Array, i))
		if err != nil {
			return env, nil, err
		}
		env2, sig, err := ip.execBlock(n.Body, env1)
		if err != nil {
			return env, nil, err
		}
		if sig != nil {
			return env2, sig, nil
		}
		env = env2
	}
	return env, nil, nil
}

// callFunction binds actuals to a fresh locals frame, default-initializes
// the declared locals, runs the body, and catches the return signal. A body
// that falls off the end yields Boolean(false). The returned frame is the
// globals as the callee left them.
func (ip *Interpreter) callFunction(fd *FuncDecl, args []Value, globals frame) (Value, frame, error) {
	if len(args) != len(fd.Params) {
		return Value{}, frame{}, failf(ErrArityMismatch,
			"%q expects %d argument(s), got %d", fd.Name, len(fd.Params), len(args))
	}

	locals := newFrame()
	for i, p := range fd.Params {
		locals.put(p, args[i])
	}
	for _, d := range fd.Locals {
		// Formals win on a name clash; well-formed input has none.
		if locals.has(d.Name) {
			continue
		}
		dv, err := DefaultValue(d.Type)
		if err != nil {
			return Value{}, frame{}, err
		}
		locals.put(d.Name, dv)
	}

	env, sig, err := ip.execBlock(&BlockStmt{Stmts: fd.Body}, NewEnvironment(locals, globals))
	if err != nil {
		return Value{}, frame{}, err
	}
	if sig != nil {
		return sig.value, sig.globals, nil
	}
	return Bool(false), env.globals, nil
}

// isTrue is the condition test: exactly Boolean(true).
func isTrue(v Value) bool {
	return v.Tag == VTBool && v.Data.(bool)
}
