// decode.go — the interface adapter to the external parser.
//
// The parser serializes its program tree as S-expressions; DecodeProgram
// reads that form back into the Go tree of ast.go. This is not a parser for
// the source language — the grammar here is the fixed tree shape documented
// below, and a malformed tree is a DecodeError, never a RuntimeError.
//
//	(program
//	  (globals (var int "x") ...)
//	  (funcs
//	    (fun "main" (params "s" ...) (locals (var int "i") ...)
//	      (body <stmt>...)) ...))
//
// Statements: (block ...), (expr e), (if e block block?), (while e block),
// (for e e e block), (loop "v" "arr" block), (return e).
// Expressions: (int 5), (double 1.5), (bool true), (pitch "C2"),
// (sound (pitches "C2" ...) 1.5 100), (array e...), (id "x"),
// (index "a" e), (assign target e), (binop "+" l r), (unop "!" e),
// (call "print" e...).
package lullabyte

import (
	"strconv"
	"strings"
	"unicode"
)

// symbol is a bare S-expression atom, as opposed to a quoted string.
type symbol string

// DecodeProgram reads a serialized program tree.
func DecodeProgram(src string) (*Program, error) {
	form, rest, err := readForm(src)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, decodeFailf("trailing input after program form")
	}
	list, err := wantList(form, "program")
	if err != nil {
		return nil, err
	}
	if len(list) != 3 {
		return nil, decodeFailf("program form wants (program (globals ...) (funcs ...))")
	}

	prog := &Program{}

	globals, err := wantList(list[1], "globals")
	if err != nil {
		return nil, err
	}
	for _, g := range globals[1:] {
		vd, err := decodeVarDecl(g)
		if err != nil {
			return nil, err
		}
		prog.Globals = append(prog.Globals, vd)
	}

	funcs, err := wantList(list[2], "funcs")
	if err != nil {
		return nil, err
	}
	for _, f := range funcs[1:] {
		fd, err := decodeFuncDecl(f)
		if err != nil {
			return nil, err
		}
		prog.Funcs = append(prog.Funcs, fd)
	}
	return prog, nil
}

// DecodeStmt reads one serialized statement (the REPL input unit).
func DecodeStmt(src string) (Stmt, error) {
	form, rest, err := readForm(src)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, decodeFailf("trailing input after statement form")
	}
	return decodeStmt(form)
}

// DecodeExpr reads one serialized expression.
func DecodeExpr(src string) (Expr, error) {
	form, rest, err := readForm(src)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, decodeFailf("trailing input after expression form")
	}
	return decodeExpr(form)
}

func decodeVarDecl(form any) (VarDecl, error) {
	list, err := wantList(form, "var")
	if err != nil {
		return VarDecl{}, err
	}
	if len(list) != 3 {
		return VarDecl{}, decodeFailf("var form wants (var <type> \"name\")")
	}
	typ, ok := list[1].(symbol)
	if !ok || !declaredTypes[string(typ)] {
		return VarDecl{}, decodeFailf("bad declared type in var form: %v", list[1])
	}
	name, ok := list[2].(string)
	if !ok {
		return VarDecl{}, decodeFailf("var form wants a quoted name, got %v", list[2])
	}
	return VarDecl{Type: string(typ), Name: name}, nil
}

func decodeFuncDecl(form any) (FuncDecl, error) {
	list, err := wantList(form, "fun")
	if err != nil {
		return FuncDecl{}, err
	}
	if len(list) != 5 {
		return FuncDecl{}, decodeFailf("fun form wants (fun \"name\" (params ...) (locals ...) (body ...))")
	}
	name, ok := list[1].(string)
	if !ok {
		return FuncDecl{}, decodeFailf("fun form wants a quoted name")
	}
	fd := FuncDecl{Name: name}

	params, err := wantList(list[2], "params")
	if err != nil {
		return FuncDecl{}, err
	}
	for _, p := range params[1:] {
		pn, ok := p.(string)
		if !ok {
			return FuncDecl{}, decodeFailf("params of %q want quoted names, got %v", name, p)
		}
		fd.Params = append(fd.Params, pn)
	}

	locals, err := wantList(list[3], "locals")
	if err != nil {
		return FuncDecl{}, err
	}
	for _, l := range locals[1:] {
		vd, err := decodeVarDecl(l)
		if err != nil {
			return FuncDecl{}, err
		}
		fd.Locals = append(fd.Locals, vd)
	}

	body, err := wantList(list[4], "body")
	if err != nil {
		return FuncDecl{}, err
	}
	for _, s := range body[1:] {
		st, err := decodeStmt(s)
		if err != nil {
			return FuncDecl{}, err
		}
		fd.Body = append(fd.Body, st)
	}
	return fd, nil
}

func decodeStmt(form any) (Stmt, error) {
	list, ok := form.([]any)
	if !ok || len(list) == 0 {
		return nil, decodeFailf("statement form wants a non-empty list, got %v", form)
	}
	head, ok := list[0].(symbol)
	if !ok {
		return nil, decodeFailf("statement form wants a symbol head, got %v", list[0])
	}
	switch head {
	case "block":
		b := &BlockStmt{}
		for _, s := range list[1:] {
			st, err := decodeStmt(s)
			if err != nil {
				return nil, err
			}
			b.Stmts = append(b.Stmts, st)
		}
		return b, nil

	case "expr":
		if len(list) != 2 {
			return nil, decodeFailf("expr form wants 1 expression")
		}
		x, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil

	case "if":
		if len(list) != 3 && len(list) != 4 {
			return nil, decodeFailf("if form wants (if <cond> <block> <block>?)")
		}
		cond, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(list[2])
		if err != nil {
			return nil, err
		}
		st := &IfStmt{Cond: cond, Then: then}
		if len(list) == 4 {
			if st.Else, err = decodeBlock(list[3]); err != nil {
				return nil, err
			}
		}
		return st, nil

	case "while":
		if len(list) != 3 {
			return nil, decodeFailf("while form wants (while <cond> <block>)")
		}
		cond, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(list[2])
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, Body: body}, nil

	case "for":
		if len(list) != 5 {
			return nil, decodeFailf("for form wants (for <init> <cond> <step> <block>)")
		}
		init, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		step, err := decodeExpr(list[3])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(list[4])
		if err != nil {
			return nil, err
		}
		return &ForStmt{Init: init, Cond: cond, Step: step, Body: body}, nil

	case "loop":
		if len(list) != 4 {
			return nil, decodeFailf("loop form wants (loop \"var\" \"array\" <block>)")
		}
		v, ok1 := list[1].(string)
		a, ok2 := list[2].(string)
		if !ok1 || !ok2 {
			return nil, decodeFailf("loop form wants quoted variable and array names")
		}
		body, err := decodeBlock(list[3])
		if err != nil {
			return nil, err
		}
		return &LoopStmt{Var: v, Array: a, Body: body}, nil

	case "return":
		if len(list) != 2 {
			return nil, decodeFailf("return form wants 1 expression")
		}
		x, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{X: x}, nil

	default:
		return nil, decodeFailf("unknown statement head %q", head)
	}
}

func decodeBlock(form any) (*BlockStmt, error) {
	st, err := decodeStmt(form)
	if err != nil {
		return nil, err
	}
	b, ok := st.(*BlockStmt)
	if !ok {
		return nil, decodeFailf("expected a block form")
	}
	return b, nil
}

func decodeExpr(form any) (Expr, error) {
	list, ok := form.([]any)
	if !ok || len(list) == 0 {
		return nil, decodeFailf("expression form wants a non-empty list, got %v", form)
	}
	head, ok := list[0].(symbol)
	if !ok {
		return nil, decodeFailf("expression form wants a symbol head, got %v", list[0])
	}
	switch head {
	case "int":
		n, ok := atomInt(list, 1)
		if !ok {
			return nil, decodeFailf("int form wants an integer atom")
		}
		return &IntLit{N: n}, nil

	case "double":
		if len(list) != 2 {
			return nil, decodeFailf("double form wants a numeric atom")
		}
		switch v := list[1].(type) {
		case float64:
			return &DoubleLit{F: v}, nil
		case int64:
			return &DoubleLit{F: float64(v)}, nil
		}
		return nil, decodeFailf("double form wants a numeric atom, got %v", list[1])

	case "bool":
		if len(list) != 2 {
			return nil, decodeFailf("bool form wants true or false")
		}
		switch list[1] {
		case symbol("true"):
			return &BoolLit{B: true}, nil
		case symbol("false"):
			return &BoolLit{B: false}, nil
		}
		return nil, decodeFailf("bool form wants true or false, got %v", list[1])

	case "pitch":
		name, ok := atomStr(list, 1)
		if !ok || !validPitch(name) {
			return nil, decodeFailf("pitch form wants a valid pitch name, got %v", list[1])
		}
		return &PitchLit{Name: name}, nil

	case "sound":
		if len(list) != 4 {
			return nil, decodeFailf("sound form wants (sound (pitches ...) <duration> <amplitude>)")
		}
		ps, err := wantList(list[1], "pitches")
		if err != nil {
			return nil, err
		}
		lit := &SoundLit{}
		for _, p := range ps[1:] {
			name, ok := p.(string)
			if !ok || !validPitch(name) {
				return nil, decodeFailf("sound form wants valid pitch names, got %v", p)
			}
			lit.Pitches = append(lit.Pitches, name)
		}
		switch d := list[2].(type) {
		case float64:
			lit.Duration = d
		case int64:
			lit.Duration = float64(d)
		default:
			return nil, decodeFailf("sound duration wants a numeric atom, got %v", list[2])
		}
		amp, ok := list[3].(int64)
		if !ok {
			return nil, decodeFailf("sound amplitude wants an integer atom, got %v", list[3])
		}
		lit.Amplitude = amp
		return lit, nil

	case "array":
		a := &ArrayLit{}
		for _, el := range list[1:] {
			x, err := decodeExpr(el)
			if err != nil {
				return nil, err
			}
			a.Elems = append(a.Elems, x)
		}
		return a, nil

	case "id":
		name, ok := atomStr(list, 1)
		if !ok {
			return nil, decodeFailf("id form wants a quoted name")
		}
		return &Ident{Name: name}, nil

	case "index":
		if len(list) != 3 {
			return nil, decodeFailf("index form wants (index \"array\" <expr>)")
		}
		name, ok := list[1].(string)
		if !ok {
			return nil, decodeFailf("index form wants a quoted array name")
		}
		idx, err := decodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		return &IndexExpr{Array: name, Index: idx}, nil

	case "assign":
		if len(list) != 3 {
			return nil, decodeFailf("assign form wants (assign <target> <expr>)")
		}
		target, err := decodeExpr(list[1])
		if err != nil {
			return nil, err
		}
		switch target.(type) {
		case *Ident, *IndexExpr:
		default:
			return nil, decodeFailf("assign target must be an identifier or index form")
		}
		x, err := decodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Target: target, X: x}, nil

	case "binop":
		if len(list) != 4 {
			return nil, decodeFailf("binop form wants (binop \"op\" <l> <r>)")
		}
		op, ok := list[1].(string)
		if !ok || !knownBinOp(op) {
			return nil, decodeFailf("unknown binary operator %v", list[1])
		}
		l, err := decodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(list[3])
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: op, L: l, R: r}, nil

	case "unop":
		if len(list) != 3 {
			return nil, decodeFailf("unop form wants (unop \"op\" <expr>)")
		}
		op, ok := list[1].(string)
		if !ok || (op != "!" && op != "-") {
			return nil, decodeFailf("unknown unary operator %v", list[1])
		}
		x, err := decodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, X: x}, nil

	case "call":
		if len(list) < 2 {
			return nil, decodeFailf("call form wants (call \"name\" <arg>...)")
		}
		name, ok := list[1].(string)
		if !ok {
			return nil, decodeFailf("call form wants a quoted function name")
		}
		c := &CallExpr{Name: name}
		for _, a := range list[2:] {
			x, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, x)
		}
		return c, nil

	default:
		return nil, decodeFailf("unknown expression head %q", head)
	}
}

var binOpNames = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&&": true, "||": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

func knownBinOp(op string) bool { return binOpNames[op] }

func wantList(form any, head string) ([]any, error) {
	list, ok := form.([]any)
	if !ok || len(list) == 0 || list[0] != symbol(head) {
		return nil, decodeFailf("expected a (%s ...) form, got %v", head, form)
	}
	return list, nil
}

func atomStr(list []any, i int) (string, bool) {
	if len(list) != i+1 {
		return "", false
	}
	s, ok := list[i].(string)
	return s, ok
}

func atomInt(list []any, i int) (int64, bool) {
	if len(list) != i+1 {
		return 0, false
	}
	n, ok := list[i].(int64)
	return n, ok
}

// ---- S-expression reader ----------------------------------------------
//
// Atoms are int64, float64, quoted strings, or symbols; ';' starts a
// comment running to end of line.

func readForm(src string) (any, string, error) {
	rest := skipSpace(src)
	if rest == "" {
		return nil, "", decodeFailf("unexpected end of input")
	}
	switch rest[0] {
	case '(':
		return readList(rest[1:])
	case ')':
		return nil, "", decodeFailf("unexpected ')'")
	case '"':
		return readString(rest[1:])
	default:
		return readAtom(rest)
	}
}

func readList(src string) (any, string, error) {
	var out []any
	rest := src
	for {
		rest = skipSpace(rest)
		if rest == "" {
			return nil, "", decodeFailf("unterminated list")
		}
		if rest[0] == ')' {
			if out == nil {
				out = []any{}
			}
			return out, rest[1:], nil
		}
		form, r, err := readForm(rest)
		if err != nil {
			return nil, "", err
		}
		out = append(out, form)
		rest = r
	}
}

func readString(src string) (any, string, error) {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '\\':
			if i+1 >= len(src) {
				return nil, "", decodeFailf("unterminated escape in string")
			}
			i++
			switch src[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(src[i])
			}
		case '"':
			return b.String(), src[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return nil, "", decodeFailf("unterminated string")
}

func readAtom(src string) (any, string, error) {
	end := len(src)
	for i, r := range src {
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' || r == ';' {
			end = i
			break
		}
	}
	tok := src[:end]
	rest := src[end:]
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return n, rest, nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f, rest, nil
	}
	return symbol(tok), rest, nil
}

func skipSpace(src string) string {
	for {
		i := 0
		for i < len(src) && unicode.IsSpace(rune(src[i])) {
			i++
		}
		src = src[i:]
		if src == "" || src[0] != ';' {
			return src
		}
		if nl := strings.IndexByte(src, '\n'); nl >= 0 {
			src = src[nl+1:]
		} else {
			return ""
		}
	}
}
