// ast.go — the pre-parsed program tree.
//
// The engine does not lex or parse source text; an external parser hands it
// a Program value built from the types below (or their serialized form, see
// decode.go). The tree is assumed syntactically well-formed — the evaluator
// rejects it only on semantic grounds, at evaluation time.
package lullabyte

// Program is a complete parsed program: top-level variable declarations and
// the function table. Execution starts at the function named "main".
type Program struct {
	Globals []VarDecl
	Funcs   []FuncDecl
}

// VarDecl declares a variable with one of the ten declarable type names
// ("int", "double", "bool", "pitch", "sound", or their "[]" array forms).
// The type is used only for default initialization.
type VarDecl struct {
	Type string
	Name string
}

// FuncDecl is an immutable function declaration, looked up by name.
type FuncDecl struct {
	Name   string
	Params []string
	Locals []VarDecl
	Body   []Stmt
}

// Stmt is a statement node.
type Stmt interface{ stmtNode() }

// Expr is an expression node.
type Expr interface{ exprNode() }

type (
	// BlockStmt executes its statements in order, threading the environment.
	BlockStmt struct {
		Stmts []Stmt
	}

	// ExprStmt evaluates X for effect and discards the value.
	ExprStmt struct {
		X Expr
	}

	// IfStmt executes exactly one branch. Any condition value other than
	// boolean true selects Else. Else may be nil.
	IfStmt struct {
		Cond Expr
		Then *BlockStmt
		Else *BlockStmt
	}

	// WhileStmt loops while Cond evaluates to boolean true.
	WhileStmt struct {
		Cond Expr
		Body *BlockStmt
	}

	// ForStmt is the three-clause loop: Init once, then Cond/Body/Step.
	ForStmt struct {
		Init Expr
		Cond Expr
		Step Expr
		Body *BlockStmt
	}

	// LoopStmt is `for Var in Array { Body }`: one iteration per element of
	// the named array's length at loop entry, binding Var to a deferred
	// reference Array[index] each time around.
	LoopStmt struct {
		Var   string
		Array string
		Body  *BlockStmt
	}

	// ReturnStmt unwinds to the nearest enclosing call, carrying the value
	// and the globals at the point of return.
	ReturnStmt struct {
		X Expr
	}
)

func (*BlockStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()   {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*LoopStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}

type (
	IntLit    struct{ N int64 }
	DoubleLit struct{ F float64 }
	BoolLit   struct{ B bool }
	PitchLit  struct{ Name string }

	// SoundLit is a literal sound: pitch names, duration, amplitude.
	SoundLit struct {
		Pitches   []string
		Duration  float64
		Amplitude int64
	}

	// ArrayLit evaluates its elements left to right, then applies the
	// non-empty and homogeneity checks.
	ArrayLit struct {
		Elems []Expr
	}

	Ident struct{ Name string }

	// IndexExpr reads one slot of the named array. The base is always an
	// identifier; multi-dimensional targets are rejected by the decoder.
	IndexExpr struct {
		Array string
		Index Expr
	}

	// AssignExpr rebinds Target (an *Ident or *IndexExpr) to the value of X.
	// Assignment is itself an expression yielding the assigned value.
	AssignExpr struct {
		Target Expr
		X      Expr
	}

	// BinaryExpr applies Op per the operator resolution table in ops.go.
	// The left operand is fully evaluated before the right.
	BinaryExpr struct {
		Op string
		L  Expr
		R  Expr
	}

	// UnaryExpr: "!" on booleans, "-" on ints and doubles.
	UnaryExpr struct {
		Op string
		X  Expr
	}

	// CallExpr dispatches to a built-in when Name matches one, otherwise to
	// the program's function table.
	CallExpr struct {
		Name string
		Args []Expr
	}
)

func (*IntLit) exprNode()     {}
func (*DoubleLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*PitchLit) exprNode()   {}
func (*SoundLit) exprNode()   {}
func (*ArrayLit) exprNode()   {}
func (*Ident) exprNode()      {}
func (*IndexExpr) exprNode()  {}
func (*AssignExpr) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}
