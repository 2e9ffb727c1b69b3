package dsl

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()
}

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	Node
	expr()
}

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	Node
	stmt()
}

// Program represents a complete model description.
type Program struct {
	Statements []Stmt
}

func (*Program) node() {}

// ===== Statements =====

// AssignStmt names a subexpression of the model.
// Example: mu = param(5.0)
type AssignStmt struct {
	Name  string
	Value Expr
}

func (*AssignStmt) node() {}
func (*AssignStmt) stmt() {}

// ReturnStmt fixes the model's root expression.
// Example: return nll(model)
type ReturnStmt struct {
	Value Expr
}

func (*ReturnStmt) node() {}
func (*ReturnStmt) stmt() {}

// ===== Expressions =====

// Ident represents a reference to a previously named subexpression.
type Ident struct {
	Name string
}

func (*Ident) node() {}
func (*Ident) expr() {}

// IntLit represents an integer literal.
type IntLit struct {
	Value int64
}

func (*IntLit) node() {}
func (*IntLit) expr() {}

// FloatLit represents a float literal.
type FloatLit struct {
	Value float64
}

func (*FloatLit) node() {}
func (*FloatLit) expr() {}

// StringLit represents a quoted string, valid only as an obs() argument.
type StringLit struct {
	Value string
}

func (*StringLit) node() {}
func (*StringLit) expr() {}

// BinaryExpr represents a pointwise arithmetic combination.
type BinaryExpr struct {
	Left  Expr
	Op    TokenType
	Right Expr
}

func (*BinaryExpr) node() {}
func (*BinaryExpr) expr() {}

// UnaryExpr represents unary negation.
type UnaryExpr struct {
	Op    TokenType
	Right Expr
}

func (*UnaryExpr) node() {}
func (*UnaryExpr) expr() {}

// CallExpr represents a builtin invocation such as gauss(x, mu, sigma).
type CallExpr struct {
	Func string
	Args []Expr
}

func (*CallExpr) node() {}
func (*CallExpr) expr() {}
