package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	Position() Position
	String() string
}

// Literal is a constant written directly in the source.
//
//	int x = 10;
//	        ^^  Literal{Value: Value{Kind: IntValue, Int: 10}}
type Literal struct {
	Pos   Position
	Value Value
}

func (*Literal) exprNode()            {}
func (l *Literal) Position() Position { return l.Pos }
func (l *Literal) String() string     { return l.Value.String() }

// Identifier is a read of a named variable.
type Identifier struct {
	Pos  Position
	Name string
}

func (*Identifier) exprNode()            {}
func (i *Identifier) Position() Position { return i.Pos }
func (i *Identifier) String() string     { return i.Name }

// BinaryExpr represents a binary operation: Left Op Right.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Pos   Position
	Left  Expr
	Op    TokenType
	Right Expr
}

func (*BinaryExpr) exprNode()            {}
func (b *BinaryExpr) Position() Position { return b.Pos }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryExpr represents a prefix operation: Op Operand (e.g. !x, -y, ++i).
type UnaryExpr struct {
	Pos     Position
	Op      TokenType
	Operand Expr
}

func (*UnaryExpr) exprNode()            {}
func (u *UnaryExpr) Position() Position { return u.Pos }
func (u *UnaryExpr) String() string     { return fmt.Sprintf("(%s %s)", u.Op, u.Operand) }

// AssignExpr represents Target = Value. Compound forms such as x += 1 are
// stored already expanded to x = x + 1.
type AssignExpr struct {
	Pos    Position
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode()            {}
func (a *AssignExpr) Position() Position { return a.Pos }
func (a *AssignExpr) String() string     { return fmt.Sprintf("(%s = %s)", a.Target, a.Value) }

// CallExpr represents Target(Args...).
type CallExpr struct {
	Pos    Position
	Target Expr
	Args   []Expr
}

func (*CallExpr) exprNode()            {}
func (c *CallExpr) Position() Position { return c.Pos }
func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("Call(%s, args=[%s])", c.Target, strings.Join(args, ", "))
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	Position() Position
	String() string
}

// VarDecl represents  type name [= expr];
type VarDecl struct {
	Pos      Position
	TypeName string
	Name     string
	Init     Expr // may be nil
}

func (*VarDecl) stmtNode()            {}
func (d *VarDecl) Position() Position { return d.Pos }
func (d *VarDecl) String() string {
	if d.Init == nil {
		return fmt.Sprintf("VarDecl(%s %s)", d.TypeName, d.Name)
	}
	return fmt.Sprintf("VarDecl(%s %s = %s)", d.TypeName, d.Name, d.Init)
}

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

func (*ExprStmt) stmtNode()            {}
func (e *ExprStmt) Position() Position { return e.Pos }
func (e *ExprStmt) String() string     { return fmt.Sprintf("ExprStmt(%s)", e.Expr) }

// BlockStmt represents { statement; ... }
type BlockStmt struct {
	Pos   Position
	Stmts []Stmt
}

func (*BlockStmt) stmtNode()            {}
func (b *BlockStmt) Position() Position { return b.Pos }
func (b *BlockStmt) String() string {
	parts := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		parts[i] = s.String()
	}
	return fmt.Sprintf("Block[%s]", strings.Join(parts, "; "))
}

// IfStmt represents if (cond) then [else elseBranch]
type IfStmt struct {
	Pos       Position
	Condition Expr
	Then      Stmt
	Else      Stmt // may be nil
}

func (*IfStmt) stmtNode()            {}
func (i *IfStmt) Position() Position { return i.Pos }
func (i *IfStmt) String() string {
	if i.Else != nil {
		return fmt.Sprintf("IfStmt(if %s then %s else %s)", i.Condition, i.Then, i.Else)
	}
	return fmt.Sprintf("IfStmt(if %s then %s)", i.Condition, i.Then)
}

// WhileStmt represents while (cond) body
type WhileStmt struct {
	Pos       Position
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode()            {}
func (w *WhileStmt) Position() Position { return w.Pos }
func (w *WhileStmt) String() string {
	return fmt.Sprintf("WhileStmt(while %s do %s)", w.Condition, w.Body)
}

// ReturnStmt represents  return [expr];
type ReturnStmt struct {
	Pos  Position
	Expr Expr // nil for a bare return
}

func (*ReturnStmt) stmtNode()            {}
func (r *ReturnStmt) Position() Position { return r.Pos }
func (r *ReturnStmt) String() string {
	if r.Expr == nil {
		return "ReturnStmt()"
	}
	return fmt.Sprintf("ReturnStmt(%s)", r.Expr)
}

// Param is one (type, name) pair of a function declaration.
type Param struct {
	TypeName string
	Name     string
}

// FunctionDecl represents  type name(params) { body }
type FunctionDecl struct {
	Pos        Position
	ReturnType string
	Name       string
	Params     []Param
	Body       *BlockStmt
}

func (*FunctionDecl) stmtNode()            {}
func (f *FunctionDecl) Position() Position { return f.Pos }
func (f *FunctionDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.TypeName + " " + p.Name
	}
	return fmt.Sprintf("FunctionDecl(%s %s(%s) %s)", f.ReturnType, f.Name, strings.Join(params, ", "), f.Body)
}
