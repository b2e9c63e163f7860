package compiler

import "fmt"

// Checker walks the AST depth-first and stops at the first semantic error.
// It threads the active scope and the expected return type through the
// traversal; a Checker is single-use and not safe for concurrent use.
type Checker struct {
	syms    *SymbolTable
	retType Type

	skipControlFlow bool
}

func NewChecker(opts Options) *Checker {
	syms := NewSymbolTable()
	syms.legacyExit = opts.LegacyScopeExit
	return &Checker{
		syms:            syms,
		retType:         TypeVoid,
		skipControlFlow: opts.SkipControlFlow,
	}
}

// Symbols exposes the table, e.g. for dumping globals after a check.
func (c *Checker) Symbols() *SymbolTable { return c.syms }

// Check type-checks stmts in order.
func (c *Checker) Check(stmts []Stmt) error {
	for _, s := range stmts {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// Check type-checks a program with the default options.
func Check(stmts []Stmt) error {
	return NewChecker(DefaultOptions()).Check(stmts)
}

func (c *Checker) checkStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case *VarDecl:
		return c.checkVarDecl(s)

	case *ExprStmt:
		_, err := c.checkExpr(s.Expr)
		return err

	case *ReturnStmt:
		return c.checkReturn(s)

	case *BlockStmt:
		c.syms.EnterScope()
		for _, inner := range s.Stmts {
			if err := c.checkStmt(inner); err != nil {
				return err
			}
		}
		c.syms.ExitScope()
		return nil

	case *FunctionDecl:
		return c.checkFunction(s)

	case *IfStmt:
		if c.skipControlFlow {
			return nil
		}
		if _, err := c.checkExpr(s.Condition); err != nil {
			return err
		}
		if err := c.checkStmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return c.checkStmt(s.Else)
		}
		return nil

	case *WhileStmt:
		if c.skipControlFlow {
			return nil
		}
		if _, err := c.checkExpr(s.Condition); err != nil {
			return err
		}
		return c.checkStmt(s.Body)
	}
	return fmt.Errorf("unsupported statement %T", stmt)
}

func (c *Checker) resolveType(pos Position, name string) (Type, error) {
	t, ok := ResolveType(name)
	if !ok {
		return 0, semanticErr(pos, UnknownType, "unknown type %q", name)
	}
	return t, nil
}

func (c *Checker) checkVarDecl(d *VarDecl) error {
	t, err := c.resolveType(d.Pos, d.TypeName)
	if err != nil {
		return err
	}
	if !c.syms.Declare(d.Name, t) {
		return semanticErr(d.Pos, Redeclared, "variable %q already declared", d.Name)
	}
	if d.Init == nil {
		return nil
	}

	initType, err := c.checkExpr(d.Init)
	if err != nil {
		return err
	}
	if initType != t {
		return semanticErr(d.Init.Position(), TypeMismatch, "cannot assign %s to %s", initType, t)
	}
	return nil
}

func (c *Checker) checkReturn(r *ReturnStmt) error {
	if r.Expr == nil {
		if c.retType != TypeVoid {
			return semanticErr(r.Pos, ReturnMismatch, "missing return value, expected %s", c.retType)
		}
		return nil
	}

	t, err := c.checkExpr(r.Expr)
	if err != nil {
		return err
	}
	if t != c.retType {
		return semanticErr(r.Pos, ReturnMismatch, "cannot return %s, expected %s", t, c.retType)
	}
	return nil
}

func (c *Checker) checkFunction(f *FunctionDecl) error {
	ret, err := c.resolveType(f.Pos, f.ReturnType)
	if err != nil {
		return err
	}
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		if params[i], err = c.resolveType(f.Pos, p.TypeName); err != nil {
			return err
		}
	}

	if !c.syms.DeclareFunction(FunctionSymbol{Name: f.Name, Return: ret, Params: params}) {
		return semanticErr(f.Pos, Redeclared, "function %q already declared", f.Name)
	}

	c.syms.EnterScope()
	for i, p := range f.Params {
		if !c.syms.Declare(p.Name, params[i]) {
			return semanticErr(f.Pos, Redeclared, "parameter %q already declared", p.Name)
		}
	}

	prev := c.retType
	c.retType = ret
	if err := c.checkStmt(f.Body); err != nil {
		return err
	}
	c.retType = prev

	c.syms.ExitScope()
	return nil
}

func (c *Checker) checkExpr(expr Expr) (Type, error) {
	switch e := expr.(type) {
	case *Literal:
		t, ok := literalType(e.Value)
		if !ok {
			return 0, semanticErr(e.Pos, UnknownType, "unknown literal type")
		}
		return t, nil

	case *Identifier:
		t, ok := c.syms.Lookup(e.Name)
		if !ok {
			return 0, semanticErr(e.Pos, UndefinedVariable, "undefined variable %q", e.Name)
		}
		return t, nil

	case *BinaryExpr:
		left, err := c.checkExpr(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := c.checkExpr(e.Right)
		if err != nil {
			return 0, err
		}
		if left != right {
			return 0, semanticErr(e.Pos, TypeMismatch, "type mismatch in binary expression: %s %s %s", left, e.Op, right)
		}
		// comparisons and logical operators also yield the operand type
		return left, nil

	case *UnaryExpr:
		return c.checkExpr(e.Operand)

	case *AssignExpr:
		target, err := c.checkExpr(e.Target)
		if err != nil {
			return 0, err
		}
		value, err := c.checkExpr(e.Value)
		if err != nil {
			return 0, err
		}
		if target != value {
			return 0, semanticErr(e.Pos, TypeMismatch, "cannot assign %s to %s", value, target)
		}
		return target, nil

	case *CallExpr:
		return c.checkCall(e)
	}
	return 0, fmt.Errorf("unsupported expression %T", expr)
}

func (c *Checker) checkCall(call *CallExpr) (Type, error) {
	id, ok := call.Target.(*Identifier)
	if !ok {
		return 0, semanticErr(call.Pos, InvalidCallTarget, "invalid call target %s", call.Target)
	}
	fn, ok := c.syms.LookupFunction(id.Name)
	if !ok {
		return 0, semanticErr(call.Pos, UndefinedFunction, "undefined function %q", id.Name)
	}
	if len(call.Args) != len(fn.Params) {
		return 0, semanticErr(call.Pos, ArgumentCount,
			"argument count mismatch calling %s: got %d, want %d", fn.Name, len(call.Args), len(fn.Params))
	}
	for i, arg := range call.Args {
		t, err := c.checkExpr(arg)
		if err != nil {
			return 0, err
		}
		if t != fn.Params[i] {
			return 0, semanticErr(arg.Position(), ArgumentType,
				"argument type mismatch calling %s: argument %d is %s, want %s", fn.Name, i+1, t, fn.Params[i])
		}
	}
	return fn.Return, nil
}
