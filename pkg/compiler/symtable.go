package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// scope is one lexical region: a block or a function body.
type scope struct {
	vars  map[string]Type
	funcs map[string]FunctionSymbol
}

func newScope() *scope {
	return &scope{
		vars:  make(map[string]Type),
		funcs: make(map[string]FunctionSymbol),
	}
}

// SymbolTable is a stack of scopes. Index 0 is the global scope and is never
// popped. Declarations only look at the innermost scope, so a nested scope
// may shadow an outer name; lookups walk outward.
type SymbolTable struct {
	scopes []*scope

	// legacyExit makes ExitScope push a fresh child instead of popping, so
	// names from exited blocks stay visible for the rest of the pass.
	legacyExit bool
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []*scope{newScope()}}
}

func (s *SymbolTable) current() *scope { return s.scopes[len(s.scopes)-1] }

// Depth returns the number of live scopes, including the global one.
func (s *SymbolTable) Depth() int { return len(s.scopes) }

func (s *SymbolTable) EnterScope() {
	s.scopes = append(s.scopes, newScope())
}

func (s *SymbolTable) ExitScope() {
	if s.legacyExit {
		s.EnterScope()
		return
	}
	if len(s.scopes) > 1 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

// Declare binds name in the current scope. It reports false if the current
// scope already holds a variable with that name.
func (s *SymbolTable) Declare(name string, t Type) bool {
	cur := s.current()
	if _, ok := cur.vars[name]; ok {
		return false
	}
	cur.vars[name] = t
	return true
}

// Lookup returns the type of the nearest variable named name.
func (s *SymbolTable) Lookup(name string) (Type, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if t, ok := s.scopes[i].vars[name]; ok {
			return t, true
		}
	}
	return 0, false
}

// DeclareFunction registers fn in the current scope. It reports false if the
// current scope already holds a function with that name.
func (s *SymbolTable) DeclareFunction(fn FunctionSymbol) bool {
	cur := s.current()
	if _, ok := cur.funcs[fn.Name]; ok {
		return false
	}
	cur.funcs[fn.Name] = fn
	return true
}

// LookupFunction returns the nearest function named name.
func (s *SymbolTable) LookupFunction(name string) (FunctionSymbol, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if fn, ok := s.scopes[i].funcs[name]; ok {
			return fn, true
		}
	}
	return FunctionSymbol{}, false
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	for i, sc := range s.scopes {
		if i == 0 {
			sb.WriteString("Globals:\n")
		} else {
			fmt.Fprintf(&sb, "Scope %d:\n", i)
		}
		if len(sc.vars) == 0 && len(sc.funcs) == 0 {
			sb.WriteString("  (empty)\n")
			continue
		}

		names := make([]string, 0, len(sc.funcs))
		for name := range sc.funcs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  func %-16s  %s\n", name, sc.funcs[name])
		}

		names = names[:0]
		for name := range sc.vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  var  %-16s  %s\n", name, sc.vars[name])
		}
	}
	return sb.String()
}
