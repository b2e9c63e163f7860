package compiler

import (
	"fmt"
	"strings"
)

// Type is one of the five builtin types. Two types are equal iff they are the
// same builtin; there is no promotion between them.
type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypeBool
	TypeString
	TypeVoid
)

var typeNames = [...]string{
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeBool:   "bool",
	TypeString: "string",
	TypeVoid:   "void",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ResolveType maps a type name as written in source to its builtin.
func ResolveType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return Type(t), true
		}
	}
	return 0, false
}

// literalType maps a literal payload to its builtin; null is void.
func literalType(v Value) (Type, bool) {
	switch v.Kind {
	case IntValue:
		return TypeInt, true
	case FloatValue:
		return TypeFloat, true
	case StringValue:
		return TypeString, true
	case BoolValue:
		return TypeBool, true
	case NullValue:
		return TypeVoid, true
	}
	return 0, false
}

// FunctionSymbol records a declared function's signature. Parameter names are
// not kept; calls match by position only.
type FunctionSymbol struct {
	Name   string
	Return Type
	Params []Type
}

func (f FunctionSymbol) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s %s(%s)", f.Return, f.Name, strings.Join(params, ", "))
}
