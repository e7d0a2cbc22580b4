package typegraph

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"slices"
	"strconv"

	"param-binder/primitive"
)

// ParseType parses a Go-syntax type expression. Identifiers listed in params
// become type parameters, primitive names become basic types and every other
// identifier is taken as a class name; whether that class exists is checked
// by Validate, not here.
func ParseType(expr string, params ...string) (*Type, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid type expression %q: %w", expr, err)
	}

	t, err := fromExpr(node, params)
	if err != nil {
		return nil, fmt.Errorf("invalid type expression %q: %w", expr, err)
	}

	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for tests and
// package level declarations.
func MustParseType(expr string, params ...string) *Type {
	t, err := ParseType(expr, params...)
	if err != nil {
		panic(err)
	}

	return t
}

func fromExpr(node ast.Expr, params []string) (*Type, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return fromExpr(n.X, params)

	case *ast.Ident:
		return ident(n.Name, params), nil

	case *ast.SelectorExpr:
		pkg, ok := n.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported qualified type")
		}

		name := pkg.Name + "." + n.Sel.Name
		if primitive.FromName(name) == 0 {
			return nil, fmt.Errorf("unknown qualified type %s", name)
		}

		return Basic(name), nil

	case *ast.ArrayType:
		elem, err := fromExpr(n.Elt, params)
		if err != nil {
			return nil, err
		}

		if n.Len == nil {
			return SliceOf(elem), nil
		}

		lit, ok := n.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return nil, fmt.Errorf("array length must be an integer literal")
		}

		size, err := strconv.Atoi(lit.Value)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid array length %s", lit.Value)
		}

		return ArrayOf(size, elem), nil

	case *ast.MapType:
		key, err := fromExpr(n.Key, params)
		if err != nil {
			return nil, err
		}

		elem, err := fromExpr(n.Value, params)
		if err != nil {
			return nil, err
		}

		return MapOf(key, elem), nil

	case *ast.IndexExpr:
		return instantiate(n.X, []ast.Expr{n.Index}, params)

	case *ast.IndexListExpr:
		return instantiate(n.X, n.Indices, params)

	case *ast.StarExpr:
		return nil, fmt.Errorf("pointer types are not supported")

	default:
		return nil, fmt.Errorf("unsupported type syntax %T", node)
	}
}

func ident(name string, params []string) *Type {
	if slices.Contains(params, name) {
		return Var(name)
	}

	if primitive.FromName(name) != 0 {
		return Basic(name)
	}

	return Named(name)
}

func instantiate(base ast.Expr, indices []ast.Expr, params []string) (*Type, error) {
	id, ok := base.(*ast.Ident)
	if !ok {
		return nil, fmt.Errorf("only classes can be instantiated")
	}

	t := ident(id.Name, params)
	if t.Kind != KindClass {
		return nil, fmt.Errorf("%s %s cannot take type arguments", t.Kind, id.Name)
	}

	for _, index := range indices {
		arg, err := fromExpr(index, params)
		if err != nil {
			return nil, err
		}

		t.Args = append(t.Args, arg)
	}

	return t, nil
}
