// Package guard compiles and evaluates transition conditions.
//
// Conditions are boolean expressions over run context variables written in a
// small, side-effect-free subset of the expr language: identifiers, member access,
// literals, logic, comparison, arithmetic, membership in array literals and the
// ternary operator. Anything that could call code is rejected at compile time.
//
// Boolean literals may be spelled true/false or True/False, so conditions
// written for the Python prototype (user_is_approved == True) keep working.
package guard

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

var (
	// ErrSyntax is returned when a condition cannot be parsed.
	ErrSyntax = errors.New("invalid guard syntax")
	// ErrForbidden is returned when a condition uses a construct outside the guard grammar.
	ErrForbidden = errors.New("forbidden guard construct")
	// ErrUndefinedVariable is returned when a condition references a name absent from the context.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrNotBoolean is returned when a condition evaluates to a non-boolean value.
	ErrNotBoolean = errors.New("guard did not evaluate to a boolean")
)

var allowedBinary = map[string]bool{
	"&&": true, "||": true, "and": true, "or": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"in": true,
}

// capitalizedBools are identifiers rewritten to boolean literals before compiling.
var capitalizedBools = map[string]bool{"True": true, "False": false}

var allowedUnary = map[string]bool{
	"!": true, "not": true, "-": true, "+": true,
}

// Program is a compiled, reusable guard.
type Program struct {
	source    string
	variables []string
	program   *vm.Program
}

// Source returns the original condition text.
func (p *Program) Source() string { return p.source }

// Variables returns the root context names the condition reads, sorted.
func (p *Program) Variables() []string {
	return append([]string(nil), p.variables...)
}

// Compile parses src and checks it against the guard grammar.
func Compile(src string) (*Program, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	v := &grammarVisitor{names: make(map[string]struct{})}
	ast.Walk(&tree.Node, v)
	if v.err != nil {
		return nil, v.err
	}

	program, err := expr.Compile(src, expr.DisableAllBuiltins(), expr.Patch(boolPatcher{}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	vars := make([]string, 0, len(v.names))
	for name := range v.names {
		vars = append(vars, name)
	}
	sort.Strings(vars)

	return &Program{source: src, variables: vars, program: program}, nil
}

// Eval runs the program against a context. A variable missing from the context
// or a non-boolean result is an error, never a silent false.
func (p *Program) Eval(vars domain.Context) (bool, error) {
	for _, name := range p.variables {
		if _, ok := vars[name]; !ok {
			return false, fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
		}
	}

	env := map[string]any(vars)
	if env == nil {
		env = map[string]any{}
	}

	out, err := expr.Run(p.program, env)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNotBoolean, out)
	}
	return b, nil
}

// Eval compiles and evaluates src in one call.
func Eval(src string, vars domain.Context) (bool, error) {
	p, err := Compile(src)
	if err != nil {
		return false, err
	}
	return p.Eval(vars)
}

type grammarVisitor struct {
	names map[string]struct{}
	err   error
}

func (v *grammarVisitor) Visit(node *ast.Node) {
	if v.err != nil {
		return
	}
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if _, literal := capitalizedBools[n.Value]; !literal {
			v.names[n.Value] = struct{}{}
		}
	case *ast.NilNode, *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode, *ast.StringNode, *ast.ConstantNode:
	case *ast.MemberNode:
		if n.Optional {
			v.forbid("optional chaining")
		}
	case *ast.ChainNode, *ast.ArrayNode, *ast.ConditionalNode:
	case *ast.UnaryNode:
		if !allowedUnary[n.Operator] {
			v.forbid("operator " + n.Operator)
		}
	case *ast.BinaryNode:
		if !allowedBinary[n.Operator] {
			v.forbid("operator " + n.Operator)
		}
	case *ast.CallNode:
		v.forbid("function call")
	case *ast.BuiltinNode:
		v.forbid("builtin " + n.Name)
	case *ast.ClosureNode:
		v.forbid("closure")
	case *ast.PointerNode:
		v.forbid("pointer")
	case *ast.VariableDeclaratorNode:
		v.forbid("variable declaration")
	case *ast.SliceNode:
		v.forbid("slice")
	case *ast.MapNode, *ast.PairNode:
		v.forbid("map literal")
	default:
		v.forbid(fmt.Sprintf("%T", n))
	}
}

type boolPatcher struct{}

func (boolPatcher) Visit(node *ast.Node) {
	if id, ok := (*node).(*ast.IdentifierNode); ok {
		if value, literal := capitalizedBools[id.Value]; literal {
			ast.Patch(node, &ast.BoolNode{Value: value})
		}
	}
}

func (v *grammarVisitor) forbid(what string) {
	v.err = fmt.Errorf("%w: %s", ErrForbidden, what)
}
