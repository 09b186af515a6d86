// Package ast defines the surface syntax tree that the type-inference core
// consumes. The lexer and parser packages build these nodes; nothing in
// this package depends on either.
package ast

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Pos identifies a source location for diagnostics.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

var nodeIDCounter int64

// nextNodeID returns a process-unique, monotonically increasing id used as
// an annotation key by the type-inference core. It is never reset within a
// process, so two nodes never collide even across separately parsed files.
func nextNodeID() int64 {
	return atomic.AddInt64(&nodeIDCounter, 1)
}

// Node is the common interface implemented by every AST shape.
type Node interface {
	String() string
	Position() Pos
	// ID returns this node's process-unique annotation key.
	ID() int64
}

type base struct {
	Pos Pos
	id  int64
}

func newBase(pos Pos) base {
	return base{Pos: pos, id: nextNodeID()}
}

func (b base) Position() Pos { return b.Pos }
func (b base) ID() int64     { return b.id }

// Module is an ordered list of top-level declarations.
type Module struct {
	base
	Decls []*Declaration
}

// NewModule constructs a Module at the given position.
func NewModule(pos Pos, decls []*Declaration) *Module {
	return &Module{base: newBase(pos), Decls: decls}
}

func (m *Module) String() string {
	parts := make([]string, len(m.Decls))
	for i, d := range m.Decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n")
}

// Declaration is a top-level named function: a name, an ordered list of
// parameter names, a body expression, and whether it participates in
// library-mode root selection as polymorphic (unused in program mode).
type Declaration struct {
	base
	Name        string
	Params      []string
	Body        Expr
	Polymorphic bool
}

// NewDeclaration constructs a Declaration at the given position.
func NewDeclaration(pos Pos, name string, params []string, body Expr, polymorphic bool) *Declaration {
	return &Declaration{base: newBase(pos), Name: name, Params: params, Body: body, Polymorphic: polymorphic}
}

func (d *Declaration) String() string {
	return fmt.Sprintf("%s(%s) = %s", d.Name, strings.Join(d.Params, ", "), d.Body.String())
}

// Expr is the common interface for every expression shape.
type Expr interface {
	Node
}

// IdExpression references a bound name.
type IdExpression struct {
	base
	Name string
}

func NewIdExpression(pos Pos, name string) *IdExpression {
	return &IdExpression{base: newBase(pos), Name: name}
}

func (e *IdExpression) String() string { return e.Name }

// IntegralLiteral is a 64-bit signed integer literal.
type IntegralLiteral struct {
	base
	Value int64
}

func NewIntegralLiteral(pos Pos, value int64) *IntegralLiteral {
	return &IntegralLiteral{base: newBase(pos), Value: value}
}

func (e *IntegralLiteral) String() string { return fmt.Sprintf("%d", e.Value) }

// StringLiteral is a byte-string literal.
type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(pos Pos, value string) *StringLiteral {
	return &StringLiteral{base: newBase(pos), Value: value}
}

func (e *StringLiteral) String() string { return fmt.Sprintf("%q", e.Value) }

// BooleanLiteral is a boolean literal.
type BooleanLiteral struct {
	base
	Value bool
}

func NewBooleanLiteral(pos Pos, value bool) *BooleanLiteral {
	return &BooleanLiteral{base: newBase(pos), Value: value}
}

func (e *BooleanLiteral) String() string { return fmt.Sprintf("%t", e.Value) }

// Invocation calls a named callee with ordered positional arguments.
type Invocation struct {
	base
	Callee string
	Args   []Expr
}

func NewInvocation(pos Pos, callee string, args []Expr) *Invocation {
	return &Invocation{base: newBase(pos), Callee: callee, Args: args}
}

func (e *Invocation) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(parts, ", "))
}

// GuardCase is one (condition, value) pair of a Guard expression.
type GuardCase struct {
	Condition Expr
	Value     Expr
}

// Guard is a multi-branch conditional: an ordered list of (condition,
// value) cases plus a mandatory wildcard fallthrough value.
type Guard struct {
	base
	Cases    []GuardCase
	Wildcard Expr
}

func NewGuard(pos Pos, cases []GuardCase, wildcard Expr) *Guard {
	return &Guard{base: newBase(pos), Cases: cases, Wildcard: wildcard}
}

func (e *Guard) String() string {
	parts := make([]string, 0, len(e.Cases)+1)
	for _, c := range e.Cases {
		parts = append(parts, fmt.Sprintf("%s : %s", c.Condition.String(), c.Value.String()))
	}
	parts = append(parts, fmt.Sprintf("* : %s", e.Wildcard.String()))
	return fmt.Sprintf("{ %s }", strings.Join(parts, " ; "))
}

// Bind introduces a let-style value binding: Identifier is in scope only
// within Body.
type Bind struct {
	base
	Identifier string
	Value      Expr
	Body       Expr
}

func NewBind(pos Pos, identifier string, value, body Expr) *Bind {
	return &Bind{base: newBase(pos), Identifier: identifier, Value: value, Body: body}
}

func (e *Bind) String() string {
	return fmt.Sprintf("let %s = %s in %s", e.Identifier, e.Value.String(), e.Body.String())
}

// TupleItem is one (optional tag, expression) item of a Tuple.
type TupleItem struct {
	Tag   string // empty means untagged
	Value Expr
}

// Tuple is a heterogeneous ordered aggregate with optionally-tagged fields.
type Tuple struct {
	base
	Items []TupleItem
}

func NewTuple(pos Pos, items []TupleItem) *Tuple {
	return &Tuple{base: newBase(pos), Items: items}
}

func (e *Tuple) String() string {
	parts := make([]string, len(e.Items))
	for i, it := range e.Items {
		if it.Tag != "" {
			parts[i] = fmt.Sprintf("~%s %s", it.Tag, it.Value.String())
		} else {
			parts[i] = it.Value.String()
		}
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// Note: a ConstantNode (module-level constant declaration) is deliberately
// absent from this grammar. The original language's AST carried one, but
// its semantics in the type-inference core were never specified, and this
// grammar has no production that would construct it.
