// Package parser resolves a lexed token tree into a typed AST against a
// two-kind symbol table.
package parser

import "github.com/andycking/turtlego/lexer"

// Node is the parser's output: a sum type realized as an interface with
// an unexported marker so only this package can add variants.
type Node interface {
	astNode()
}

// NumberNode is a literal.
type NumberNode struct {
	Val float64
}

func (NumberNode) astNode() {}

// WordNode reads a variable.
type WordNode struct {
	Name string
}

func (WordNode) astNode() {}

// BinExprNode combines two expressions with an arithmetic operator.
type BinExprNode struct {
	A  Node
	Op lexer.Operator
	B  Node
}

func (BinExprNode) astNode() {}

// ListNode is an evaluated-in-place sequence, used for colors and points.
type ListNode struct {
	Items []Node
}

func (ListNode) astNode() {}

// CallNode invokes a user-defined procedure. Args are the raw tokens
// following the call in source order; the interpreter never binds them
// to formals (user procedures always execute as zero-arg).
type CallNode struct {
	Name string
	Args []lexer.Token
}

func (CallNode) astNode() {}

// LetNode declares or replaces a variable binding.
type LetNode struct {
	Name string
	Val  Node
}

func (LetNode) astNode() {}

// AssignNode overwrites an already-declared variable.
type AssignNode struct {
	Name string
	Val  Node
}

func (AssignNode) astNode() {}

// MoveDir is the direction of a Move statement.
type MoveDir int

const (
	Forward MoveDir = iota
	Backward
)

// MoveNode advances the turtle along its current heading.
type MoveNode struct {
	Distance Node
	Dir      MoveDir
}

func (MoveNode) astNode() {}

// RotateDir is the direction of a Rotate statement.
type RotateDir int

const (
	Left RotateDir = iota
	Right
)

// RotateNode turns the turtle in place.
type RotateNode struct {
	Angle Node
	Dir   RotateDir
}

func (RotateNode) astNode() {}

// SetHeadingNode sets the turtle's absolute heading.
type SetHeadingNode struct {
	Angle Node
}

func (SetHeadingNode) astNode() {}

// SetPositionNode sets one or both position components; a nil field
// leaves that component unchanged.
type SetPositionNode struct {
	X Node
	Y Node
}

func (SetPositionNode) astNode() {}

// SetPenColorNode resolves an expression to RGBA and sets the pen color.
type SetPenColorNode struct {
	Color Node
}

func (SetPenColorNode) astNode() {}

// SetScreenColorNode resolves an expression to RGBA and sets the
// background color.
type SetScreenColorNode struct {
	Color Node
}

func (SetScreenColorNode) astNode() {}

// PenDir is whether the pen is lifted or lowered.
type PenDir int

const (
	PenDown PenDir = iota
	PenUp
)

// PenNode sets pen visibility.
type PenNode struct {
	Dir PenDir
}

func (PenNode) astNode() {}

// ShowTurtleNode toggles turtle-cursor visibility; it carries no state
// change beyond the emitted render command.
type ShowTurtleNode struct {
	Show bool
}

func (ShowTurtleNode) astNode() {}

// RepeatNode runs Body Count times, exposing repcount to the body.
type RepeatNode struct {
	Count Node
	Body  []Node
}

func (RepeatNode) astNode() {}

// RandomNode is sugar for Call{"random", [Max]}.
type RandomNode struct {
	Max Node
}

func (RandomNode) astNode() {}

// RepcountNode reads the innermost active repeat's iteration index.
type RepcountNode struct{}

func (RepcountNode) astNode() {}

// HomeNode moves the turtle to the origin.
type HomeNode struct{}

func (HomeNode) astNode() {}

// CleanNode is a no-op at the interpreter layer.
type CleanNode struct{}

func (CleanNode) astNode() {}

// ClearScreenNode is Home followed by Clean.
type ClearScreenNode struct{}

func (ClearScreenNode) astNode() {}

// ForNode is a supplemented counted loop: for [var init limit step] { body }.
type ForNode struct {
	Var   string
	Init  Node
	Limit Node
	Step  Node
	Body  []Node
}

func (ForNode) astNode() {}

// MathOp is a supplemented single-argument math builtin.
type MathOp int

const (
	MathSin MathOp = iota
	MathCos
	MathAtan
	MathSqrt
	MathLn
	MathLog10
	MathRound
)

// MathNode applies a math builtin to Arg.
type MathNode struct {
	Op  MathOp
	Arg Node
}

func (MathNode) astNode() {}

// FillNode is a supplemented statement that floods the region at the
// turtle's current position with the current pen color.
type FillNode struct{}

func (FillNode) astNode() {}
