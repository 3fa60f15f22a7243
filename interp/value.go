// Package interp tree-walks a parsed program, mutating turtle state and
// emitting render commands.
package interp

import "fmt"

// Value is the interpreter's dynamic type: a sum type realized as an
// interface with an unexported marker.
type Value interface {
	valueNode()
	fmt.Stringer
}

// Void is the result of statements that produce no value.
type Void struct{}

func (Void) valueNode()     {}
func (Void) String() string { return "" }

// Number is a floating-point value.
type Number float64

func (Number) valueNode() {}
func (n Number) String() string {
	return fmt.Sprintf("%g", float64(n))
}

// List is a sequence of values, used for colors and points.
type List []Value

func (List) valueNode() {}
func (l List) String() string {
	return fmt.Sprintf("%v", []Value(l))
}
