package parser

// FuncDef is a registered procedure: its declared arity (never bound to
// arguments by the interpreter) and its parsed body.
type FuncDef struct {
	NumArgs int
	Body    []Node
}

// FuncMap maps a procedure name to its definition.
type FuncMap map[string]*FuncDef

// NewFuncMap returns a FuncMap pre-populated with the builtins.
func NewFuncMap() FuncMap {
	return FuncMap{
		"random": {NumArgs: 1, Body: nil},
	}
}
