package runtime

import (
	"github.com/andycking/turtlego/interp"
	"github.com/andycking/turtlego/lexer"
	"github.com/andycking/turtlego/parser"
	"github.com/andycking/turtlego/render"
)

// Entry lexes, parses, and interprets source, streaming render
// commands to sink. It returns the value of the last top-level
// statement (Void on an empty program) or the first Error encountered,
// tagged with the phase that produced it. Any error aborts the
// pipeline immediately — no partial AST or partial state is returned
// from a later phase, though interpreter state mutations and render
// commands already committed before a failing node remain in effect.
// maxRenderCommands caps the number of render commands the run may
// emit (0 = unlimited), aborting a runaway program.
func Entry(source string, sink render.Sink, maxRenderCommands uint64) (interp.Value, error) {
	toks, err := lexer.Lex(source)
	if err != nil {
		return nil, wrapLexerErr(err)
	}

	out, err := parser.Parse(toks)
	if err != nil {
		return nil, wrapParserErr(err)
	}

	in := interp.New(sink, maxRenderCommands)
	v, err := in.Run(out)
	if err != nil {
		return nil, wrapInterpErr(err)
	}
	return v, nil
}
