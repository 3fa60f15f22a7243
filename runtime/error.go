// Package runtime wires the lexer, parser, and interpreter into a
// single entry point and unifies their errors under one phase-tagged
// union.
package runtime

import (
	"fmt"

	"github.com/andycking/turtlego/interp"
	"github.com/andycking/turtlego/lexer"
	"github.com/andycking/turtlego/parser"
)

// Phase identifies which pipeline stage produced an Error.
type Phase int

const (
	PhaseLexer Phase = iota
	PhaseParser
	PhaseInterpreter
)

func (p Phase) String() string {
	switch p {
	case PhaseLexer:
		return "lexer"
	case PhaseParser:
		return "parser"
	case PhaseInterpreter:
		return "interpreter"
	default:
		return "unknown"
	}
}

// Error is the single error union surfaced by Entry: a phase tag plus
// a human-readable message, with a character position where the phase
// tracks one (lexer and parser always do; the interpreter rarely
// does).
type Error struct {
	Phase   Phase
	Pos     int
	Message string
}

func (e *Error) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("%s: %d: %s", e.Phase, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Phase, e.Message)
}

func wrapLexerErr(err error) *Error {
	if err == nil {
		return nil
	}
	if le, ok := err.(*lexer.Error); ok {
		return &Error{Phase: PhaseLexer, Pos: le.Pos, Message: le.Message}
	}
	return &Error{Phase: PhaseLexer, Message: err.Error()}
}

func wrapParserErr(err error) *Error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*parser.Error); ok {
		return &Error{Phase: PhaseParser, Pos: pe.Pos, Message: pe.Message}
	}
	return &Error{Phase: PhaseParser, Message: err.Error()}
}

func wrapInterpErr(err error) *Error {
	if err == nil {
		return nil
	}
	if ie, ok := err.(*interp.Error); ok {
		return &Error{Phase: PhaseInterpreter, Pos: ie.Pos, Message: ie.Message}
	}
	return &Error{Phase: PhaseInterpreter, Message: err.Error()}
}
