package parser_test

import (
	"testing"

	"github.com/andycking/turtlego/lexer"
	"github.com/andycking/turtlego/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLex(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	return toks
}

func TestParseMove(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "fd 100"))
	require.NoError(t, err)
	require.Len(t, out.List, 1)
	m, ok := out.List[0].(parser.MoveNode)
	require.True(t, ok)
	assert.Equal(t, parser.Forward, m.Dir)
	assert.Equal(t, parser.NumberNode{Val: 100}, m.Distance)
}

func TestParseRepeatWithRepcount(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "repeat 3 { fd repcount rt 120 }"))
	require.NoError(t, err)
	require.Len(t, out.List, 1)
	rep, ok := out.List[0].(parser.RepeatNode)
	require.True(t, ok)
	require.Len(t, rep.Body, 2)
	move, ok := rep.Body[0].(parser.MoveNode)
	require.True(t, ok)
	_, ok = move.Distance.(parser.RepcountNode)
	require.True(t, ok)
}

func TestParseFunctionDefinitionAndCall(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "fn box { repeat 4 { fd 50 rt 90 } } box box"))
	require.NoError(t, err)
	require.Len(t, out.List, 2)
	for _, n := range out.List {
		call, ok := n.(parser.CallNode)
		require.True(t, ok)
		assert.Equal(t, "box", call.Name)
	}
	fd, ok := out.FMap["box"]
	require.True(t, ok)
	assert.Len(t, fd.Body, 1)
}

func TestParseLetAndArithmetic(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "let a = 10 fd (a * 3)"))
	require.NoError(t, err)
	require.Len(t, out.List, 2)
	let, ok := out.List[0].(parser.LetNode)
	require.True(t, ok)
	assert.Equal(t, "a", let.Name)
	mv, ok := out.List[1].(parser.MoveNode)
	require.True(t, ok)
	bin, ok := mv.Distance.(parser.BinExprNode)
	require.True(t, ok)
	assert.Equal(t, lexer.Multiply, bin.Op)
}

func TestParseSetPosFromList(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "setpos [10 20]"))
	require.NoError(t, err)
	sp, ok := out.List[0].(parser.SetPositionNode)
	require.True(t, ok)
	assert.Equal(t, parser.NumberNode{Val: 10}, sp.X)
	assert.Equal(t, parser.NumberNode{Val: 20}, sp.Y)
}

func TestParseSetXYSeparately(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "setx 5"))
	require.NoError(t, err)
	sp, ok := out.List[0].(parser.SetPositionNode)
	require.True(t, ok)
	assert.Equal(t, parser.NumberNode{Val: 5}, sp.X)
	assert.Nil(t, sp.Y)
}

func TestParseDuplicateSymbolMixedKind(t *testing.T) {
	_, err := parser.Parse(mustLex(t, "let a = 1 fn a { fd 1 }"))
	require.Error(t, err)
}

func TestParseDuplicateSymbolSameKindReplaces(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "let a = 1 let a = 2"))
	require.NoError(t, err)
	require.Len(t, out.List, 2)
}

func TestParseUnrecognizedSymbol(t *testing.T) {
	_, err := parser.Parse(mustLex(t, "nosuchthing"))
	require.Error(t, err)
}

func TestParseAssignRequiresDeclaredVar(t *testing.T) {
	_, err := parser.Parse(mustLex(t, "let a = 1 a = 2"))
	require.NoError(t, err)

	_, err = parser.Parse(mustLex(t, "a = 2"))
	require.Error(t, err)
}

func TestParsePaletteList(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "setpc [255 128 0] fd 1"))
	require.NoError(t, err)
	spc, ok := out.List[0].(parser.SetPenColorNode)
	require.True(t, ok)
	lst, ok := spc.Color.(parser.ListNode)
	require.True(t, ok)
	require.Len(t, lst.Items, 3)
}

func TestParseForLoop(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "for [i 0 10 1] { fd i }"))
	require.NoError(t, err)
	f, ok := out.List[0].(parser.ForNode)
	require.True(t, ok)
	assert.Equal(t, "i", f.Var)
	require.Len(t, f.Body, 1)
}

func TestParseMathBuiltin(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "sqrt 9"))
	require.NoError(t, err)
	m, ok := out.List[0].(parser.MathNode)
	require.True(t, ok)
	assert.Equal(t, parser.MathSqrt, m.Op)
	assert.Equal(t, parser.NumberNode{Val: 9}, m.Arg)
}

func TestParseFill(t *testing.T) {
	out, err := parser.Parse(mustLex(t, "fill"))
	require.NoError(t, err)
	_, ok := out.List[0].(parser.FillNode)
	require.True(t, ok)
}
