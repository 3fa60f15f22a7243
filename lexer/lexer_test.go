package lexer_test

import (
	"strconv"
	"testing"

	"github.com/andycking/turtlego/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexNumberLeafRoundTrip(t *testing.T) {
	for _, n := range []float64{0, 1, 42, 100.5, -7, -0.25} {
		s := strconv.FormatFloat(n, 'f', -1, 64)
		toks, err := lexer.Lex(s)
		require.NoError(t, err)
		require.Len(t, toks, 1)
		num, ok := toks[0].(lexer.Number)
		require.True(t, ok)
		assert.Equal(t, n, num.Val)
	}
}

func TestLexWord(t *testing.T) {
	toks, err := lexer.Lex("forward")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	w, ok := toks[0].(lexer.Word)
	require.True(t, ok)
	assert.Equal(t, "forward", w.Name)
}

func TestLexNegativeNumberVsSubtract(t *testing.T) {
	toks, err := lexer.Lex("fd -10")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	n, ok := toks[1].(lexer.Number)
	require.True(t, ok)
	assert.Equal(t, float64(-10), n.Val)

	toks, err = lexer.Lex("a - b")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	_, ok = toks[1].(lexer.OperatorToken)
	require.True(t, ok)
}

func TestLexList(t *testing.T) {
	toks, err := lexer.Lex("[255 128 0]")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	list, ok := toks[0].(lexer.List)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
}

func TestLexBlock(t *testing.T) {
	toks, err := lexer.Lex("{ fd 100 rt 90 }")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	block, ok := toks[0].(lexer.Block)
	require.True(t, ok)
	require.Len(t, block.Items, 4)
}

func TestLexBinExpr(t *testing.T) {
	toks, err := lexer.Lex("(a * 3)")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	expr, ok := toks[0].(lexer.BinExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.Multiply, expr.Op)
	assert.True(t, lexer.IsExprToken(expr.A))
	assert.True(t, lexer.IsExprToken(expr.B))
}

func TestLexBinExprRejectsAssignOperator(t *testing.T) {
	_, err := lexer.Lex("(a = 3)")
	require.Error(t, err)
}

func TestLexBinExprWrongArity(t *testing.T) {
	_, err := lexer.Lex("(a + 3 + 4)")
	require.Error(t, err)
}

func TestLexComment(t *testing.T) {
	toks, err := lexer.Lex("fd 10 # go forward\nrt 90")
	require.NoError(t, err)
	require.Len(t, toks, 4)
}

func TestLexUnbalancedList(t *testing.T) {
	_, err := lexer.Lex("[1 2 3")
	require.Error(t, err)
}

func TestLexMismatchedCloser(t *testing.T) {
	_, err := lexer.Lex("[1 2 3)")
	require.Error(t, err)
}

func TestLexStrayCloser(t *testing.T) {
	_, err := lexer.Lex("fd 10 ]")
	require.Error(t, err)
}

func TestLexUnexpectedPeriod(t *testing.T) {
	_, err := lexer.Lex("fd .5")
	require.Error(t, err)
}

func TestLexMaxDepthExceeded(t *testing.T) {
	src := ""
	for i := 0; i < 33; i++ {
		src += "["
	}
	src += "1"
	for i := 0; i < 33; i++ {
		src += "]"
	}
	_, err := lexer.Lex(src)
	require.Error(t, err)
}

func TestLexUnrecognizedCharacter(t *testing.T) {
	_, err := lexer.Lex("fd 10 @")
	require.Error(t, err)
}

func TestLexFailedNumberParse(t *testing.T) {
	_, err := lexer.Lex("1.2.3")
	require.Error(t, err)
}

func TestLexPositionIsOneBased(t *testing.T) {
	_, err := lexer.Lex("@")
	require.Error(t, err)
	lerr, ok := err.(*lexer.Error)
	require.True(t, ok)
	assert.Equal(t, 1, lerr.Pos)
}
