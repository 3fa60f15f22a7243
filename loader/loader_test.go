package loader_test

import (
	"testing"

	"github.com/andycking/turtlego/lexer"
	"github.com/andycking/turtlego/loader"
	"github.com/andycking/turtlego/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesListsAllBundledExamples(t *testing.T) {
	want := []string{
		"color-ball", "color-star", "fan-flower", "fill", "for-loop",
		"spin-wheel", "spiral", "square-flower", "squares",
	}
	assert.Equal(t, want, loader.Names())
}

func TestLoadUnknownNameFails(t *testing.T) {
	_, err := loader.Load("does-not-exist")
	require.Error(t, err)
}

func TestEveryBundledExampleParses(t *testing.T) {
	for _, name := range loader.Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			src, err := loader.Load(name)
			require.NoError(t, err)
			require.NotEmpty(t, src)

			toks, err := lexer.Lex(src)
			require.NoError(t, err)

			_, err = parser.Parse(toks)
			require.NoError(t, err)
		})
	}
}
