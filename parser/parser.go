package parser

import (
	"strings"

	"github.com/andycking/turtlego/lexer"
)

// Output is the parser's result: a statement list and the function map
// collected along the way.
type Output struct {
	List []Node
	FMap FuncMap
}

// Parser walks a token sequence, consuming tokens as statements.
type Parser struct {
	toks []lexer.Token
	idx  int
	syms *SymbolTable
	fmap FuncMap
}

// Parse turns a lexed token sequence into a typed AST, collecting
// function definitions along the way.
func Parse(toks []lexer.Token) (Output, error) {
	p := &Parser{
		toks: toks,
		syms: NewSymbolTable(),
		fmap: NewFuncMap(),
	}
	list, err := p.parseAll()
	if err != nil {
		return Output{}, err
	}
	return Output{List: list, FMap: p.fmap}, nil
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.idx >= len(p.toks) {
		return nil, false
	}
	return p.toks[p.idx], true
}

func (p *Parser) next() (lexer.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.idx++
	}
	return tok, ok
}

func (p *Parser) lastPos() int {
	if len(p.toks) == 0 {
		return 0
	}
	if p.idx > 0 && p.idx <= len(p.toks) {
		return p.toks[p.idx-1].Pos()
	}
	return p.toks[0].Pos()
}

func (p *Parser) parseAll() ([]Node, error) {
	var list []Node
	for {
		if _, ok := p.peek(); !ok {
			return list, nil
		}
		node, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if node != nil {
			list = append(list, node)
		}
	}
}

// parseBody parses a nested token sequence (a Block's items) against
// the same symbol table and function map as the enclosing parser.
func (p *Parser) parseBody(toks []lexer.Token) ([]Node, error) {
	sub := &Parser{toks: toks, syms: p.syms, fmap: p.fmap}
	return sub.parseAll()
}

func (p *Parser) parseStmt() (Node, error) {
	tok, _ := p.next()
	word, ok := tok.(lexer.Word)
	if !ok {
		return nil, newError(tok.Pos(), "expected a word")
	}
	name := strings.ToLower(word.Name)

	switch name {
	case "bk", "backward":
		d, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return MoveNode{Distance: d, Dir: Backward}, nil

	case "fd", "forward":
		d, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return MoveNode{Distance: d, Dir: Forward}, nil

	case "lt", "left":
		a, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return RotateNode{Angle: a, Dir: Left}, nil

	case "rt", "right":
		a, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return RotateNode{Angle: a, Dir: Right}, nil

	case "seth", "setheading":
		a, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return SetHeadingNode{Angle: a}, nil

	case "setpc", "setpencolor":
		c, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return SetPenColorNode{Color: c}, nil

	case "setsc", "setscreencolor":
		c, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return SetScreenColorNode{Color: c}, nil

	case "setpos":
		lst, err := p.expectList()
		if err != nil {
			return nil, err
		}
		if len(lst.Items) != 2 {
			return nil, newError(lst.Pos(), "2 items expected")
		}
		x, err := nodeFromExprToken(lst.Items[0])
		if err != nil {
			return nil, err
		}
		y, err := nodeFromExprToken(lst.Items[1])
		if err != nil {
			return nil, err
		}
		return SetPositionNode{X: x, Y: y}, nil

	case "setxy":
		x, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		y, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return SetPositionNode{X: x, Y: y}, nil

	case "setx":
		x, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return SetPositionNode{X: x, Y: nil}, nil

	case "sety":
		y, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return SetPositionNode{X: nil, Y: y}, nil

	case "pu", "penup":
		return PenNode{Dir: PenUp}, nil

	case "pd", "pendown":
		return PenNode{Dir: PenDown}, nil

	case "st", "showturtle":
		return ShowTurtleNode{Show: true}, nil

	case "ht", "hideturtle":
		return ShowTurtleNode{Show: false}, nil

	case "home":
		return HomeNode{}, nil

	case "clean":
		return CleanNode{}, nil

	case "cs", "clearscreen":
		return ClearScreenNode{}, nil

	case "repcount":
		return RepcountNode{}, nil

	case "random":
		m, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return RandomNode{Max: m}, nil

	case "repeat":
		cnt, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.expectBlock()
		if err != nil {
			return nil, err
		}
		return RepeatNode{Count: cnt, Body: body}, nil

	case "let":
		nameTok, err := p.expectWordToken()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator(lexer.Assign); err != nil {
			return nil, err
		}
		val, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		if !p.syms.Define(nameTok.Name, KindVar) {
			return nil, newError(nameTok.Pos(), "duplicate symbol %q", nameTok.Name)
		}
		return LetNode{Name: nameTok.Name, Val: val}, nil

	case "fn":
		nameTok, err := p.expectWordToken()
		if err != nil {
			return nil, err
		}
		body, err := p.expectBlock()
		if err != nil {
			return nil, err
		}
		if !p.syms.Define(nameTok.Name, KindFunc) {
			return nil, newError(nameTok.Pos(), "duplicate symbol %q", nameTok.Name)
		}
		p.fmap[nameTok.Name] = &FuncDef{NumArgs: 0, Body: body}
		return nil, nil

	case "for":
		lst, err := p.expectList()
		if err != nil {
			return nil, err
		}
		if len(lst.Items) != 4 {
			return nil, newError(lst.Pos(), "4 items expected")
		}
		varTok, ok := lst.Items[0].(lexer.Word)
		if !ok {
			return nil, newError(lst.Items[0].Pos(), "expected a word")
		}
		initN, err := nodeFromExprToken(lst.Items[1])
		if err != nil {
			return nil, err
		}
		limitN, err := nodeFromExprToken(lst.Items[2])
		if err != nil {
			return nil, err
		}
		stepN, err := nodeFromExprToken(lst.Items[3])
		if err != nil {
			return nil, err
		}
		body, err := p.expectBlock()
		if err != nil {
			return nil, err
		}
		p.syms.Define(varTok.Name, KindVar)
		return ForNode{Var: varTok.Name, Init: initN, Limit: limitN, Step: stepN, Body: body}, nil

	case "sin", "cos", "atan", "sqrt", "ln", "log10", "round":
		arg, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return MathNode{Op: mathOpFor(name), Arg: arg}, nil

	case "fill":
		return FillNode{}, nil

	default:
		return p.parseIdentStmt(word.Name, tok.Pos())
	}
}

func (p *Parser) parseIdentStmt(name string, pos int) (Node, error) {
	kind, ok := p.syms.Lookup(name)
	if !ok {
		return nil, newError(pos, "unrecognized symbol %q", name)
	}

	switch kind {
	case KindFunc:
		fd := p.fmap[name]
		args, err := p.takeTokens(fd.NumArgs)
		if err != nil {
			return nil, err
		}
		return CallNode{Name: name, Args: args}, nil

	case KindVar:
		if _, err := p.expectOperator(lexer.Assign); err != nil {
			return nil, err
		}
		val, err := p.expectExpr()
		if err != nil {
			return nil, err
		}
		return AssignNode{Name: name, Val: val}, nil

	default:
		return nil, newError(pos, "unrecognized symbol %q", name)
	}
}

func mathOpFor(name string) MathOp {
	switch name {
	case "sin":
		return MathSin
	case "cos":
		return MathCos
	case "atan":
		return MathAtan
	case "sqrt":
		return MathSqrt
	case "ln":
		return MathLn
	case "log10":
		return MathLog10
	default:
		return MathRound
	}
}

func (p *Parser) expectExpr() (Node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, newError(p.lastPos(), "items expected")
	}
	return nodeFromExprToken(tok)
}

func (p *Parser) expectList() (lexer.List, error) {
	tok, ok := p.next()
	if !ok {
		return lexer.List{}, newError(p.lastPos(), "items expected")
	}
	lst, ok := tok.(lexer.List)
	if !ok {
		return lexer.List{}, newError(tok.Pos(), "expected a list")
	}
	return lst, nil
}

func (p *Parser) expectBlock() ([]Node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, newError(p.lastPos(), "items expected")
	}
	block, ok := tok.(lexer.Block)
	if !ok {
		return nil, newError(tok.Pos(), "expected a block")
	}
	return p.parseBody(block.Items)
}

func (p *Parser) expectWordToken() (lexer.Word, error) {
	tok, ok := p.next()
	if !ok {
		return lexer.Word{}, newError(p.lastPos(), "items expected")
	}
	w, ok := tok.(lexer.Word)
	if !ok {
		return lexer.Word{}, newError(tok.Pos(), "expected a word")
	}
	return w, nil
}

func (p *Parser) expectOperator(op lexer.Operator) (lexer.OperatorToken, error) {
	tok, ok := p.next()
	if !ok {
		return lexer.OperatorToken{}, newError(p.lastPos(), "items expected")
	}
	opTok, ok := tok.(lexer.OperatorToken)
	if !ok || opTok.Op != op {
		return lexer.OperatorToken{}, newError(tok.Pos(), "expected an assignment operator")
	}
	return opTok, nil
}

// takeTokens captures n raw tokens without interpreting them as
// expressions, matching the CallNode.Args contract: the interpreter
// never binds these to formals.
func (p *Parser) takeTokens(n int) ([]lexer.Token, error) {
	toks := make([]lexer.Token, 0, n)
	for i := 0; i < n; i++ {
		tok, ok := p.next()
		if !ok {
			return nil, newError(p.lastPos(), "items expected")
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// nodeFromExprToken converts an expression-kind lexer token (Number,
// Word, List, BinExpr) into its AST node.
func nodeFromExprToken(tok lexer.Token) (Node, error) {
	switch t := tok.(type) {
	case lexer.Number:
		return NumberNode{Val: t.Val}, nil

	case lexer.Word:
		if strings.ToLower(t.Name) == "repcount" {
			return RepcountNode{}, nil
		}
		return WordNode{Name: t.Name}, nil

	case lexer.List:
		items := make([]Node, 0, len(t.Items))
		for _, it := range t.Items {
			if !lexer.IsExprToken(it) {
				return nil, newError(it.Pos(), "expected an expression, number, list or word")
			}
			n, err := nodeFromExprToken(it)
			if err != nil {
				return nil, err
			}
			items = append(items, n)
		}
		return ListNode{Items: items}, nil

	case lexer.BinExpr:
		a, err := nodeFromExprToken(t.A)
		if err != nil {
			return nil, err
		}
		b, err := nodeFromExprToken(t.B)
		if err != nil {
			return nil, err
		}
		return BinExprNode{A: a, Op: t.Op, B: b}, nil

	default:
		return nil, newError(tok.Pos(), "expected an expression, number, list or word")
	}
}
